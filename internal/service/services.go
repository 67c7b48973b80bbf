package service

import (
	"github.com/MKhiriev/go-item-sync/internal/config"
	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/internal/store"
	"github.com/MKhiriev/go-item-sync/models"
)

type Services struct {
	ItemService    ItemService
	SyncService    SyncService
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. The single item service is
// shared by the sync service so both go through the same guard.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	itemService := NewItemService(storages.ItemStorage, logger)

	return &Services{
		ItemService:    itemService,
		SyncService:    NewSyncService(itemService, logger),
		AppInfoService: appInfoService,
	}, nil
}
