package service

import (
	"context"

	"github.com/MKhiriev/go-item-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ItemService is the item store: versioned upserts and guarded reads of one
// owner's items. All implementations must be safe for concurrent use.
type ItemService interface {
	// ItemsOfUser lists the owner's items in version order within the
	// query's optional bounds.
	ItemsOfUser(ctx context.Context, query models.ItemsQuery) ([]models.Item, error)

	// FindItemByUUID returns the current state of (owner, uuid).
	FindItemByUUID(ctx context.Context, owner int64, uuid string) (models.Item, error)

	// CurrentMaxVersion returns the owner's highest version marker, nil if
	// the owner has no items.
	CurrentMaxVersion(ctx context.Context, owner int64) (*int64, error)

	// Upsert replaces (owner, item.UUID) with item and returns the new
	// version marker.
	Upsert(ctx context.Context, owner int64, item models.SyncItem) (int64, error)
}

// SyncService runs a combined push and pull round for one owner.
type SyncService interface {
	Sync(ctx context.Context, owner int64, request models.SyncRequest) (models.SyncResponse, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
