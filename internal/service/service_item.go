package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/internal/store"
	"github.com/MKhiriev/go-item-sync/models"
)

// itemService implements [ItemService] over a raw [store.ItemStorage].
//
// Items are versioned by recreation: an upsert deletes the existing row of
// (owner, uuid) and inserts a new one, so the storage-assigned marker of the
// new row becomes the item's latest version. The lookup, delete and insert
// run inside one write section of the guard, which keeps at most one live
// row per (owner, uuid) and makes readers observe either the old or the new
// row, never neither.
type itemService struct {
	storage store.ItemStorage
	guard   *guard

	logger *logger.Logger
}

// NewItemService constructs the process-wide item store. Every caller must
// share the returned value; two instances over the same storage would not
// exclude each other.
func NewItemService(storage store.ItemStorage, logger *logger.Logger) ItemService {
	return &itemService{
		storage: storage,
		guard:   &guard{},
		logger:  logger,
	}
}

// ItemsOfUser runs the incremental listing under the read guard. A limit of
// zero yields an empty result without touching storage.
func (s *itemService) ItemsOfUser(ctx context.Context, query models.ItemsQuery) ([]models.Item, error) {
	if query.Limit != nil && *query.Limit == 0 {
		return []models.Item{}, nil
	}

	var items []models.Item
	err := s.guard.read(func() error {
		var err error
		items, err = s.storage.SelectItems(ctx, query)
		return err
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (s *itemService) FindItemByUUID(ctx context.Context, owner int64, uuid string) (models.Item, error) {
	var item models.Item
	err := s.guard.read(func() error {
		var err error
		item, err = s.storage.FindItem(ctx, owner, uuid)
		return err
	})

	return item, err
}

func (s *itemService) CurrentMaxVersion(ctx context.Context, owner int64) (*int64, error) {
	var maxVersion *int64
	err := s.guard.read(func() error {
		var err error
		maxVersion, err = s.storage.MaxVersion(ctx, owner)
		return err
	})

	return maxVersion, err
}

// Upsert stores item for owner and returns its new version marker.
//
// A tombstone (item.Deleted) is stored without content or key. A failed
// lookup or delete leaves the previous row in place. A failed insert after a
// successful delete leaves the item absent; the delete is not undone.
func (s *itemService) Upsert(ctx context.Context, owner int64, item models.SyncItem) (int64, error) {
	log := logger.FromContext(ctx)

	if item.UUID == "" {
		return 0, ErrEmptyUUID
	}

	var versionMarker int64
	err := s.guard.write(func() error {
		existing, err := s.storage.FindItem(ctx, owner, item.UUID)
		switch {
		case err == nil:
			if _, err = s.storage.DeleteItem(ctx, owner, item.UUID); err != nil {
				return err
			}
			log.Debug().
				Str("func", "itemService.Upsert").
				Int64("owner", owner).
				Str("uuid", item.UUID).
				Int64("replaced_version", existing.VersionMarker).
				Msg("previous item version removed")
		case !errors.Is(err, store.ErrItemNotFound):
			return err
		}

		versionMarker, err = s.storage.InsertItem(ctx, item.ToItem(owner))
		return err
	})
	if err != nil {
		log.Err(err).
			Str("func", "itemService.Upsert").
			Int64("owner", owner).
			Str("uuid", item.UUID).
			Msg("failed to upsert item")
		return 0, err
	}

	return versionMarker, nil
}
