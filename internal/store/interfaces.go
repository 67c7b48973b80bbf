package store

import (
	"context"

	"github.com/MKhiriev/go-item-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ItemStorage is the raw handle over the items relation. It performs single
// statements and does no locking of its own; callers that need several
// statements to behave atomically must serialize them.
type ItemStorage interface {
	// SelectItems returns the owner's items matching query, ordered by
	// version marker ascending.
	SelectItems(ctx context.Context, query models.ItemsQuery) ([]models.Item, error)

	// FindItem returns the live row for (owner, uuid) or [ErrItemNotFound].
	FindItem(ctx context.Context, owner int64, uuid string) (models.Item, error)

	// MaxVersion returns the highest version marker among the owner's
	// items, or nil when the owner has none.
	MaxVersion(ctx context.Context, owner int64) (*int64, error)

	// DeleteItem removes every row for (owner, uuid) and reports how many
	// were removed.
	DeleteItem(ctx context.Context, owner int64, uuid string) (int64, error)

	// InsertItem stores item as a new row and returns the version marker
	// the database assigned to it. item.VersionMarker is ignored.
	InsertItem(ctx context.Context, item models.Item) (int64, error)
}
