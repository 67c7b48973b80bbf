package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/internal/mock"
	"github.com/MKhiriev/go-item-sync/internal/store"
	"github.com/MKhiriev/go-item-sync/models"
)

func newTestItemService(t *testing.T) (ItemService, *mock.MockItemStorage) {
	t.Helper()
	ctrl := gomock.NewController(t)
	storage := mock.NewMockItemStorage(ctrl)
	return NewItemService(storage, logger.Nop()), storage
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64   { return &v }
func u64Ptr(v uint64) *uint64 { return &v }

func noteItem(uuid, content string) models.SyncItem {
	return models.SyncItem{
		UUID:        uuid,
		Content:     strPtr(content),
		ContentType: "Note",
		EncItemKey:  strPtr("key-" + content),
		CreatedAt:   "2024-01-01T00:00:00Z",
	}
}

func TestUpsert_NewItemIsInserted(t *testing.T) {
	svc, storage := newTestItemService(t)
	ctx := context.Background()
	item := noteItem("a", "v1")

	gomock.InOrder(
		storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{}, store.ErrItemNotFound),
		storage.EXPECT().InsertItem(ctx, item.ToItem(1)).Return(int64(5), nil),
	)

	marker, err := svc.Upsert(ctx, 1, item)
	require.NoError(t, err)
	assert.Equal(t, int64(5), marker)
}

func TestUpsert_ExistingItemIsRecreated(t *testing.T) {
	svc, storage := newTestItemService(t)
	ctx := context.Background()
	item := noteItem("a", "v2")

	gomock.InOrder(
		storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{VersionMarker: 5, Owner: 1, UUID: "a"}, nil),
		storage.EXPECT().DeleteItem(ctx, int64(1), "a").Return(int64(1), nil),
		storage.EXPECT().InsertItem(ctx, item.ToItem(1)).Return(int64(6), nil),
	)

	marker, err := svc.Upsert(ctx, 1, item)
	require.NoError(t, err)
	assert.Equal(t, int64(6), marker)
}

func TestUpsert_TombstoneIsStoredWithoutPayload(t *testing.T) {
	svc, storage := newTestItemService(t)
	ctx := context.Background()
	item := noteItem("a", "secret")
	item.Deleted = true

	storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{}, store.ErrItemNotFound)
	storage.EXPECT().InsertItem(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, stored models.Item) (int64, error) {
			assert.True(t, stored.Deleted)
			assert.Nil(t, stored.Content)
			assert.Nil(t, stored.EncItemKey)
			assert.Equal(t, "Note", stored.ContentType)
			return 3, nil
		})

	_, err := svc.Upsert(ctx, 1, item)
	require.NoError(t, err)
}

func TestUpsert_Failures(t *testing.T) {
	ctx := context.Background()
	item := noteItem("a", "v1")
	storageErr := errors.Join(store.ErrExecutingQuery, errors.New("disk I/O error"))

	tests := []struct {
		name  string
		setup func(storage *mock.MockItemStorage)
	}{
		{
			name: "lookup fails: nothing is deleted or inserted",
			setup: func(storage *mock.MockItemStorage) {
				storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{}, storageErr)
			},
		},
		{
			name: "delete fails: nothing is inserted",
			setup: func(storage *mock.MockItemStorage) {
				storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{VersionMarker: 2}, nil)
				storage.EXPECT().DeleteItem(ctx, int64(1), "a").Return(int64(0), storageErr)
			},
		},
		{
			name: "insert fails after delete: delete is not undone",
			setup: func(storage *mock.MockItemStorage) {
				storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{VersionMarker: 2}, nil)
				storage.EXPECT().DeleteItem(ctx, int64(1), "a").Return(int64(1), nil)
				storage.EXPECT().InsertItem(ctx, gomock.Any()).Return(int64(0), storageErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, storage := newTestItemService(t)
			tt.setup(storage)

			marker, err := svc.Upsert(ctx, 1, item)
			assert.ErrorIs(t, err, store.ErrStorage)
			assert.Zero(t, marker)
		})
	}
}

func TestUpsert_EmptyUUID(t *testing.T) {
	svc, _ := newTestItemService(t)

	_, err := svc.Upsert(context.Background(), 1, models.SyncItem{ContentType: "Note"})
	assert.ErrorIs(t, err, ErrEmptyUUID)
}

func TestItemsOfUser(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the query through", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		query := models.ItemsQuery{Owner: 1, SinceVersion: i64Ptr(2), MaxVersion: i64Ptr(9), Limit: u64Ptr(3)}
		want := []models.Item{{VersionMarker: 3}, {VersionMarker: 4}}

		storage.EXPECT().SelectItems(ctx, query).Return(want, nil)

		got, err := svc.ItemsOfUser(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("zero limit skips storage", func(t *testing.T) {
		svc, _ := newTestItemService(t)

		got, err := svc.ItemsOfUser(ctx, models.ItemsQuery{Owner: 1, Limit: u64Ptr(0)})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("storage error", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		storage.EXPECT().SelectItems(ctx, gomock.Any()).Return(nil, store.ErrScanningRows)

		got, err := svc.ItemsOfUser(ctx, models.ItemsQuery{Owner: 1})
		assert.ErrorIs(t, err, store.ErrStorage)
		assert.Nil(t, got)
	})
}

func TestFindItemByUUID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{VersionMarker: 4, UUID: "a"}, nil)

		item, err := svc.FindItemByUUID(ctx, 1, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(4), item.VersionMarker)
	})

	t.Run("not found", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		storage.EXPECT().FindItem(ctx, int64(1), "a").Return(models.Item{}, store.ErrItemNotFound)

		_, err := svc.FindItemByUUID(ctx, 1, "a")
		assert.ErrorIs(t, err, store.ErrItemNotFound)
	})
}

func TestCurrentMaxVersion(t *testing.T) {
	ctx := context.Background()

	t.Run("owner with items", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		storage.EXPECT().MaxVersion(ctx, int64(1)).Return(i64Ptr(12), nil)

		got, err := svc.CurrentMaxVersion(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(12), *got)
	})

	t.Run("owner without items", func(t *testing.T) {
		svc, storage := newTestItemService(t)
		storage.EXPECT().MaxVersion(ctx, int64(1)).Return(nil, nil)

		got, err := svc.CurrentMaxVersion(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
