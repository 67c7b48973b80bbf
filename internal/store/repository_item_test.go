package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/models"
)

var itemRowColumns = []string{
	"version_marker", "owner", "uuid", "content", "content_type",
	"enc_item_key", "deleted", "created_at", "updated_at",
}

func newTestRepo(t *testing.T) (ItemStorage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewItemRepository(newPostgresDB(db, logger.Nop()), logger.Nop()), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func strPtr(s string) *string { return &s }

func TestSelectItems(t *testing.T) {
	since := int64(1)
	limit := uint64(2)

	tests := []struct {
		name     string
		query    models.ItemsQuery
		setup    func(mock sqlmock.Sqlmock)
		wantErr  error
		wantLen  int
		validate func(t *testing.T, items []models.Item)
	}{
		{
			name:  "success: rows in marker order",
			query: models.ItemsQuery{Owner: 42, SinceVersion: &since, Limit: &limit},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectItemsSQL+` WHERE owner = $1 AND version_marker > $2 ORDER BY version_marker ASC LIMIT 2`)).
					WithArgs(int64(42), int64(1)).
					WillReturnRows(sqlmock.NewRows(itemRowColumns).
						AddRow(int64(2), int64(42), "a", "enc", "Note", "key", false, "c1", nil).
						AddRow(int64(5), int64(42), "b", nil, "Note", nil, true, "c2", "u2"))
			},
			wantLen: 2,
			validate: func(t *testing.T, items []models.Item) {
				assert.Equal(t, int64(2), items[0].VersionMarker)
				assert.Equal(t, "a", items[0].UUID)
				require.NotNil(t, items[0].Content)
				assert.Equal(t, "enc", *items[0].Content)
				assert.Nil(t, items[0].UpdatedAt)

				assert.Equal(t, int64(5), items[1].VersionMarker)
				assert.True(t, items[1].Deleted)
				assert.Nil(t, items[1].Content)
				assert.Nil(t, items[1].EncItemKey)
				require.NotNil(t, items[1].UpdatedAt)
				assert.Equal(t, "u2", *items[1].UpdatedAt)
			},
		},
		{
			name:  "success: empty result is an empty slice",
			query: models.ItemsQuery{Owner: 42},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectItemsSQL + ` WHERE owner = $1 ORDER BY version_marker ASC`)).
					WithArgs(int64(42)).
					WillReturnRows(sqlmock.NewRows(itemRowColumns))
			},
			wantLen: 0,
			validate: func(t *testing.T, items []models.Item) {
				assert.NotNil(t, items)
			},
		},
		{
			name:  "error: query fails",
			query: models.ItemsQuery{Owner: 42},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))
			},
			wantErr: ErrExecutingQuery,
		},
		{
			name:  "error: bad row",
			query: models.ItemsQuery{Owner: 42},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").
					WillReturnRows(sqlmock.NewRows([]string{"version_marker"}).AddRow(int64(1)))
			},
			wantErr: ErrScanningRow,
		},
		{
			name:  "error: iteration fails",
			query: models.ItemsQuery{Owner: 42},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").
					WillReturnRows(sqlmock.NewRows(itemRowColumns).
						AddRow(int64(2), int64(42), "a", "enc", "Note", "key", false, "c1", nil).
						RowError(0, errors.New("broken pipe")))
			},
			wantErr: ErrScanningRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRepo(t)
			tt.setup(mock)

			items, err := repo.SelectItems(testContext(), tt.query)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrStorage)
				assert.Nil(t, items)
			} else {
				require.NoError(t, err)
				assert.Len(t, items, tt.wantLen)
				if tt.validate != nil {
					tt.validate(t, items)
				}
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindItem(t *testing.T) {
	findSQL := regexp.QuoteMeta(selectItemsSQL + ` WHERE owner = $1 AND uuid = $2 ORDER BY version_marker DESC LIMIT 1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(findSQL).
			WithArgs(int64(1), "a").
			WillReturnRows(sqlmock.NewRows(itemRowColumns).
				AddRow(int64(9), int64(1), "a", "enc", "Note", "key", false, "c", "u"))

		item, err := repo.FindItem(testContext(), 1, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(9), item.VersionMarker)
		assert.Equal(t, int64(1), item.Owner)
		assert.Equal(t, strPtr("u"), item.UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(findSQL).
			WithArgs(int64(1), "missing").
			WillReturnRows(sqlmock.NewRows(itemRowColumns))

		_, err := repo.FindItem(testContext(), 1, "missing")
		assert.ErrorIs(t, err, ErrItemNotFound)
		assert.NotErrorIs(t, err, ErrStorage)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(findSQL).
			WillReturnError(&pgconn.PgError{Code: "08006"})

		_, err := repo.FindItem(testContext(), 1, "a")
		assert.ErrorIs(t, err, ErrStorage)
		assert.NotErrorIs(t, err, ErrItemNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMaxVersion(t *testing.T) {
	maxSQL := regexp.QuoteMeta(`SELECT MAX(version_marker) FROM items WHERE owner = $1`)

	t.Run("owner has items", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(maxSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(int64(17)))

		got, err := repo.MaxVersion(testContext(), 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, int64(17), *got)
	})

	t.Run("owner has no items", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(maxSQL).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"max"}).AddRow(nil))

		got, err := repo.MaxVersion(testContext(), 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(maxSQL).WillReturnError(sql.ErrConnDone)

		got, err := repo.MaxVersion(testContext(), 1)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.Nil(t, got)
	})
}

func TestDeleteItem(t *testing.T) {
	deleteSQL := regexp.QuoteMeta(`DELETE FROM items WHERE owner = $1 AND uuid = $2`)

	t.Run("deletes rows", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(deleteSQL).
			WithArgs(int64(1), "a").
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := repo.DeleteItem(testContext(), 1, "a")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("nothing to delete", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(deleteSQL).
			WithArgs(int64(1), "a").
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := repo.DeleteItem(testContext(), 1, "a")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("exec fails", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(deleteSQL).WillReturnError(errors.New("boom"))

		_, err := repo.DeleteItem(testContext(), 1, "a")
		assert.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("rows affected fails", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectExec(deleteSQL).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no rows affected info")))

		_, err := repo.DeleteItem(testContext(), 1, "a")
		assert.ErrorIs(t, err, ErrStorage)
	})
}

func TestInsertItem(t *testing.T) {
	item := models.Item{
		Owner:       1,
		UUID:        "a",
		Content:     strPtr("enc"),
		ContentType: "Note",
		EncItemKey:  strPtr("key"),
		CreatedAt:   "c",
	}

	t.Run("returns assigned marker", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(`INSERT INTO items .* RETURNING version_marker`).
			WithArgs(int64(1), "a", "enc", "Note", "key", false, "c", nil).
			WillReturnRows(sqlmock.NewRows([]string{"version_marker"}).AddRow(int64(3)))

		marker, err := repo.InsertItem(testContext(), item)
		require.NoError(t, err)
		assert.Equal(t, int64(3), marker)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert fails", func(t *testing.T) {
		repo, mock := newTestRepo(t)
		mock.ExpectQuery(`INSERT INTO items`).
			WillReturnError(&pgconn.PgError{Code: "23505"})

		_, err := repo.InsertItem(testContext(), item)
		assert.ErrorIs(t, err, ErrExecutingQuery)
		assert.ErrorIs(t, err, ErrStorage)
	})
}
