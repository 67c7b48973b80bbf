package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/models"
)

// itemRepository is the SQL implementation of [ItemStorage]. Each method
// runs exactly one statement against the "items" table through the embedded
// [*DB]; the dialect only changes the placeholder format.
//
// Every method obtains a context-scoped logger via [logger.FromContext] and
// attaches the driver error classification to failures.
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemStorage] over db.
func NewItemRepository(db *DB, logger *logger.Logger) ItemStorage {
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// SelectItems runs the incremental listing query. An owner without matching
// rows yields an empty, non-nil slice.
func (r *itemRepository) SelectItems(ctx context.Context, query models.ItemsQuery) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildSelectItemsQuery(r.builder, query)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.SelectItems").
			Int64("owner", query.Owner).
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.SelectItems").
			Int64("owner", query.Owner).
			Stringer("classification", r.classify(err)).
			Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)

	for rows.Next() {
		item, scanErr := scanItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.SelectItems").
				Int64("owner", query.Owner).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.SelectItems").
			Int64("owner", query.Owner).
			Stringer("classification", r.classify(rowsErr)).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// FindItem returns the newest row stored for (owner, uuid).
func (r *itemRepository) FindItem(ctx context.Context, owner int64, uuid string) (models.Item, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildFindItemQuery(r.builder, owner, uuid)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Msg("failed to create query")
		return models.Item{}, err
	}

	item, err := scanItem(r.DB.QueryRowContext(ctx, sqlQuery, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().
			Str("func", "itemRepository.FindItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Msg("item not found")
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.FindItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Stringer("classification", r.classify(err)).
			Msg("failed to find item")
		return models.Item{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return item, nil
}

// MaxVersion returns MAX(version_marker) over the owner's rows; NULL (no
// rows) comes back as nil.
func (r *itemRepository) MaxVersion(ctx context.Context, owner int64) (*int64, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildMaxVersionQuery(r.builder, owner)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.MaxVersion").
			Int64("owner", owner).
			Msg("failed to create query")
		return nil, err
	}

	var maxVersion sql.NullInt64
	if err = r.DB.QueryRowContext(ctx, sqlQuery, args...).Scan(&maxVersion); err != nil {
		log.Err(err).
			Str("func", "itemRepository.MaxVersion").
			Int64("owner", owner).
			Stringer("classification", r.classify(err)).
			Msg("failed to get max version marker")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !maxVersion.Valid {
		return nil, nil
	}

	return &maxVersion.Int64, nil
}

// DeleteItem removes every row for (owner, uuid). Deleting nothing is not
// an error.
func (r *itemRepository) DeleteItem(ctx context.Context, owner int64, uuid string) (int64, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildDeleteItemQuery(r.builder, owner, uuid)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Msg("failed to create query")
		return 0, err
	}

	result, err := r.DB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Stringer("classification", r.classify(err)).
			Msg("failed to delete item")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Int64("owner", owner).
			Str("uuid", uuid).
			Msg("failed to get affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "itemRepository.DeleteItem").
		Int64("owner", owner).
		Str("uuid", uuid).
		Int64("deleted", deleted).
		Msg("item rows deleted")

	return deleted, nil
}

// InsertItem stores item as a fresh row and returns its version marker.
func (r *itemRepository) InsertItem(ctx context.Context, item models.Item) (int64, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildInsertItemQuery(r.builder, item)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.InsertItem").
			Int64("owner", item.Owner).
			Str("uuid", item.UUID).
			Msg("failed to create query")
		return 0, err
	}

	var versionMarker int64
	if err = r.DB.QueryRowContext(ctx, sqlQuery, args...).Scan(&versionMarker); err != nil {
		log.Err(err).
			Str("func", "itemRepository.InsertItem").
			Int64("owner", item.Owner).
			Str("uuid", item.UUID).
			Stringer("classification", r.classify(err)).
			Msg("failed to insert item")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Debug().
		Str("func", "itemRepository.InsertItem").
		Int64("owner", item.Owner).
		Str("uuid", item.UUID).
		Int64("version_marker", versionMarker).
		Msg("item inserted")

	return versionMarker, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem reads one row in [itemColumns] order.
func scanItem(row rowScanner) (models.Item, error) {
	var item models.Item

	err := row.Scan(
		&item.VersionMarker,
		&item.Owner,
		&item.UUID,
		&item.Content,
		&item.ContentType,
		&item.EncItemKey,
		&item.Deleted,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	return item, err
}
