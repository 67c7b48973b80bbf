// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-item-sync/models"
)

const itemsTable = "items"

// itemColumns is the column order every item SELECT uses; scanItem relies on it.
var itemColumns = []string{
	"version_marker",
	"owner",
	"uuid",
	"content",
	"content_type",
	"enc_item_key",
	"deleted",
	"created_at",
	"updated_at",
}

// buildSelectItemsQuery builds the incremental listing query:
//
//	SELECT ... FROM items
//	WHERE owner = ? [AND version_marker > since] [AND version_marker <= max]
//	ORDER BY version_marker ASC [LIMIT n]
func buildSelectItemsQuery(b sq.StatementBuilderType, query models.ItemsQuery) (string, []any, error) {
	stmt := b.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"owner": query.Owner})

	if query.SinceVersion != nil {
		stmt = stmt.Where(sq.Gt{"version_marker": *query.SinceVersion})
	}

	if query.MaxVersion != nil {
		stmt = stmt.Where(sq.LtOrEq{"version_marker": *query.MaxVersion})
	}

	stmt = stmt.OrderBy("version_marker ASC")

	if query.Limit != nil {
		stmt = stmt.Limit(*query.Limit)
	}

	return wrapBuildErr(stmt.ToSql())
}

// buildFindItemQuery selects the newest row for (owner, uuid).
func buildFindItemQuery(b sq.StatementBuilderType, owner int64, uuid string) (string, []any, error) {
	return wrapBuildErr(b.Select(itemColumns...).
		From(itemsTable).
		Where(sq.Eq{"owner": owner}).
		Where(sq.Eq{"uuid": uuid}).
		OrderBy("version_marker DESC").
		Limit(1).
		ToSql())
}

func buildMaxVersionQuery(b sq.StatementBuilderType, owner int64) (string, []any, error) {
	return wrapBuildErr(b.Select("MAX(version_marker)").
		From(itemsTable).
		Where(sq.Eq{"owner": owner}).
		ToSql())
}

func buildDeleteItemQuery(b sq.StatementBuilderType, owner int64, uuid string) (string, []any, error) {
	return wrapBuildErr(b.Delete(itemsTable).
		Where(sq.Eq{"owner": owner}).
		Where(sq.Eq{"uuid": uuid}).
		ToSql())
}

// buildInsertItemQuery inserts item and reads back the marker the database
// assigned via RETURNING (supported by both postgres and sqlite >= 3.35).
func buildInsertItemQuery(b sq.StatementBuilderType, item models.Item) (string, []any, error) {
	return wrapBuildErr(b.Insert(itemsTable).
		Columns("owner", "uuid", "content", "content_type", "enc_item_key", "deleted", "created_at", "updated_at").
		Values(item.Owner, item.UUID, item.Content, item.ContentType, item.EncItemKey, item.Deleted, item.CreatedAt, item.UpdatedAt).
		Suffix("RETURNING version_marker").
		ToSql())
}

func wrapBuildErr(query string, args []any, err error) (string, []any, error) {
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
