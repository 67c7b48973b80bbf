// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Item is a persisted item row.
//
// VersionMarker is assigned by the storage engine on insert and is never
// updated in place: every write of an item deletes the previous row and
// inserts a new one, so the marker works as a logical timestamp of the
// item's latest state rather than as its identity. Items are identified by
// the (Owner, UUID) pair.
type Item struct {
	// VersionMarker is the store-wide monotonically increasing row id.
	VersionMarker int64 `json:"version_marker"`

	// Owner is the ID of the user the item belongs to.
	Owner int64 `json:"-"`

	// UUID is the client-chosen stable identity of the item.
	UUID string `json:"uuid"`

	// Content is the opaque encrypted payload. Nil for tombstones.
	Content *string `json:"content"`

	// ContentType is an opaque description of the payload shape.
	ContentType string `json:"content_type"`

	// EncItemKey is the opaque key-wrapping blob. Nil for tombstones.
	EncItemKey *string `json:"enc_item_key"`

	// Deleted marks the item as a tombstone.
	Deleted bool `json:"deleted"`

	// CreatedAt and UpdatedAt are client-supplied timestamps; the server
	// stores them verbatim.
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

// SyncItem is the client-facing projection of an [Item]: what a client sends
// when pushing and what it receives when pulling.
type SyncItem struct {
	UUID        string  `json:"uuid"`
	Content     *string `json:"content"`
	ContentType string  `json:"content_type"`
	EncItemKey  *string `json:"enc_item_key"`
	Deleted     bool    `json:"deleted"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at"`
}

// ToItem builds the row that should be stored for s on behalf of owner.
//
// Tombstones never carry a payload: when s.Deleted is set, Content and
// EncItemKey are dropped whatever the client sent. VersionMarker is left
// zero; the store assigns it.
func (s SyncItem) ToItem(owner int64) Item {
	item := Item{
		Owner:       owner,
		UUID:        s.UUID,
		Content:     s.Content,
		ContentType: s.ContentType,
		EncItemKey:  s.EncItemKey,
		Deleted:     s.Deleted,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}

	if item.Deleted {
		item.Content = nil
		item.EncItemKey = nil
	}

	return item
}

// ToSyncItem strips the server-side fields from i.
func (i Item) ToSyncItem() SyncItem {
	return SyncItem{
		UUID:        i.UUID,
		Content:     i.Content,
		ContentType: i.ContentType,
		EncItemKey:  i.EncItemKey,
		Deleted:     i.Deleted,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ItemsQuery describes an incremental listing of one owner's items.
//
// All bounds are optional:
//   - SinceVersion — exclusive lower bound on VersionMarker (the client's cursor);
//   - MaxVersion   — inclusive upper bound, used to pin a page window;
//   - Limit        — maximum number of rows returned.
//
// Results are always ordered by VersionMarker ascending.
type ItemsQuery struct {
	Owner        int64
	SinceVersion *int64
	MaxVersion   *int64
	Limit        *uint64
}
