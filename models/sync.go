package models

// SyncRequest is a single push+pull round sent by a client.
type SyncRequest struct {
	// Items are pushed to the server; each one is upserted.
	Items []SyncItem `json:"items"`

	// SyncToken is the highest version marker the client has fully applied.
	SyncToken *int64 `json:"sync_token,omitempty"`

	// CursorToken continues a paged pull started by a previous round.
	// When set it takes precedence over SyncToken as the lower bound.
	CursorToken *int64 `json:"cursor_token,omitempty"`

	// Limit caps the number of retrieved items in the response.
	Limit *uint64 `json:"limit,omitempty"`
}

// SavedItem reports the version marker assigned to a pushed item.
type SavedItem struct {
	UUID          string `json:"uuid"`
	VersionMarker int64  `json:"version_marker"`
}

// SyncResponse is the result of a sync round.
type SyncResponse struct {
	// RetrievedItems changed on the server since the client's cursor,
	// in version order. Items the client pushed in the same round are omitted.
	RetrievedItems []Item `json:"retrieved_items"`

	// SavedItems lists the items accepted from the request.
	SavedItems []SavedItem `json:"saved_items"`

	// SyncToken is the cursor the client should send next time.
	SyncToken *int64 `json:"sync_token"`

	// CursorToken is set when more retrieved items are pending.
	CursorToken *int64 `json:"cursor_token,omitempty"`
}

// ItemsResponse is returned by the plain listing endpoint.
type ItemsResponse struct {
	Items  []Item `json:"items"`
	Length int    `json:"length"`
}

// UpsertResponse is returned after a single item was stored.
type UpsertResponse struct {
	VersionMarker int64 `json:"version_marker"`
}

// MaxVersionResponse carries the owner's current cursor. MaxVersion is nil
// when the owner has no items yet.
type MaxVersionResponse struct {
	MaxVersion *int64 `json:"max_version"`
}
