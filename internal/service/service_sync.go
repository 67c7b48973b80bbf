package service

import (
	"context"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/models"
)

// syncService implements [SyncService] on top of an [ItemService]. It holds
// no lock of its own: each step is guarded by the item service, and the
// round as a whole is pinned to the version snapshot taken at its start.
type syncService struct {
	items ItemService

	logger *logger.Logger
}

func NewSyncService(items ItemService, logger *logger.Logger) SyncService {
	return &syncService{
		items:  items,
		logger: logger,
	}
}

// Sync pushes request.Items and pulls what changed since the client's
// cursor.
//
// The pull is bounded above by the owner's max version taken before any
// push, so pages stay stable while other writers append. The returned
// SyncToken advances past the pushed items only while they are contiguous
// with that snapshot; a concurrent write that landed in between keeps the
// token below it, so the next round still delivers it.
func (s *syncService) Sync(ctx context.Context, owner int64, request models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	upper, err := s.items.CurrentMaxVersion(ctx, owner)
	if err != nil {
		return models.SyncResponse{}, err
	}

	since := request.SyncToken
	if request.CursorToken != nil {
		since = request.CursorToken
	}

	retrieved := []models.Item{}
	// an owner without items has nothing to pull
	if upper != nil {
		retrieved, err = s.items.ItemsOfUser(ctx, models.ItemsQuery{
			Owner:        owner,
			SinceVersion: since,
			MaxVersion:   upper,
			Limit:        request.Limit,
		})
		if err != nil {
			return models.SyncResponse{}, err
		}
	}

	saved := make([]models.SavedItem, 0, len(request.Items))
	savedMarkers := make(map[string]int64, len(request.Items))
	for _, item := range request.Items {
		marker, err := s.items.Upsert(ctx, owner, item)
		if err != nil {
			return models.SyncResponse{}, err
		}
		saved = append(saved, models.SavedItem{UUID: item.UUID, VersionMarker: marker})
		savedMarkers[item.UUID] = marker
	}

	var cursor *int64
	if request.Limit != nil && *request.Limit > 0 && uint64(len(retrieved)) == *request.Limit {
		last := retrieved[len(retrieved)-1].VersionMarker
		cursor = &last
	}

	response := models.SyncResponse{
		RetrievedItems: dropSaved(retrieved, savedMarkers),
		SavedItems:     saved,
		CursorToken:    cursor,
	}

	response.SyncToken, err = s.nextSyncToken(ctx, owner, upper, savedMarkers)
	if err != nil {
		return models.SyncResponse{}, err
	}

	log.Debug().
		Str("func", "syncService.Sync").
		Int64("owner", owner).
		Int("retrieved", len(response.RetrievedItems)).
		Int("saved", len(saved)).
		Bool("has_cursor", cursor != nil).
		Msg("sync round finished")

	return response, nil
}

// nextSyncToken walks the rows written after upper in version order and
// advances over those this round saved itself, stopping at the first row
// written by someone else.
func (s *syncService) nextSyncToken(ctx context.Context, owner int64, upper *int64, savedMarkers map[string]int64) (*int64, error) {
	if len(savedMarkers) == 0 {
		return upper, nil
	}

	newer, err := s.items.ItemsOfUser(ctx, models.ItemsQuery{
		Owner:        owner,
		SinceVersion: upper,
	})
	if err != nil {
		return nil, err
	}

	token := upper
	for _, item := range newer {
		if marker, ok := savedMarkers[item.UUID]; !ok || marker != item.VersionMarker {
			break
		}
		v := item.VersionMarker
		token = &v
	}

	return token, nil
}

// dropSaved removes retrieved items that the same round has just
// overwritten; the client's pushed state wins.
func dropSaved(retrieved []models.Item, savedMarkers map[string]int64) []models.Item {
	if len(savedMarkers) == 0 {
		return retrieved
	}

	kept := make([]models.Item, 0, len(retrieved))
	for _, item := range retrieved {
		if _, ok := savedMarkers[item.UUID]; ok {
			continue
		}
		kept = append(kept, item)
	}

	return kept
}
