package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-item-sync/internal/logger"
	"github.com/MKhiriev/go-item-sync/internal/utils"
	"github.com/MKhiriev/go-item-sync/models"
)

// listItems serves GET /api/items?since=&max=&limit=.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, found := utils.OwnerFromContext(ctx)
	if !found {
		h.fail(w, r, "*Handler.listItems", ErrNoOwnerInContext)
		return
	}

	query, err := parseItemsQuery(r, owner)
	if err != nil {
		h.fail(w, r, "*Handler.listItems", err)
		return
	}

	items, err := h.services.ItemService.ItemsOfUser(ctx, query)
	if err != nil {
		h.fail(w, r, "*Handler.listItems", err)
		return
	}

	log.Debug().Str("func", "*Handler.listItems").Int("items", len(items)).Send()

	utils.WriteJSON(w, models.ItemsResponse{Items: items, Length: len(items)}, http.StatusOK)
}

// getMaxVersion serves GET /api/items/max_version.
func (h *Handler) getMaxVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, found := utils.OwnerFromContext(ctx)
	if !found {
		h.fail(w, r, "*Handler.getMaxVersion", ErrNoOwnerInContext)
		return
	}

	maxVersion, err := h.services.ItemService.CurrentMaxVersion(ctx, owner)
	if err != nil {
		h.fail(w, r, "*Handler.getMaxVersion", err)
		return
	}

	utils.WriteJSON(w, models.MaxVersionResponse{MaxVersion: maxVersion}, http.StatusOK)
}

// getItem serves GET /api/items/{uuid}.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, found := utils.OwnerFromContext(ctx)
	if !found {
		h.fail(w, r, "*Handler.getItem", ErrNoOwnerInContext)
		return
	}

	item, err := h.services.ItemService.FindItemByUUID(ctx, owner, chi.URLParam(r, "uuid"))
	if err != nil {
		h.fail(w, r, "*Handler.getItem", err)
		return
	}

	utils.WriteJSON(w, item, http.StatusOK)
}

// upsertItem serves PUT /api/items with a single SyncItem body.
func (h *Handler) upsertItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	owner, found := utils.OwnerFromContext(ctx)
	if !found {
		h.fail(w, r, "*Handler.upsertItem", ErrNoOwnerInContext)
		return
	}

	var item models.SyncItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		h.fail(w, r, "*Handler.upsertItem", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	versionMarker, err := h.services.ItemService.Upsert(ctx, owner, item)
	if err != nil {
		h.fail(w, r, "*Handler.upsertItem", err)
		return
	}

	log.Debug().
		Str("func", "*Handler.upsertItem").
		Str("uuid", item.UUID).
		Int64("version_marker", versionMarker).
		Msg("item saved")

	utils.WriteJSON(w, models.UpsertResponse{VersionMarker: versionMarker}, http.StatusOK)
}

// fail logs err and writes the mapped status with a JSON error body.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Send()

	utils.WriteError(w, messageFromError(err), status)
}

func parseItemsQuery(r *http.Request, owner int64) (models.ItemsQuery, error) {
	query := models.ItemsQuery{Owner: owner}
	values := r.URL.Query()

	var err error
	if query.SinceVersion, err = parseOptionalInt64(values.Get("since")); err != nil {
		return models.ItemsQuery{}, fmt.Errorf("%w: since: %w", ErrInvalidQueryParameter, err)
	}
	if query.MaxVersion, err = parseOptionalInt64(values.Get("max")); err != nil {
		return models.ItemsQuery{}, fmt.Errorf("%w: max: %w", ErrInvalidQueryParameter, err)
	}

	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return models.ItemsQuery{}, fmt.Errorf("%w: limit: %w", ErrInvalidQueryParameter, err)
		}
		if limit == 0 {
			return models.ItemsQuery{}, ErrInvalidLimit
		}
		query.Limit = &limit
	}

	return query, nil
}

func parseOptionalInt64(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
