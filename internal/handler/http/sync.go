package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-item-sync/internal/utils"
	"github.com/MKhiriev/go-item-sync/models"
)

// syncItems serves POST /api/items/sync: one push and pull round.
func (h *Handler) syncItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, found := utils.OwnerFromContext(ctx)
	if !found {
		h.fail(w, r, "*Handler.syncItems", ErrNoOwnerInContext)
		return
	}

	var syncRequest models.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&syncRequest); err != nil {
		h.fail(w, r, "*Handler.syncItems", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if syncRequest.Limit != nil && *syncRequest.Limit == 0 {
		h.fail(w, r, "*Handler.syncItems", ErrInvalidLimit)
		return
	}

	response, err := h.services.SyncService.Sync(ctx, owner, syncRequest)
	if err != nil {
		h.fail(w, r, "*Handler.syncItems", err)
		return
	}

	utils.WriteJSON(w, response, http.StatusOK)
}
