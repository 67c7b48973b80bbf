package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-item-sync/internal/service"
	"github.com/MKhiriev/go-item-sync/internal/store"
)

var errorStatusMap = map[error]int{
	ErrNoOwnerInContext:      http.StatusUnauthorized,
	ErrInvalidQueryParameter: http.StatusBadRequest,
	ErrInvalidJSON:           http.StatusBadRequest,
	ErrInvalidLimit:          http.StatusBadRequest,

	service.ErrEmptyUUID: http.StatusBadRequest,

	store.ErrItemNotFound: http.StatusNotFound,
	store.ErrStorage:      http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError hides storage details from clients.
func messageFromError(err error) string {
	if status := statusFromError(err); status == http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}
