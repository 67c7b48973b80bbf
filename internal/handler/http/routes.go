package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(withGzipRequests, middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/items", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/", h.listItems)
		r.Put("/", h.upsertItem)
		r.Get("/max_version", h.getMaxVersion)
		r.Post("/sync", h.syncItems)
		r.Get("/{uuid}", h.getItem)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
