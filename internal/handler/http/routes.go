package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/healthz", h.health)

	router.Route("/debug", func(r chi.Router) {
		r.Get("/config", h.getConfig)
		r.Get("/settings", h.listSettings)
		r.Get("/settings/{name}", h.getSetting)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
