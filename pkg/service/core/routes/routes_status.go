package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/navikt/airtable-tasklists/pkg/service/core/handlers"
	"github.com/navikt/airtable-tasklists/pkg/service/core/transport"
	"github.com/rs/zerolog"
)

type StatusEndpoints struct {
	Index  http.HandlerFunc
	Health http.HandlerFunc
}

func NewStatusEndpoints(log zerolog.Logger, h *handlers.StatusHandler) *StatusEndpoints {
	return &StatusEndpoints{
		Index:  transport.For(h.Index).Build(log),
		Health: transport.For(h.Health).Build(log),
	}
}

func NewStatusRoutes(endpoints *StatusEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Get("/", endpoints.Index)
		router.Get("/health", endpoints.Health)
	}
}
