package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/navikt/airtable-tasklists/pkg/service/core/handlers"
	"github.com/navikt/airtable-tasklists/pkg/service/core/transport"
	"github.com/rs/zerolog"
)

type LogsEndpoints struct {
	Logs http.HandlerFunc
}

func NewLogsEndpoints(log zerolog.Logger, h *handlers.LogsHandler) *LogsEndpoints {
	return &LogsEndpoints{
		Logs: transport.For(h.Logs).Build(log),
	}
}

func NewLogsRoutes(endpoints *LogsEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Get("/logs", endpoints.Logs)
	}
}
