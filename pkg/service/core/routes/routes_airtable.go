package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/navikt/airtable-tasklists/pkg/service/core/handlers"
	"github.com/navikt/airtable-tasklists/pkg/service/core/transport"
	"github.com/rs/zerolog"
)

type AirtableEndpoints struct {
	TestConnection http.HandlerFunc
	CreateTable    http.HandlerFunc
}

func NewAirtableEndpoints(log zerolog.Logger, h *handlers.AirtableHandler) *AirtableEndpoints {
	return &AirtableEndpoints{
		TestConnection: transport.For(h.TestConnection).Build(log),
		CreateTable:    transport.For(h.CreateTable).Build(log),
	}
}

func NewAirtableRoutes(endpoints *AirtableEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Post("/test", endpoints.TestConnection)
		router.Post("/create-table", endpoints.CreateTable)
	}
}
