package core

import (
	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/navikt/airtable-tasklists/pkg/service/core/api"
)

type Services struct {
	AirtableService service.AirtableService
}

func NewServices(
	clients *api.Clients,
	sink service.LogSink,
) *Services {
	return &Services{
		AirtableService: NewAirtableService(clients.AirtableAPI, sink),
	}
}
