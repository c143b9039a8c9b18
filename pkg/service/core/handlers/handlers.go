package handlers

import (
	"time"

	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/navikt/airtable-tasklists/pkg/service/core"
)

type Handlers struct {
	StatusHandler   *StatusHandler
	LogsHandler     *LogsHandler
	AirtableHandler *AirtableHandler
}

func NewHandlers(
	s *core.Services,
	sink service.LogSink,
	recentLimit int,
) *Handlers {
	return &Handlers{
		StatusHandler:   NewStatusHandler(time.Now),
		LogsHandler:     NewLogsHandler(sink, recentLimit),
		AirtableHandler: NewAirtableHandler(s.AirtableService),
	}
}
