package handlers

import (
	"context"
	"net/http"

	"github.com/navikt/airtable-tasklists/pkg/service"
)

type LogsHandler struct {
	sink  service.LogSink
	limit int
}

func (h *LogsHandler) Logs(_ context.Context, _ *http.Request, _ any) (*service.Logs, error) {
	return &service.Logs{
		Logs: h.sink.Recent(h.limit),
	}, nil
}

func NewLogsHandler(sink service.LogSink, limit int) *LogsHandler {
	return &LogsHandler{
		sink:  sink,
		limit: limit,
	}
}
