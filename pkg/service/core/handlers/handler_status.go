package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/navikt/airtable-tasklists/pkg/service"
)

const purpose = "Create Task Lists table in Growth AI Airtable base"

var endpoints = []string{
	"GET / - This status page",
	"GET /health - Health check",
	"GET /logs - View recent logs",
	"POST /test - Test table creation",
	"POST /create-table - Create the Task Lists table",
}

type StatusHandler struct {
	now func() time.Time
}

func (h *StatusHandler) Index(_ context.Context, _ *http.Request, _ any) (*service.Index, error) {
	return &service.Index{
		Status:    "active",
		Purpose:   purpose,
		Endpoints: append([]string(nil), endpoints...),
	}, nil
}

func (h *StatusHandler) Health(_ context.Context, _ *http.Request, _ any) (*service.Health, error) {
	return &service.Health{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(service.TimestampLayout),
	}, nil
}

func NewStatusHandler(now func() time.Time) *StatusHandler {
	return &StatusHandler{
		now: now,
	}
}
