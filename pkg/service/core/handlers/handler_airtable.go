package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/navikt/airtable-tasklists/pkg/tasklists"
)

// Remote failures are reported in the same envelope as successes, with a 500
// status code, instead of going through errs.HTTPErrorResponse.

type TestConnectionResult struct {
	status int

	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	*service.ConnectionTest
	Error string `json:"error,omitempty"`
}

func (r *TestConnectionResult) StatusCode() int {
	return r.status
}

type CreateTableResult struct {
	status int

	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	*service.CreatedTable
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

func (r *CreateTableResult) StatusCode() int {
	return r.status
}

type AirtableHandler struct {
	service service.AirtableService
}

func (h *AirtableHandler) TestConnection(ctx context.Context, _ *http.Request, _ any) (*TestConnectionResult, error) {
	conn, err := h.service.TestConnection(ctx)
	if err != nil {
		return &TestConnectionResult{
			status:  http.StatusInternalServerError,
			Success: false,
			Error:   errs.Message(err),
		}, nil
	}

	return &TestConnectionResult{
		status:         http.StatusOK,
		Success:        true,
		Message:        "Connection test successful",
		ConnectionTest: conn,
	}, nil
}

func (h *AirtableHandler) CreateTable(ctx context.Context, _ *http.Request, _ any) (*CreateTableResult, error) {
	created, err := h.service.CreateTaskListsTable(ctx)
	if err != nil {
		result := &CreateTableResult{
			status:  http.StatusInternalServerError,
			Success: false,
			Error:   errs.Message(err),
		}

		var apiErr *airtable.APIError
		if errors.As(err, &apiErr) {
			result.Details = apiErr.Details()
		}

		return result, nil
	}

	return &CreateTableResult{
		status:       http.StatusOK,
		Success:      true,
		Message:      "Task Lists table created successfully!",
		CreatedTable: created,
		Details:      tasklists.Summary(),
	}, nil
}

func NewAirtableHandler(service service.AirtableService) *AirtableHandler {
	return &AirtableHandler{
		service: service,
	}
}
