package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/navikt/airtable-tasklists/pkg/tasklists"
)

var _ service.AirtableService = &airtableService{}

type airtableService struct {
	api  service.AirtableAPI
	sink service.LogSink
}

func (s *airtableService) TestConnection(ctx context.Context) (*service.ConnectionTest, error) {
	const op errs.Op = "airtableService.TestConnection"

	s.sink.Info("Testing Airtable connection...")

	n, err := s.api.ListTables(ctx)
	if err != nil {
		s.sink.Error(fmt.Sprintf("❌ Connection test failed: %s", errs.Message(err)))

		return nil, errs.E(op, err)
	}

	s.sink.Info("✅ Airtable connection successful")

	return &service.ConnectionTest{
		BaseID:         s.api.BaseID(),
		ExistingTables: n,
	}, nil
}

func (s *airtableService) CreateTaskListsTable(ctx context.Context) (*service.CreatedTable, error) {
	const op errs.Op = "airtableService.CreateTaskListsTable"

	s.sink.Info("Creating Task Lists table...")

	table := tasklists.Table()

	err := table.Validate()
	if err != nil {
		s.sink.Error(fmt.Sprintf("❌ Failed to create table: %s", err))

		return nil, errs.E(errs.Validation, op, err)
	}

	created, err := s.api.CreateTable(ctx, table)
	if err != nil {
		s.sink.Error(fmt.Sprintf("❌ Failed to create table: %s", errs.Message(err)))

		var apiErr *airtable.APIError
		if errors.As(err, &apiErr) && len(apiErr.Body) > 0 {
			s.sink.Error(fmt.Sprintf("API Error: %s", apiErr.Body))
		}

		return nil, errs.E(op, err)
	}

	s.sink.Info("✅ Task Lists table created successfully!")
	s.sink.Info(fmt.Sprintf("Table ID: %s", created.ID))

	return created, nil
}

func NewAirtableService(api service.AirtableAPI, sink service.LogSink) *airtableService {
	return &airtableService{
		api:  api,
		sink: sink,
	}
}
