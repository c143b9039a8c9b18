package service

import (
	"context"

	"github.com/navikt/airtable-tasklists/pkg/airtable"
)

// AirtableAPI is the outbound port to the Airtable metadata API, bound to a
// single base.
type AirtableAPI interface {
	BaseID() string
	ListTables(ctx context.Context) (int, error)
	CreateTable(ctx context.Context, table airtable.CreateTableRequest) (*CreatedTable, error)
}

type AirtableService interface {
	TestConnection(ctx context.Context) (*ConnectionTest, error)
	CreateTaskListsTable(ctx context.Context) (*CreatedTable, error)
}

type ConnectionTest struct {
	BaseID         string `json:"baseId"`
	ExistingTables int    `json:"existingTables"`
}

type CreatedTable struct {
	ID            string `json:"tableId"`
	Name          string `json:"tableName"`
	FieldsCreated int    `json:"fieldsCreated"`
}
