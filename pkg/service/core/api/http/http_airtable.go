package http

import (
	"context"
	"errors"
	"time"

	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	operationListTables  = "list_tables"
	operationCreateTable = "create_table"

	statusOK = "ok"
)

var _ service.AirtableAPI = &airtableAPI{}

type airtableAPI struct {
	ops      airtable.Operations
	baseID   string
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func (a *airtableAPI) BaseID() string {
	return a.baseID
}

func (a *airtableAPI) ListTables(ctx context.Context) (int, error) {
	const op errs.Op = "airtableAPI.ListTables"

	start := time.Now()
	tables, err := a.ops.ListTables(ctx, a.baseID)
	a.observe(operationListTables, start, err)

	if err != nil {
		return 0, errs.E(kindFor(err), op, err)
	}

	return len(tables.Tables), nil
}

func (a *airtableAPI) CreateTable(ctx context.Context, table airtable.CreateTableRequest) (*service.CreatedTable, error) {
	const op errs.Op = "airtableAPI.CreateTable"

	start := time.Now()
	created, err := a.ops.CreateTable(ctx, a.baseID, table)
	a.observe(operationCreateTable, start, err)

	if err != nil {
		return nil, errs.E(kindFor(err), op, err)
	}

	return &service.CreatedTable{
		ID:            created.ID,
		Name:          created.Name,
		FieldsCreated: len(created.Fields),
	}, nil
}

// Metrics returns the collectors that must be registered for the request
// metrics to be exported.
func (a *airtableAPI) Metrics() []prometheus.Collector {
	return []prometheus.Collector{a.requests, a.duration}
}

func (a *airtableAPI) observe(operation string, start time.Time, err error) {
	a.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	a.requests.WithLabelValues(operation, requestStatus(err)).Inc()
}

func requestStatus(err error) string {
	if err == nil {
		return statusOK
	}

	var apiErr *airtable.APIError
	if errors.As(err, &apiErr) {
		return string(apiErr.Reason())
	}

	var netErr *airtable.NetworkError
	if errors.As(err, &netErr) {
		return "network_error"
	}

	return "decode_error"
}

func kindFor(err error) errs.Kind {
	var netErr *airtable.NetworkError
	if errors.As(err, &netErr) {
		return errs.IO
	}

	var apiErr *airtable.APIError
	if !errors.As(err, &apiErr) {
		return errs.Internal
	}

	switch apiErr.Reason() {
	case airtable.ReasonUnauthenticated:
		return errs.Unauthenticated
	case airtable.ReasonDuplicateTable:
		return errs.Exist
	case airtable.ReasonInvalidRequest:
		return errs.InvalidRequest
	case airtable.ReasonNotFound:
		return errs.NotExist
	case airtable.ReasonRateLimited:
		return errs.RateLimited
	}

	return errs.IO
}

func NewAirtableAPI(ops airtable.Operations, baseID string) *airtableAPI {
	return &airtableAPI{
		ops:    ops,
		baseID: baseID,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airtable_tasklists",
			Name:      "airtable_requests_total",
			Help:      "Requests made to the Airtable API, by operation and outcome.",
		}, []string{"operation", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "airtable_tasklists",
			Name:      "airtable_request_duration_seconds",
			Help:      "Duration of requests made to the Airtable API.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
