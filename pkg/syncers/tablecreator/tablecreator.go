// Package tablecreator provisions the Task Lists table once, shortly after the
// server has started listening.
package tablecreator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/navikt/airtable-tasklists/pkg/tasklists"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var ErrNotLeader = fmt.Errorf("not leader")

type LeaderChecker interface {
	IsLeader(ctx context.Context) (bool, error)
}

type Runner struct {
	api    service.AirtableAPI
	sink   service.LogSink
	slack  service.SlackAPI
	leader LeaderChecker
	errs   *prometheus.CounterVec
	log    zerolog.Logger
}

func New(
	api service.AirtableAPI,
	sink service.LogSink,
	slack service.SlackAPI,
	leader LeaderChecker,
	errs *prometheus.CounterVec,
	log zerolog.Logger,
) *Runner {
	return &Runner{
		api:    api,
		sink:   sink,
		slack:  slack,
		leader: leader,
		errs:   errs,
		log:    log,
	}
}

// Run waits for startupDelay and makes a single attempt at creating the table.
// Failures are logged, never returned.
func (r *Runner) Run(ctx context.Context, startupDelay time.Duration) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(startupDelay):
	}

	log := r.log.With().Str("attempt_id", uuid.New().String()).Logger()

	log.Info().Msg("Server started. Creating Task Lists table...")

	created, err := r.RunOnce(ctx)
	if err != nil {
		if errors.Is(err, ErrNotLeader) {
			log.Info().Msg("not leader, skipping table creation")
			return
		}

		r.errs.WithLabelValues("CreateTableOnStartup").Inc()
		log.Error().Err(err).Strs("stack", errs.OpStack(err)).Msg("creating table on startup")
		r.notify(ctx, log, fmt.Sprintf("Task Lists table could not be created in base %s: %s", r.api.BaseID(), errs.Message(err)))

		return
	}

	log.Info().Str("table_id", created.ID).Msg("table created on startup")
	r.notify(ctx, log, fmt.Sprintf("Task Lists table %s created in base %s", created.ID, r.api.BaseID()))
}

func (r *Runner) RunOnce(ctx context.Context) (*service.CreatedTable, error) {
	const op errs.Op = "tablecreator.RunOnce"

	isLeader, err := r.leader.IsLeader(ctx)
	if err != nil {
		return nil, errs.E(op, fmt.Errorf("checking leader status: %w", err))
	}

	if !isLeader {
		return nil, ErrNotLeader
	}

	table := tasklists.Table()

	err = table.Validate()
	if err != nil {
		r.sink.Error(fmt.Sprintf("❌ Auto-creation failed: %s", err))
		return nil, errs.E(errs.Validation, op, err)
	}

	created, err := r.api.CreateTable(ctx, table)
	if err != nil {
		r.sink.Error(fmt.Sprintf("❌ Auto-creation failed: %s", errs.Message(err)))
		return nil, errs.E(op, err)
	}

	r.sink.Info("✅ Task Lists table created automatically on startup!")

	return created, nil
}

func (r *Runner) notify(ctx context.Context, log zerolog.Logger, text string) {
	err := r.slack.SendWebhookMessage(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("sending slack notification")
	}
}
