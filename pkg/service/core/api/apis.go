package api

import (
	"github.com/navikt/airtable-tasklists/pkg/airtable"
	"github.com/navikt/airtable-tasklists/pkg/config/v2"
	"github.com/navikt/airtable-tasklists/pkg/service"
	httpapi "github.com/navikt/airtable-tasklists/pkg/service/core/api/http"
	slackapi "github.com/navikt/airtable-tasklists/pkg/service/core/api/slack"
	"github.com/navikt/airtable-tasklists/pkg/service/core/api/static"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Clients struct {
	AirtableAPI service.AirtableAPI
	SlackAPI    service.SlackAPI

	metrics []prometheus.Collector
}

// Metrics returns the collectors exposed by the clients.
func (c *Clients) Metrics() []prometheus.Collector {
	return c.metrics
}

func NewClients(
	ops airtable.Operations,
	cfg config.Config,
	log zerolog.Logger,
) *Clients {
	airtableAPI := httpapi.NewAirtableAPI(ops, cfg.Airtable.BaseID)

	var slackAPI service.SlackAPI = slackapi.NewSlackAPI(cfg.Slack.WebhookURL)
	if cfg.Slack.WebhookURL == "" {
		slackAPI = static.NewSlackAPI(log.With().Str("component", "slack").Logger())
	}

	return &Clients{
		AirtableAPI: airtableAPI,
		SlackAPI:    slackAPI,
		metrics:     airtableAPI.Metrics(),
	}
}
