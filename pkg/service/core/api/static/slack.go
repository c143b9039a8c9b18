package static

import (
	"context"

	"github.com/navikt/airtable-tasklists/pkg/service"
	"github.com/rs/zerolog"
)

var _ service.SlackAPI = &slackAPI{}

type slackAPI struct {
	log zerolog.Logger
}

func (s *slackAPI) SendWebhookMessage(_ context.Context, text string) error {
	s.log.Info().Msgf("no slack webhook configured, not sending: %v", text)

	return nil
}

func NewSlackAPI(log zerolog.Logger) *slackAPI {
	return &slackAPI{
		log: log,
	}
}
