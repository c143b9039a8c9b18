package slack

import (
	"context"

	"github.com/navikt/airtable-tasklists/pkg/errs"
	"github.com/navikt/airtable-tasklists/pkg/service"
	slackapi "github.com/slack-go/slack"
)

type slackAPI struct {
	webhookURL string
}

var _ service.SlackAPI = &slackAPI{}

func (a *slackAPI) SendWebhookMessage(ctx context.Context, text string) error {
	const op errs.Op = "slackAPI.SendWebhookMessage"

	err := slackapi.PostWebhookContext(ctx, a.webhookURL, &slackapi.WebhookMessage{
		Text: text,
	})
	if err != nil {
		return errs.E(errs.IO, op, err)
	}

	return nil
}

func NewSlackAPI(webhookURL string) *slackAPI {
	return &slackAPI{
		webhookURL: webhookURL,
	}
}
