package service

import "context"

type SlackAPI interface {
	SendWebhookMessage(ctx context.Context, text string) error
}
