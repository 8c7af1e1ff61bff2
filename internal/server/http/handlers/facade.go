package handlers

import "context"

// DispatchFacade processes a single inbound direct message.
type DispatchFacade interface {
	HandleMessage(ctx context.Context, senderID, text string)
}

// WebhookFacade is the application surface the webhook handlers depend on.
type WebhookFacade interface {
	DispatchFacade
	VerifySignature(body []byte, header string) bool
	VerifySubscription(mode, token string) bool
}
