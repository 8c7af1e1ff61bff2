package test

import "context"

// HandledMessage captures one dispatched webhook message.
type HandledMessage struct {
	SenderID string
	Text     string
}

// WebhookFacadeStub implements the webhook handler facade. Unset
// verification hooks accept everything.
type WebhookFacadeStub struct {
	Handled              []HandledMessage
	HandleFn             func(ctx context.Context, senderID, text string)
	VerifySignatureFn    func(body []byte, header string) bool
	VerifySubscriptionFn func(mode, token string) bool
}

// HandleMessage records the dispatched message.
func (s *WebhookFacadeStub) HandleMessage(ctx context.Context, senderID, text string) {
	s.Handled = append(s.Handled, HandledMessage{SenderID: senderID, Text: text})
	if s.HandleFn != nil {
		s.HandleFn(ctx, senderID, text)
	}
}

// VerifySignature delegates to the hook or accepts.
func (s *WebhookFacadeStub) VerifySignature(body []byte, header string) bool {
	if s.VerifySignatureFn != nil {
		return s.VerifySignatureFn(body, header)
	}
	return true
}

// VerifySubscription delegates to the hook or accepts.
func (s *WebhookFacadeStub) VerifySubscription(mode, token string) bool {
	if s.VerifySubscriptionFn != nil {
		return s.VerifySubscriptionFn(mode, token)
	}
	return true
}
