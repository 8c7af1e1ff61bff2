package app

import (
	"context"

	"github.com/ndrsndbk/stampbot/internal/config"
	"github.com/ndrsndbk/stampbot/internal/pkg/signature"
	"github.com/ndrsndbk/stampbot/internal/usecase"
)

// StampFacade bridges the HTTP layer and the chat use cases: signature
// and subscription checks plus message dispatch.
type StampFacade struct {
	dispatcher  *usecase.Dispatcher
	verifier    *signature.Verifier
	verifyToken string
}

func NewStampFacade(dispatcher *usecase.Dispatcher, verifier *signature.Verifier, cfg *config.Config) *StampFacade {
	return &StampFacade{dispatcher: dispatcher, verifier: verifier, verifyToken: cfg.VerifyToken}
}

func (f *StampFacade) HandleMessage(ctx context.Context, senderID, text string) {
	f.dispatcher.Dispatch(ctx, senderID, text)
}

func (f *StampFacade) VerifySignature(body []byte, header string) bool {
	return f.verifier.Verify(body, header)
}

func (f *StampFacade) VerifySubscription(mode, token string) bool {
	return mode == "subscribe" && token == f.verifyToken
}
