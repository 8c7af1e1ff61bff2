package signature

import (
	"go.uber.org/fx"

	"github.com/ndrsndbk/stampbot/internal/config"
)

// Module provides the webhook signature verifier to the fx container.
var Module = fx.Provide(func(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.WebhookAppSecret)
})
