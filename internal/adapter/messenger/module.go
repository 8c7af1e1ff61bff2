package messenger

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ndrsndbk/stampbot/internal/config"
	"github.com/ndrsndbk/stampbot/internal/usecase"
)

// Module exposes the Graph API client as the dispatcher's notifier.
var Module = fx.Options(
	fx.Provide(newClient),
	fx.Provide(func(c *Client) usecase.Notifier { return c }),
)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) *Client {
	return NewClient(p.Config.GraphAPIBaseURL, p.Config.GraphAPIVersion, p.Config.BusinessID, p.Config.AccessToken, p.Logger)
}
