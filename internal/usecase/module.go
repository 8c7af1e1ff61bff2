package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ndrsndbk/stampbot/internal/config"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newCardRenderer,
	NewStreakUseCase,
	newDispatcher,
)

func newCardRenderer(cfg *config.Config) *CardRenderer {
	return NewCardRenderer(cfg.CardBaseURL)
}

type dispatcherParams struct {
	fx.In

	Customers repository.CustomerRepository
	Streaks   *StreakUseCase
	Cards     *CardRenderer
	Notifier  Notifier
	Config    *config.Config
	Logger    *slog.Logger
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Customers, p.Streaks, p.Cards, p.Notifier, p.Config.DashboardURL, p.Logger)
}
