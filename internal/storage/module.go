package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ndrsndbk/stampbot/internal/config"
	"github.com/ndrsndbk/stampbot/internal/domain/repository"
	"github.com/ndrsndbk/stampbot/internal/storage/postgres"
	"github.com/ndrsndbk/stampbot/internal/storage/supabase"
)

// Module wires the state store. A direct DSN wins over the REST
// surface; with neither configured the bot runs on a logged no-op
// store instead of refusing to start.
var Module = fx.Options(
	fx.Provide(newFactory),
	fx.Provide(
		func(f repository.Factory) repository.CustomerRepository { return f.Customers() },
		func(f repository.Factory) repository.StreakRepository { return f.Streaks() },
	),
)

type factoryParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newFactory(p factoryParams) (repository.Factory, error) {
	switch {
	case p.Config.DatabaseURI != "":
		store, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				store.Close()
				return nil
			},
		})
		p.Logger.Info("state store: postgres")
		return store, nil

	case p.Config.SupabaseURL != "" && p.Config.SupabaseServiceKey != "":
		store, err := supabase.New(p.Config.SupabaseURL, p.Config.SupabaseServiceKey, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Logger.Info("state store: supabase rest")
		return store, nil

	default:
		p.Logger.Warn("state store credentials missing, running degraded")
		return NewNoop(p.Logger), nil
	}
}
