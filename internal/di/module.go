package di

import (
	"go.uber.org/fx"

	"github.com/ndrsndbk/stampbot/internal/adapter/messenger"
	"github.com/ndrsndbk/stampbot/internal/app"
	"github.com/ndrsndbk/stampbot/internal/config"
	"github.com/ndrsndbk/stampbot/internal/logger"
	"github.com/ndrsndbk/stampbot/internal/pkg/signature"
	"github.com/ndrsndbk/stampbot/internal/server/http/handlers"
	"github.com/ndrsndbk/stampbot/internal/server/http/router"
	"github.com/ndrsndbk/stampbot/internal/storage"
	"github.com/ndrsndbk/stampbot/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		signature.Module,
		storage.Module,
		messenger.Module,
		usecase.Module,
		fx.Provide(func(facade *app.StampFacade) handlers.WebhookFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
