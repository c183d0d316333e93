package app

import (
	"time"

	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/app/appcontext"
	"mergington.dev/activities/internal/controller"
	"mergington.dev/activities/internal/core/activity"
	"mergington.dev/activities/internal/infra"
	"mergington.dev/activities/internal/pkg/logger"
	"mergington.dev/activities/internal/server"
	"mergington.dev/activities/internal/service"
)

func Options(ctx appcontext.Ctx, additionalOpts ...fx.Option) []fx.Option {
	conf, err := appconfig.Parse(ctx)
	if err != nil {
		panic(err)
	}

	// the global logger must be ready before fx logs its first event
	logger.Configure(conf)

	return append(BaseOptions(conf), additionalOpts...)
}

// BaseOptions assembles the application graph around an already parsed configuration.
func BaseOptions(conf *appconfig.Config) []fx.Option {
	return []fx.Option{
		fx.WithLogger(logger.Fx),
		fx.Supply(conf),

		infra.Module(),
		server.Module(),
		activity.Module(),
		service.Module(),

		// invokes run in registration order; Sentry must be up before routes are registered
		fx.Invoke(infra.SentryInit),
		controller.Module(),

		fx.StartTimeout(15 * time.Second),
		// upper bound in case fiber's own shutdown timeout does not return
		fx.StopTimeout(conf.HTTPServerShutdownTimeout + 30*time.Second),
	}
}

func New(ctx appcontext.Ctx, additionalOpts ...fx.Option) *fx.App {
	return fx.New(Options(ctx, additionalOpts...)...)
}
