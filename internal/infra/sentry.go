package infra

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"mergington.dev/activities/internal/app/appconfig"
	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/bininfo"
)

// SentryInit configures the global Sentry hub. Without a DSN, error reporting stays off.
func SentryInit(lc fx.Lifecycle, conf *appconfig.Config) error {
	if conf.SentryDSN == "" {
		log.Info().Str("evt.name", "infra.sentry.disabled").Msg("sentry disabled: no DSN configured")
		return nil
	}

	lc.Append(fx.StopHook(func() {
		sentry.Flush(2 * time.Second)
	}))

	return sentry.Init(sentry.ClientOptions{
		Dsn:              conf.SentryDSN,
		Release:          constant.ServiceName + "@" + bininfo.Version,
		Environment:      conf.AppContext.Env.String(),
		Debug:            conf.DevMode,
		AttachStacktrace: true,
		TracesSampleRate: conf.TracingSampleRate,
	})
}
