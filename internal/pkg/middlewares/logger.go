package middlewares

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/pkg/flog"
	"mergington.dev/activities/internal/util"
)

// Logger installs the request scoped logger and the access log.
func Logger(app *fiber.App) {
	app.Use(
		flog.Inject(log.Logger, map[string]flog.Field{
			"ip":         flog.IP,
			"method":     flog.Method,
			"url":        flog.Path,
			"user_agent": flog.UserAgent,
		}),
		flog.RequestID("request_id", constant.RequestIDHeader),
		accessLog(),
	)
}

func accessLog() fiber.Handler {
	return flog.Access(func(ctx *fiber.Ctx, duration time.Duration, err error) {
		status := responseStatus(ctx, err)

		evt := flog.From(ctx).Info()
		if key := util.IdempotencyKeyFromLocals(ctx); key != "" {
			evt = evt.Str("idempotency_key", key)
		}
		evt.
			Str("component", "httpreq").
			Int("status", status).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", duration).
			Msg("received request")
	})
}

// responseStatus is the status the client will see. Errors are rendered by the app error
// handler after the middlewares return, so their status comes from the error itself.
func responseStatus(c *fiber.Ctx, err error) int {
	var apiErr *apierr.APIError
	var fiberErr *fiber.Error
	switch {
	case err == nil:
		return c.Response().StatusCode()
	case errors.As(err, &apiErr):
		return apiErr.StatusCode
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
