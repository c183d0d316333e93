package middlewares

import (
	"net/http"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"mergington.dev/activities/internal/constant"
)

// SentryTracing opens a Sentry transaction per request, continuing an inbound sentry-trace.
// Probes under /_ and requests flagged with the slim header are not traced.
func SentryTracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), "/_/") || c.Get(constant.SlimHeaderKey) != "" {
			return c.Next()
		}

		hub := fibersentry.GetHubFromContext(c)
		if hub == nil {
			return c.Next()
		}
		if id, ok := c.Locals(constant.ContextKeyRequestID).(string); ok {
			hub.Scope().SetTag("request_id", id)
		}

		var r http.Request
		if err := fasthttpadaptor.ConvertRequest(c.Context(), &r, true); err != nil {
			return err
		}
		span := sentry.StartSpan(
			sentry.SetHubOnContext(c.UserContext(), hub),
			"http.server",
			sentry.ContinueFromRequest(&r),
			sentry.TransactionName(c.Method()+" "+c.Path()),
		)
		defer span.Finish()

		c.SetUserContext(span.Context())
		err := c.Next()
		span.Status = spanStatus(responseStatus(c, err))
		return err
	}
}

func spanStatus(code int) sentry.SpanStatus {
	switch {
	case code >= fiber.StatusInternalServerError:
		return sentry.SpanStatusInternalError
	case code == fiber.StatusNotFound:
		return sentry.SpanStatusNotFound
	case code >= fiber.StatusBadRequest:
		return sentry.SpanStatusInvalidArgument
	default:
		return sentry.SpanStatusOK
	}
}
