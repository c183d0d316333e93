package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/flog"
)

// RequestID copies the request id assigned by the logger chain into ctx.Locals for handlers and
// middlewares that do not have access to the user context.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := flog.ID(c.UserContext())
		if ok {
			c.Locals(constant.ContextKeyRequestID, id.String())
		}
		return c.Next()
	}
}
