package util

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
)

func IdempotencyKeyFromLocals(ctx *fiber.Ctx) string {
	l, ok := ctx.Locals(constant.IdempotencyLocalsKey).(string)
	if !ok {
		return ""
	}

	return l
}
