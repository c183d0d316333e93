package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/util/i18n"
)

func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if t, ok := ctx.Locals(constant.LocalsTranslatorKey).(ut.Translator); ok {
		return t
	}
	return i18n.UT.GetFallback()
}
