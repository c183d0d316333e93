package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/util/i18n"
)

// first entry is the fallback
var supportedLanguages = language.NewMatcher([]language.Tag{
	language.English,
	language.Chinese,
})

// InjectI18n picks the validation message translator from Accept-Language.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tag, _ := language.MatchStrings(supportedLanguages, c.Get(fiber.HeaderAcceptLanguage))
		base, _ := tag.Base()

		trans, found := i18n.UT.GetTranslator(base.String())
		if !found {
			trans = i18n.UT.GetFallback()
		}
		c.Locals(constant.LocalsTranslatorKey, trans)

		return c.Next()
	}
}
