package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/util"
	"mergington.dev/activities/internal/util/i18n"
)

var Validate = util.NewValidator()

// messages for the custom tags, per locale
var customMessages = map[string]map[string]string{
	"en": {"notblank": "{0} must not be blank"},
	"zh": {"notblank": "{0}不能为空白"},
}

func init() {
	defaults := map[string]func(*validator.Validate, ut.Translator) error{
		"en": enTranslations.RegisterDefaultTranslations,
		"zh": zhTranslations.RegisterDefaultTranslations,
	}

	for locale, register := range defaults {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := register(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
		}

		for tag, text := range customMessages[locale] {
			tag, text := tag, text
			err := Validate.RegisterTranslation(tag, tr, func(t ut.Translator) error {
				return t.Add(tag, text, true)
			}, func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field())
				return msg
			})
			if err != nil {
				log.Warn().Err(err).Str("locale", locale).Str("tag", tag).Msg("could not register translation")
			}
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// Translate renders validation errors in the requester's language.
func Translate(tr ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	violations := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, &ErrorResponse{
			Field:     fe.Field(),
			Violation: fe.Tag(),
			Message:   util.AddSpace(fe.Translate(tr)),
		})
	}
	return violations
}

// ValidQuery parses the query string into dest, which must be a pointer, and validates it.
// It returns an INVALID_REQUEST error listing the violations when validation fails.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	err := Validate.Struct(dest)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errors.Wrap(err, "validate request")
	}

	return apierr.NewInvalidViolations(Translate(TranslatorFromCtx(ctx), ve))
}
