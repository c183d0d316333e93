package httpserver

import (
	"errors"
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/constant"
	"mergington.dev/activities/internal/pkg/apierr"
)

const codeUnknownError = "UNKNOWN_ERROR"

func handleCustomError(ctx *fiber.Ctx, e *apierr.APIError) error {
	if e.StatusCode < fiber.StatusInternalServerError {
		log.Ctx(ctx.UserContext()).Debug().
			Err(e).
			Str("method", ctx.Method()).
			Str("path", ctx.Path()).
			Msg(e.Message)
	}

	body := fiber.Map{
		"detail": e.Message,
		"code":   e.ErrorCode,
	}

	// Add extra details if needed
	if e.Extras != nil && len(*e.Extras) > 0 {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var apiErr *apierr.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < fiber.StatusInternalServerError {
		return handleCustomError(ctx, apiErr)
	}

	// Default 500 statuscode
	re := *apierr.ErrInternalError
	if apiErr != nil {
		re = *apiErr
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		// Overwrite status code if fiber.Error type & provided code
		re.StatusCode = fiberErr.Code
		re.ErrorCode = codeUnknownError
		re.Message = fiberErr.Message
	}

	if re.StatusCode < fiber.StatusInternalServerError {
		// routing errors such as 404 / 405 are client errors
		return handleCustomError(ctx, &re)
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		if id, ok := ctx.Locals(constant.ContextKeyRequestID).(string); ok {
			hub.Scope().SetTag("request_id", id)
		}
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
