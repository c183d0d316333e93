package apierr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusUnprocessableEntity, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]interface{}

// APIError is rendered by the HTTP error handler as {"detail": Message, "code": ErrorCode, ...Extras}.
type APIError struct {
	StatusCode int    `example:"400"`
	ErrorCode  string `example:"ALREADY_SIGNED_UP"`
	Message    string `example:"Student is already signed up for this activity"`
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e APIError) Msg(format string, parts ...interface{}) *APIError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e APIError) WithExtras(extras Extras) *APIError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations interface{}) *APIError {
	return ErrInvalidReq.WithExtras(Extras{"violations": violations})
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
