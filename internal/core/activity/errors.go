package activity

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/pkg/apierr"
)

const (
	CodeActivityNotFound = "ACTIVITY_NOT_FOUND"
	CodeAlreadySignedUp  = "ALREADY_SIGNED_UP"
	CodeNotSignedUp      = "NOT_SIGNED_UP"
	CodeActivityFull     = "ACTIVITY_FULL"
)

var (
	ErrActivityNotFound = apierr.New(fiber.StatusNotFound, CodeActivityNotFound, "Activity not found")
	ErrAlreadySignedUp  = apierr.New(fiber.StatusBadRequest, CodeAlreadySignedUp, "Student is already signed up for this activity")
	ErrNotSignedUp      = apierr.New(fiber.StatusBadRequest, CodeNotSignedUp, "Student is not signed up for this activity")
	ErrActivityFull     = apierr.New(fiber.StatusBadRequest, CodeActivityFull, "Activity is full")
)
