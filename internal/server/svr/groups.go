package svr

import (
	"github.com/gofiber/fiber/v2"

	"mergington.dev/activities/internal/pkg/cachectrl"
)

// Activities is the router for the activity directory endpoints.
type Activities struct {
	fiber.Router
}

// Meta is the router for operational endpoints: health and build info.
type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*Activities, *Meta) {
	// rosters change on every signup
	activities := app.Group("/activities", cachectrl.NoStoreHandler())
	meta := app.Group("/_")

	return &Activities{Router: activities}, &Meta{Router: meta}
}
