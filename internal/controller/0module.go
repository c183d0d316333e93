package controller

import (
	"go.uber.org/fx"

	controllerapi "mergington.dev/activities/internal/controller/api"
	controllermeta "mergington.dev/activities/internal/controller/meta"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (activities)
		controllerapi.Module(),

		// Controllers (meta)
		controllermeta.Module(),
	)
}
