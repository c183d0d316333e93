package server

import (
	"go.uber.org/fx"

	"mergington.dev/activities/internal/server/httpserver"
	"mergington.dev/activities/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups))
}
