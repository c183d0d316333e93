package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"mergington.dev/activities/cmd/app/cli/roster"
	"mergington.dev/activities/cmd/app/server"
	"mergington.dev/activities/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "mergington",
		Description: "Mergington High School extracurricular activities backend. Built with Go, fiber and go.uber.org/fx. Optionally uses Redis to share idempotency state between replicas.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
			roster.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
