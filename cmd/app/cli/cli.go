package cli

import (
	"context"

	"go.uber.org/fx"

	"mergington.dev/activities/internal/app"
	"mergington.dev/activities/internal/app/appcontext"
)

// Start builds the application graph for a one-shot command. The HTTP server is constructed but
// never listens.
func Start(module fx.Option) error {
	return app.New(appcontext.Declare(appcontext.EnvCLI), module).Start(context.Background())
}
