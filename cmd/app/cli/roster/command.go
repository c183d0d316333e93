package roster

import (
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	cliapp "mergington.dev/activities/cmd/app/cli"
	"mergington.dev/activities/internal/core/activity"
)

type CommandDeps struct {
	fx.In

	ActivityService *activity.Service
}

func depsFn[T any]() func() (T, error) {
	return func() (T, error) {
		var deps T
		err := cliapp.Start(fx.Populate(&deps))
		return deps, err
	}
}

func Command() *cli.Command {
	return command(depsFn[CommandDeps]())
}

func command(depsFn func() (CommandDeps, error)) *cli.Command {
	return &cli.Command{
		Name:        "roster",
		Usage:       "print the activity directory",
		Description: "loads the activity seed (MERGINGTON_SEED_PATH or the built-in list), validates it and prints the directory as JSON",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "print the directory on a single line",
			},
			&cli.StringFlag{
				Name:  "activity",
				Usage: "print only the named activity",
			},
		},
		Action: func(c *cli.Context) error {
			deps, err := depsFn()
			if err != nil {
				return err
			}
			return run(c, deps)
		},
	}
}

func run(c *cli.Context, deps CommandDeps) error {
	activities, err := selectActivities(c, deps.ActivityService)
	if err != nil {
		return err
	}

	var b []byte
	if c.Bool("compact") {
		b, err = json.Marshal(activities)
	} else {
		b, err = json.MarshalIndent(activities, "", "  ")
	}
	if err != nil {
		return err
	}

	_, err = c.App.Writer.Write(append(b, '\n'))
	return err
}

func selectActivities(c *cli.Context, s *activity.Service) (activity.Roster, error) {
	name := c.String("activity")
	if name == "" {
		return s.GetActivities(c.Context)
	}

	m, err := s.GetActivity(c.Context, name)
	if err != nil {
		return nil, errors.Wrapf(err, "roster: %q", name)
	}
	return activity.Roster{m}, nil
}
