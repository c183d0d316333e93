package server

import (
	"os"

	"github.com/urfave/cli/v2"
)

// flag name -> config environment variable it overrides
var envOverrides = map[string]string{
	"address": "MERGINGTON_SERVICE_ADDRESS",
	"seed":    "MERGINGTON_SEED_PATH",
}

func Command() *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "serve the activities API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "listen address, overrides MERGINGTON_SERVICE_ADDRESS",
			},
			&cli.StringFlag{
				Name:  "seed",
				Usage: "activity seed file, overrides MERGINGTON_SEED_PATH",
			},
		},
		Action: func(c *cli.Context) error {
			if err := applyOverrides(c); err != nil {
				return err
			}
			Run()
			return nil
		},
	}
}

func applyOverrides(c *cli.Context) error {
	for flag, env := range envOverrides {
		if !c.IsSet(flag) {
			continue
		}
		if err := os.Setenv(env, c.String(flag)); err != nil {
			return err
		}
	}
	return nil
}
