package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/cosmonaut-api/internal/config"
)

func main() {
	app := &cli.App{
		Name:  "cosmonaut-api",
		Usage: "REST service for the cosmonaut roster",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "env-file",
						Aliases: []string{"e"},
						Usage:   "Optional .env file to seed the environment from",
						Value:   config.DefaultEnvFile,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Enable verbose logging (overrides VERBOSE)",
					},
				},
				Action: run,
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
