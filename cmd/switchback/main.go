// Command switchback serves the item catalog over versioned routes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

const name = "switchback"

// overridden during build with ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cmd := &cli.Command{
		Name:    name,
		Usage:   "Serve HTTP routes by path-embedded API version",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env",
				Usage:   "Environment the app runs in (e.g., DEVELOPMENT, PRODUCTION)",
				Sources: cli.EnvVars("ENVIRONMENT"),
			},
			&cli.StringFlag{
				Name:    "routes",
				Aliases: []string{"r"},
				Value:   defaultRouteTable,
				Usage:   "Route table to load; read from the working directory, else the bundled catalog",
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			routesCmd(out),
		},
	}

	return cmd.Run(ctx, args)
}
