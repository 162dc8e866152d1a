package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/example/catalog"
	"github.com/xy-planning-network/switchback/ranger"
)

const defaultRouteTable = catalog.RouteTable

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the web server until interrupted",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rng, err := newRanger(ctx, cmd)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}
}

func routesCmd(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "routes",
		Usage: "List the registered routes and the versions each serves",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colorized output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			rng, err := newRanger(ctx, cmd)
			if err != nil {
				return err
			}

			versioned := color.New(color.FgGreen)
			if cmd.Bool("no-color") {
				versioned.DisableColor()
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tMETHODS\tTEMPLATE\tVERSIONS")
			for _, info := range rng.Routes() {
				versions := "-"
				if info.Versioned {
					versions = versioned.Sprint(info.Condition)
				}

				fmt.Fprintf(tw, "%s\t%v\t%s\t%s\n", info.Name, info.Methods, info.Template, versions)
			}

			return tw.Flush()
		},
	}
}

// newRanger constructs a *ranger.Ranger serving the catalog through the route table cmd names.
func newRanger(ctx context.Context, cmd *cli.Command) (*ranger.Ranger, error) {
	rng, err := ranger.New(
		ranger.WithContext(ctx),
		ranger.WithEnv(switchback.Environment(strings.ToUpper(cmd.String("env")))),
	)
	if err != nil {
		return nil, err
	}

	table, err := ranger.OpenRouteTable(cmd.String("routes"), catalog.Routes)
	if err != nil {
		return nil, err
	}

	if err := rng.HandleTable(table, catalog.NewHandler(rng.Responder).Map()); err != nil {
		return nil, err
	}

	return rng, nil
}
