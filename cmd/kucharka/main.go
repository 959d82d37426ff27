// Package main provides kucharka, the maintenance command line for the
// recipe collection
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "kucharka",
		Usage: "manage the stored recipe collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "configuration file",
				EnvVars: []string{"KUCHARKA_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "show application logs",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list stored recipes",
				Action: ListAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Aliases: []string{"s"}, Usage: "name or description contains"},
					&cli.StringFlag{Name: "category", Usage: "exact category"},
				},
			},
			{
				Name:   "export",
				Usage:  "write the collection to a file or stdout",
				Action: ExportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml (default from extension)"},
				},
			},
			{
				Name:      "import",
				Usage:     "replace the collection with the recipes in a file",
				ArgsUsage: "<file>",
				Action:    ImportAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "json or yaml (default from extension)"},
				},
			},
			{
				Name:      "fetch",
				Usage:     "import one recipe from a web page",
				ArgsUsage: "<url>",
				Action:    FetchAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "lang", Usage: "cz or sk"},
				},
			},
			{
				Name:   "reset",
				Usage:  "restore the bundled recipes",
				Action: ResetAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "do not ask for confirmation"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
