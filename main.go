package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"math-genealogy-db/internal/dbcmd"
	"math-genealogy-db/internal/recordcmd"
)

func main() {
	app := &cli.App{
		Name:  "mgdb",
		Usage: "academic genealogy database toolkit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "database file path (default: next to the binary)",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "yaml config file (default: ./config.yaml, optional)",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "create the database and apply the schema",
				Action: dbcmd.InitAction,
			},
			{
				Name:   "stats",
				Usage:  "show per-table row counts",
				Action: dbcmd.StatsAction,
			},
			{
				Name:      "get",
				Usage:     "show a mathematician with dissertation, university and country resolved",
				ArgsUsage: "<record-number>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "format", Usage: "output format: json or yaml"},
				},
				Action: dbcmd.GetAction,
			},
			{
				Name:      "advisors",
				Usage:     "list a mathematician's advisors",
				ArgsUsage: "<record-number>",
				Action:    dbcmd.AdvisorsAction,
			},
			{
				Name:      "students",
				Usage:     "list a mathematician's students",
				ArgsUsage: "<record-number>",
				Action:    dbcmd.StudentsAction,
			},
			{
				Name:      "links",
				Usage:     "list the outbound links recorded for a mathematician",
				ArgsUsage: "<record-number>",
				Action:    dbcmd.LinksAction,
			},
			{
				Name:  "search",
				Usage: "find mathematicians by name or dissertation year",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "name substring"},
					&cli.StringFlag{Name: "year", Usage: "dissertation year or range, e.g. 1905 or 1900-1910"},
					&cli.IntFlag{Name: "limit", Value: 50, Usage: "maximum name matches"},
				},
				Action: dbcmd.SearchAction,
			},
			{
				Name:      "parse",
				Usage:     "parse a saved record page, optionally storing it",
				ArgsUsage: "<html-file>",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Usage: "the page's record number", Required: true},
					&cli.BoolFlag{Name: "save", Usage: "store the parsed record"},
					&cli.StringFlag{Name: "format", Usage: "output format: json or yaml"},
				},
				Action: recordcmd.ParseAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
