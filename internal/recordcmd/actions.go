// Package recordcmd implements the record-page CLI commands.
package recordcmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"math-genealogy-db/internal/common"
	"math-genealogy-db/pkg/genealogy"
)

// ParseAction parses a saved record page and optionally stores it.
func ParseAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	file := c.Args().First()
	if file == "" {
		return fmt.Errorf("missing record page file argument")
	}
	id := c.Int64("id")
	if id == 0 {
		return fmt.Errorf("missing --id (the page's record number)")
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open record page: %w", err)
	}
	defer f.Close()

	rec, err := genealogy.ParseRecord(id, f)
	if err != nil {
		return fmt.Errorf("failed to parse record page: %w", err)
	}
	logger.Info("parsed record page",
		"id", id,
		"name", rec.Mathematician.Name,
		"advisors", len(rec.AdvisorIDs),
		"students", len(rec.StudentIDs),
		"links", len(rec.Links),
	)

	if c.Bool("save") {
		database, err := common.OpenDB(c)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		skipped, err := database.SaveRecord(rec)
		if err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}
		logger.Info("saved record", "id", id, "db", database.Path())
		if len(skipped) > 0 {
			logger.Warn("skipped relationships to uncollected records", "ids", skipped)
		}
	}

	return common.EncodeOutput(os.Stdout, rec, common.OutputFormat(c))
}
