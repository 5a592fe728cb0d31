// Package common holds helpers shared by the command actions.
package common

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"math-genealogy-db/models"
	dbpkg "math-genealogy-db/pkg/db"
)

// OpenDB resolves the database location from, in order: the --db flag, the
// config file, and the default location next to the binary.
func OpenDB(c *cli.Context) (*dbpkg.DB, error) {
	if c.IsSet("db") {
		return dbpkg.OpenPath(c.String("db"))
	}

	cfgPath := models.DefaultConfigPath()
	if c.IsSet("config") {
		cfgPath = c.String("config")
	}
	cfg, err := models.LoadConfig(cfgPath)
	if err != nil {
		// A config file given explicitly must load; the default one is optional.
		if c.IsSet("config") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return dbpkg.Open()
	}
	if cfg.DBPath != "" {
		return dbpkg.OpenPath(cfg.DBPath)
	}
	return dbpkg.Open()
}

// OutputFormat resolves the output format from the --format flag, falling
// back to the config file, then json.
func OutputFormat(c *cli.Context) string {
	if c.IsSet("format") {
		return c.String("format")
	}
	cfgPath := models.DefaultConfigPath()
	if c.IsSet("config") {
		cfgPath = c.String("config")
	}
	if cfg, err := models.LoadConfig(cfgPath); err == nil && cfg.Format != "" {
		return cfg.Format
	}
	return "json"
}

// EncodeOutput writes v as indented JSON or yaml.
func EncodeOutput(w io.Writer, v any, format string) error {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
