// Package dbcmd implements the database-facing CLI commands.
package dbcmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"math-genealogy-db/internal/common"
	"math-genealogy-db/models"
)

// InitAction creates the database file and applies the schema.
func InitAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	fmt.Printf("Database initialized at %s\n", database.Path())
	return nil
}

// StatsAction prints per-table row counts.
func StatsAction(c *cli.Context) error {
	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	counts, err := database.Stats()
	if err != nil {
		return fmt.Errorf("failed to count tables: %w", err)
	}

	fmt.Printf("%-36s %s\n", "Table", "Rows")
	fmt.Println(strings.Repeat("-", 48))
	var total int64
	for _, tc := range counts {
		fmt.Printf("%-36s %d\n", tc.Table, tc.Rows)
		total += tc.Rows
	}
	fmt.Printf("\nTotal: %d rows in %d tables\n", total, len(counts))
	return nil
}

func recordID(c *cli.Context) (int64, error) {
	raw := c.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing record number argument")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record number %q", raw)
	}
	return id, nil
}

// GetAction prints one mathematician with all nested rows resolved.
func GetAction(c *cli.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	m, err := database.GetMathematician(id)
	if err != nil {
		return fmt.Errorf("failed to get mathematician: %w", err)
	}
	if m == nil {
		return cli.Exit(fmt.Sprintf("mathematician %d not found", id), 1)
	}

	return common.EncodeOutput(os.Stdout, m, common.OutputFormat(c))
}

// AdvisorsAction lists a mathematician's advisors.
func AdvisorsAction(c *cli.Context) error {
	return relationshipAction(c, "advisors", true)
}

// StudentsAction lists a mathematician's students.
func StudentsAction(c *cli.Context) error {
	return relationshipAction(c, "students", false)
}

func relationshipAction(c *cli.Context, label string, advisors bool) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var related []models.Mathematician
	if advisors {
		related, err = database.Advisors(id)
	} else {
		related, err = database.Advisees(id)
	}
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", label, err)
	}

	if len(related) == 0 {
		fmt.Printf("No %s recorded for %d\n", label, id)
		return nil
	}

	fmt.Printf("%-10s %s\n", "ID", "Name")
	fmt.Println(strings.Repeat("-", 48))
	for _, m := range related {
		fmt.Printf("%-10d %s\n", m.MathematicianID, m.Name)
	}
	fmt.Printf("\nTotal: %d %s\n", len(related), label)
	return nil
}

// LinksAction lists the outbound links recorded for a mathematician.
func LinksAction(c *cli.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	links, err := database.AssociatedLinks(id)
	if err != nil {
		return fmt.Errorf("failed to list links: %w", err)
	}

	if len(links) == 0 {
		fmt.Printf("No links recorded for %d\n", id)
		return nil
	}

	for _, link := range links {
		fmt.Printf("%-30s %s\n", link.HrefText, link.Webpage.URL())
	}
	fmt.Printf("\nTotal: %d links\n", len(links))
	return nil
}

// SearchAction looks mathematicians up by name substring or dissertation
// year range.
func SearchAction(c *cli.Context) error {
	name := c.String("name")
	year := c.String("year")
	if (name == "") == (year == "") {
		return fmt.Errorf("need exactly one of --name or --year")
	}

	database, err := common.OpenDB(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if name != "" {
		matches, err := database.SearchByName(name, c.Int("limit"))
		if err != nil {
			return fmt.Errorf("failed to search: %w", err)
		}
		for _, m := range matches {
			fmt.Printf("%-10d %s\n", m.MathematicianID, m.Name)
		}
		fmt.Printf("\nTotal: %d matches\n", len(matches))
		return nil
	}

	from, to, err := parseYearRange(year)
	if err != nil {
		return err
	}
	matches, err := database.ByDissertationYear(from, to)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}
	for _, m := range matches {
		fmt.Printf("%-10d %-6d %s\n", m.MathematicianID, m.Year, m.Name)
	}
	fmt.Printf("\nTotal: %d matches\n", len(matches))
	return nil
}

// parseYearRange accepts "1905" or "1900-1910".
func parseYearRange(s string) (int, int, error) {
	from, to, found := strings.Cut(s, "-")
	if !found {
		to = from
	}
	fromYear, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", from)
	}
	toYear, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", to)
	}
	if toYear < fromYear {
		return 0, 0, fmt.Errorf("year range %q is backwards", s)
	}
	return fromYear, toYear, nil
}
