// Package genealogy extracts structured rows from saved Math Genealogy
// record pages. It never fetches anything itself; callers hand it page
// content they already have on disk.
package genealogy

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"math-genealogy-db/models"
)

const (
	// BaseURL is the genealogy site host.
	BaseURL = "genealogy.math.ndsu.nodak.edu"
	// RecordPath is the path of every mathematician record page.
	RecordPath = "/id.php"
)

var (
	subjectRe = regexp.MustCompile(`(?i)Mathematics Subject Classification:\s*(\d+)\W+(.+)`)
	yearRe    = regexp.MustCompile(`\b(\d{4})\b`)
)

// RecordQuery returns the query string of a record page.
func RecordQuery(id int64) string {
	return fmt.Sprintf("id=%d", id)
}

// RecordURL returns the full address of a record page.
func RecordURL(id int64) string {
	u := url.URL{Scheme: "https", Host: BaseURL, Path: RecordPath, RawQuery: RecordQuery(id)}
	return u.String()
}

// RecordWebpage builds the provenance row for a record page.
func RecordWebpage(id int64, ts time.Time) *models.Webpage {
	return &models.Webpage{
		Source:    &models.WebSource{BaseURL: BaseURL},
		Path:      RecordPath,
		Query:     RecordQuery(id),
		Timestamp: &ts,
	}
}

// ParseMathematicianID extracts the record number from a record page URL.
func ParseMathematicianID(rawURL string) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse URL: %w", err)
	}
	values, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return 0, fmt.Errorf("failed to parse query of %q: %w", rawURL, err)
	}
	raw := strings.TrimSpace(values.Get("id"))
	if raw == "" {
		return 0, fmt.Errorf("URL %q has no id parameter", rawURL)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record number %q: %w", raw, err)
	}
	return id, nil
}

// ParseRecord parses the content of one record page. Missing sections (no
// flag image, no MSC line, no students, empty thesis title) come back as
// absent rather than errors; only a page without the record layout fails.
func ParseRecord(id int64, r io.Reader) (*models.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	main := doc.Find("div#mainContent")
	if main.Length() == 0 {
		return nil, fmt.Errorf("record %d: page has no main content", id)
	}

	name := strings.TrimSpace(main.Find("h2").First().Text())
	if name == "" {
		return nil, fmt.Errorf("record %d: page has no mathematician name", id)
	}

	// The record layout hangs off the block containing the header rule:
	// the degree line, thesis, students and advisors follow it, and the
	// associated links precede it.
	hr := main.Find("hr").First()
	if hr.Length() == 0 {
		return nil, fmt.Errorf("record %d: page has no record layout", id)
	}
	anchor := hr.Parent()

	rec := &models.Record{
		Mathematician: &models.Mathematician{
			MathematicianID: id,
			Name:            name,
		},
		Page: RecordWebpage(id, time.Now().UTC()),
	}

	dissertation := parseDegreeLine(anchor.NextAllFiltered("div").First())
	if title := strings.TrimSpace(main.Find("span#thesisTitle").Text()); title != "" {
		if dissertation == nil {
			dissertation = &models.Dissertation{}
		}
		dissertation.Title = title
	}
	if subject := parseSubjectLine(main); subject != nil {
		if dissertation == nil {
			dissertation = &models.Dissertation{}
		}
		dissertation.Subject = subject
	}
	rec.Mathematician.Dissertation = dissertation

	rec.AdvisorIDs = parseRecordIDs(anchor.NextAllFiltered("p").First().Find("a"))
	rec.StudentIDs = parseStudentTable(anchor.NextAllFiltered("table").First())
	rec.Links = parseAssociatedLinks(anchor.PrevAllFiltered("p").First().Find("a"))

	return rec, nil
}

// parseDegreeLine reads the "Ph.D. <university> <year>" block, including the
// country flag image when one is shown.
func parseDegreeLine(div *goquery.Selection) *models.Dissertation {
	if div.Length() == 0 {
		return nil
	}

	span := div.Find("span").First()
	if span.Length() == 0 {
		return nil
	}

	var university *models.University
	if name := strings.TrimSpace(span.Find("span").First().Text()); name != "" {
		university = &models.University{Name: name}
		if src, ok := div.Find("img").First().Attr("src"); ok {
			flag := path.Base(src)
			if country := strings.TrimSuffix(flag, path.Ext(flag)); country != "" {
				university.Country = &models.Country{Name: country}
			}
		}
	}

	dissertation := &models.Dissertation{University: university}

	// The year is the trailing text of the degree line.
	text := span.Text()
	if inner := span.Find("span").First().Text(); inner != "" {
		text = strings.Replace(text, inner, "", 1)
	}
	matches := yearRe.FindAllString(text, -1)
	if len(matches) > 0 {
		year, err := strconv.Atoi(matches[len(matches)-1])
		if err == nil {
			dissertation.Year = year
		}
	}

	if dissertation.University == nil && dissertation.Year == 0 {
		return nil
	}
	return dissertation
}

func parseSubjectLine(main *goquery.Selection) *models.Subject {
	var subject *models.Subject
	main.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
		m := subjectRe.FindStringSubmatch(strings.TrimSpace(div.Text()))
		if m == nil {
			return true
		}
		code, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return true
		}
		subject = &models.Subject{Code: code, Name: strings.TrimSpace(m[2])}
		return false
	})
	return subject
}

// parseRecordIDs collects record numbers from anchors pointing at record
// pages; anything else is ignored.
func parseRecordIDs(anchors *goquery.Selection) []int64 {
	var ids []int64
	anchors.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, "id.php") {
			return
		}
		id, err := ParseMathematicianID(href)
		if err != nil {
			return
		}
		ids = append(ids, id)
	})
	return ids
}

// parseStudentTable reads the student list, skipping the header row.
func parseStudentTable(table *goquery.Selection) []int64 {
	if table.Length() == 0 {
		return nil
	}
	var ids []int64
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		ids = append(ids, parseRecordIDs(row.Find("td").First().Find("a"))...)
	})
	return ids
}

// parseAssociatedLinks turns outbound anchors into webpage rows, splitting
// each address into its source host, path and query.
func parseAssociatedLinks(anchors *goquery.Selection) []models.AssociatedLink {
	var links []models.AssociatedLink
	anchors.Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		u, err := url.Parse(strings.TrimSpace(href))
		if err != nil || u.Host == "" {
			return
		}
		links = append(links, models.AssociatedLink{
			Webpage: &models.Webpage{
				Source: &models.WebSource{BaseURL: u.Host},
				Path:   u.Path,
				Query:  u.RawQuery,
			},
			HrefText: strings.TrimSpace(a.Text()),
		})
	})
	return links
}
