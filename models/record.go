// Package models defines the row types of the genealogy schema.
package models

import (
	"net/url"
	"time"
)

// Country is a country a university belongs to.
type Country struct {
	CountryID int64  `json:"country_id,omitempty" yaml:"country_id,omitempty"`
	Name      string `json:"country_name" yaml:"country_name"`
}

// University is an institution that granted dissertations.
type University struct {
	UniversityID int64    `json:"university_id,omitempty" yaml:"university_id,omitempty"`
	Name         string   `json:"university_name" yaml:"university_name"`
	Country      *Country `json:"country,omitempty" yaml:"country,omitempty"`
}

// Subject is a Mathematics Subject Classification entry. The code is the
// natural primary key assigned by the MSC scheme, not a generated ID.
type Subject struct {
	Code int64  `json:"subject_code" yaml:"subject_code"`
	Name string `json:"subject_name" yaml:"subject_name"`
}

// Dissertation is a thesis defended at a university. Title, year, subject
// and university may all be unknown for sparse records.
type Dissertation struct {
	DissertationID int64       `json:"dissertation_id,omitempty" yaml:"dissertation_id,omitempty"`
	Title          string      `json:"dissertation_title,omitempty" yaml:"dissertation_title,omitempty"`
	Year           int         `json:"dissertation_year,omitempty" yaml:"dissertation_year,omitempty"`
	Subject        *Subject    `json:"subject,omitempty" yaml:"subject,omitempty"`
	University     *University `json:"university,omitempty" yaml:"university,omitempty"`
}

// Mathematician is a genealogy record subject. MathematicianID is the
// site-assigned record number and is never generated locally.
type Mathematician struct {
	MathematicianID int64         `json:"mathematician_id" yaml:"mathematician_id"`
	Name            string        `json:"mathematician_name" yaml:"mathematician_name"`
	BirthDate       *time.Time    `json:"birth_date,omitempty" yaml:"birth_date,omitempty"`
	DeathDate       *time.Time    `json:"death_date,omitempty" yaml:"death_date,omitempty"`
	Dissertation    *Dissertation `json:"dissertation,omitempty" yaml:"dissertation,omitempty"`
}

// WebSource is a host pages were collected from.
type WebSource struct {
	WebSourceID int64  `json:"web_source_id,omitempty" yaml:"web_source_id,omitempty"`
	BaseURL     string `json:"base_url" yaml:"base_url"`
}

// Webpage is a single page under a web source, split into path and query so
// pages dedupe regardless of how the URL was written.
type Webpage struct {
	WebpageID int64      `json:"webpage_id,omitempty" yaml:"webpage_id,omitempty"`
	Source    *WebSource `json:"web_source,omitempty" yaml:"web_source,omitempty"`
	Path      string     `json:"path" yaml:"path"`
	Query     string     `json:"query,omitempty" yaml:"query,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// URL reassembles the page address from its stored components.
func (w *Webpage) URL() string {
	u := url.URL{Scheme: "https", Path: w.Path, RawQuery: w.Query}
	if w.Source != nil {
		u.Host = w.Source.BaseURL
	}
	return u.String()
}

// AssociatedLink is an outbound link found on a mathematician's record page.
type AssociatedLink struct {
	Webpage  *Webpage `json:"webpage" yaml:"webpage"`
	HrefText string   `json:"href_text" yaml:"href_text"`
}

// Record is everything extracted from one genealogy record page: the
// mathematician, the provenance page it came from, the outbound links, and
// the advisor/student record numbers referenced by the page.
type Record struct {
	Mathematician *Mathematician   `json:"mathematician" yaml:"mathematician"`
	Page          *Webpage         `json:"page,omitempty" yaml:"page,omitempty"`
	Links         []AssociatedLink `json:"links,omitempty" yaml:"links,omitempty"`
	AdvisorIDs    []int64          `json:"advisor_ids,omitempty" yaml:"advisor_ids,omitempty"`
	StudentIDs    []int64          `json:"student_ids,omitempty" yaml:"student_ids,omitempty"`
}
