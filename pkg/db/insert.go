package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"math-genealogy-db/models"
)

// SQLite's canonical text formats; the driver converts DATE/TIMESTAMP
// columns back to time.Time on scan.
const (
	dateLayout = "2006-01-02"
	tsLayout   = "2006-01-02 15:04:05"
)

// querier is satisfied by both *sql.DB and *sql.Tx so the insert helpers can
// run standalone or inside SaveRecord's transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
}

// nullable column helpers: zero values are stored as NULL.

func nullText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func nullTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(tsLayout)
}

// InsertCountry inserts a country, deduplicated by name, and returns its ID.
func (db *DB) InsertCountry(name string) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertCountry(db.DB, name)
}

func insertCountry(q querier, name string) (int64, error) {
	var existingID int64
	err := q.QueryRow("SELECT country_id FROM country WHERE country_name = ?", name).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing country: %w", err)
	}

	result, err := q.Exec("INSERT INTO country (country_name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("failed to insert country: %w", err)
	}
	return result.LastInsertId()
}

// InsertUniversity inserts a university, deduplicated by (name, country), and
// returns its ID. The nested country is inserted first when present.
func (db *DB) InsertUniversity(u *models.University) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertUniversity(db.DB, u)
}

func insertUniversity(q querier, u *models.University) (int64, error) {
	var countryID any
	if u.Country != nil {
		id, err := insertCountry(q, u.Country.Name)
		if err != nil {
			return 0, err
		}
		countryID = id
	}

	var existingID int64
	err := q.QueryRow(
		"SELECT university_id FROM university WHERE university_name = ? AND country_id IS ?",
		u.Name, countryID,
	).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing university: %w", err)
	}

	result, err := q.Exec(
		"INSERT INTO university (university_name, country_id) VALUES (?, ?)",
		u.Name, countryID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert university: %w", err)
	}
	return result.LastInsertId()
}

// InsertSubject inserts an MSC entry. An existing subject_code is left
// untouched.
func (db *DB) InsertSubject(s *models.Subject) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertSubject(db.DB, s)
}

func insertSubject(q querier, s *models.Subject) (int64, error) {
	_, err := q.Exec(
		"INSERT OR IGNORE INTO mathematics_subject_classification (subject_code, subject_name) VALUES (?, ?)",
		s.Code, s.Name,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert subject: %w", err)
	}
	return s.Code, nil
}

// InsertDissertation inserts a dissertation and returns its ID. Dissertations
// have no natural key, so every call creates a row.
func (db *DB) InsertDissertation(d *models.Dissertation) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertDissertation(db.DB, d)
}

func insertDissertation(q querier, d *models.Dissertation) (int64, error) {
	var subjectCode, universityID any
	if d.Subject != nil {
		code, err := insertSubject(q, d.Subject)
		if err != nil {
			return 0, err
		}
		subjectCode = code
	}
	if d.University != nil {
		id, err := insertUniversity(q, d.University)
		if err != nil {
			return 0, err
		}
		universityID = id
	}

	result, err := q.Exec(`
		INSERT INTO dissertation (dissertation_title, dissertation_year, subject_code, university_id)
		VALUES (?, ?, ?, ?)
	`, nullText(d.Title), nullInt(int64(d.Year)), subjectCode, universityID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dissertation: %w", err)
	}
	return result.LastInsertId()
}

// InsertMathematician inserts a mathematician under its site-assigned record
// number. An existing record number is left untouched and returned as-is.
func (db *DB) InsertMathematician(m *models.Mathematician) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertMathematician(db.DB, m)
}

func insertMathematician(q querier, m *models.Mathematician) (int64, error) {
	if m.MathematicianID == 0 {
		return 0, fmt.Errorf("mathematician %q has no record number", m.Name)
	}

	var existingID int64
	err := q.QueryRow(
		"SELECT mathematician_id FROM mathematician WHERE mathematician_id = ?",
		m.MathematicianID,
	).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing mathematician: %w", err)
	}

	var dissertationID any
	if m.Dissertation != nil {
		id, err := insertDissertation(q, m.Dissertation)
		if err != nil {
			return 0, err
		}
		dissertationID = id
	}

	_, err = q.Exec(`
		INSERT INTO mathematician (mathematician_id, mathematician_name, birth_date, death_date, dissertation_id)
		VALUES (?, ?, ?, ?, ?)
	`, m.MathematicianID, m.Name, nullDate(m.BirthDate), nullDate(m.DeathDate), dissertationID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mathematician: %w", err)
	}
	return m.MathematicianID, nil
}

// InsertAdvisorRelationship records an advisor/advisee pair, deduplicated by
// the pair itself. Both mathematicians must already exist.
func (db *DB) InsertAdvisorRelationship(advisorID, adviseeID int64) error {
	if err := db.writable(); err != nil {
		return err
	}
	return insertAdvisorRelationship(db.DB, advisorID, adviseeID)
}

func insertAdvisorRelationship(q querier, advisorID, adviseeID int64) error {
	var one int
	err := q.QueryRow(
		"SELECT 1 FROM advisor_relationship WHERE advisor_id = ? AND advisee_id = ?",
		advisorID, adviseeID,
	).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing relationship: %w", err)
	}

	_, err = q.Exec(
		"INSERT INTO advisor_relationship (advisor_id, advisee_id) VALUES (?, ?)",
		advisorID, adviseeID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert relationship: %w", err)
	}
	return nil
}

// InsertWebSource inserts a source host, deduplicated by base URL, and
// returns its ID.
func (db *DB) InsertWebSource(baseURL string) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return insertWebSource(db.DB, baseURL)
}

func insertWebSource(q querier, baseURL string) (int64, error) {
	var existingID int64
	err := q.QueryRow("SELECT web_source_id FROM web_source WHERE base_url = ?", baseURL).Scan(&existingID)
	if err == nil {
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing web source: %w", err)
	}

	result, err := q.Exec("INSERT INTO web_source (base_url) VALUES (?)", baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to insert web source: %w", err)
	}
	return result.LastInsertId()
}

// UpsertWebpage inserts a page keyed by (source, path, query) and returns its
// ID. An existing page gets its timestamp refreshed when one is provided.
func (db *DB) UpsertWebpage(w *models.Webpage) (int64, error) {
	if err := db.writable(); err != nil {
		return 0, err
	}
	return upsertWebpage(db.DB, w)
}

func upsertWebpage(q querier, w *models.Webpage) (int64, error) {
	if w.Source == nil {
		return 0, fmt.Errorf("webpage %q has no web source", w.Path)
	}
	sourceID, err := insertWebSource(q, w.Source.BaseURL)
	if err != nil {
		return 0, err
	}

	var existingID int64
	err = q.QueryRow(
		"SELECT webpage_id FROM webpage WHERE web_source_id = ? AND path = ? AND query IS ?",
		sourceID, w.Path, nullText(w.Query),
	).Scan(&existingID)
	if err == nil {
		if w.Timestamp != nil {
			if _, err := q.Exec(
				"UPDATE webpage SET timestamp = ? WHERE webpage_id = ?",
				nullTimestamp(w.Timestamp), existingID,
			); err != nil {
				return 0, fmt.Errorf("failed to update webpage timestamp: %w", err)
			}
		}
		return existingID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to check existing webpage: %w", err)
	}

	result, err := q.Exec(
		"INSERT INTO webpage (web_source_id, path, query, timestamp) VALUES (?, ?, ?, ?)",
		sourceID, w.Path, nullText(w.Query), nullTimestamp(w.Timestamp),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert webpage: %w", err)
	}
	return result.LastInsertId()
}

// UpsertAssociatedLink records an outbound link for a mathematician, keyed by
// (mathematician, webpage, href text).
func (db *DB) UpsertAssociatedLink(mathematicianID int64, link *models.AssociatedLink) error {
	if err := db.writable(); err != nil {
		return err
	}
	return upsertAssociatedLink(db.DB, mathematicianID, link)
}

func upsertAssociatedLink(q querier, mathematicianID int64, link *models.AssociatedLink) error {
	if link.Webpage == nil {
		return fmt.Errorf("associated link %q has no webpage", link.HrefText)
	}
	webpageID, err := upsertWebpage(q, link.Webpage)
	if err != nil {
		return err
	}

	var one int
	err = q.QueryRow(`
		SELECT 1 FROM math_genealogy_associated_link
		WHERE mathematician_id = ? AND webpage_id = ? AND href_text IS ?
	`, mathematicianID, webpageID, nullText(link.HrefText)).Scan(&one)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to check existing link: %w", err)
	}

	_, err = q.Exec(
		"INSERT INTO math_genealogy_associated_link (mathematician_id, webpage_id, href_text) VALUES (?, ?, ?)",
		mathematicianID, webpageID, nullText(link.HrefText),
	)
	if err != nil {
		return fmt.Errorf("failed to insert link: %w", err)
	}
	return nil
}

// SaveRecord stores a parsed record page in one transaction: the
// mathematician with its nested rows, the provenance page, the outbound
// links, and advisor/student relationships. Relationships are only created
// toward mathematicians already in the database; the record numbers that were
// skipped for that reason are returned so callers can collect them later.
func (db *DB) SaveRecord(rec *models.Record) (skipped []int64, err error) {
	if err := db.writable(); err != nil {
		return nil, err
	}
	if rec == nil || rec.Mathematician == nil {
		return nil, fmt.Errorf("record has no mathematician")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	id, err := insertMathematician(tx, rec.Mathematician)
	if err != nil {
		return nil, err
	}

	if rec.Page != nil {
		if _, err = upsertWebpage(tx, rec.Page); err != nil {
			return nil, err
		}
	}

	for i := range rec.Links {
		if err = upsertAssociatedLink(tx, id, &rec.Links[i]); err != nil {
			return nil, err
		}
	}

	for _, advisorID := range rec.AdvisorIDs {
		known, kerr := mathematicianExists(tx, advisorID)
		if kerr != nil {
			err = kerr
			return nil, err
		}
		if !known {
			skipped = append(skipped, advisorID)
			continue
		}
		if err = insertAdvisorRelationship(tx, advisorID, id); err != nil {
			return nil, err
		}
	}

	for _, studentID := range rec.StudentIDs {
		known, kerr := mathematicianExists(tx, studentID)
		if kerr != nil {
			err = kerr
			return nil, err
		}
		if !known {
			skipped = append(skipped, studentID)
			continue
		}
		if err = insertAdvisorRelationship(tx, id, studentID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit record: %w", err)
	}
	return skipped, nil
}

func mathematicianExists(q querier, id int64) (bool, error) {
	var found int64
	err := q.QueryRow("SELECT mathematician_id FROM mathematician WHERE mathematician_id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check mathematician %d: %w", id, err)
	}
	return true, nil
}
