package db

import (
	"database/sql"
	"errors"
	"fmt"

	"math-genealogy-db/models"
)

// Getters return (nil, nil) when the row does not exist.

// GetCountry fetches a country by ID.
func (db *DB) GetCountry(id int64) (*models.Country, error) {
	c := &models.Country{CountryID: id}
	err := db.QueryRow(
		"SELECT country_name FROM country WHERE country_id = ?", id,
	).Scan(&c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country %d: %w", id, err)
	}
	return c, nil
}

// GetSubject fetches an MSC entry by code.
func (db *DB) GetSubject(code int64) (*models.Subject, error) {
	s := &models.Subject{Code: code}
	err := db.QueryRow(
		"SELECT subject_name FROM mathematics_subject_classification WHERE subject_code = ?", code,
	).Scan(&s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subject %d: %w", code, err)
	}
	return s, nil
}

// GetUniversity fetches a university with its country resolved.
func (db *DB) GetUniversity(id int64) (*models.University, error) {
	u := &models.University{UniversityID: id}
	var countryID sql.NullInt64
	err := db.QueryRow(
		"SELECT university_name, country_id FROM university WHERE university_id = ?", id,
	).Scan(&u.Name, &countryID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get university %d: %w", id, err)
	}

	if countryID.Valid {
		u.Country, err = db.GetCountry(countryID.Int64)
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

// GetDissertation fetches a dissertation with subject and university resolved.
func (db *DB) GetDissertation(id int64) (*models.Dissertation, error) {
	d := &models.Dissertation{DissertationID: id}
	var title sql.NullString
	var year, subjectCode, universityID sql.NullInt64
	err := db.QueryRow(`
		SELECT dissertation_title, dissertation_year, subject_code, university_id
		FROM dissertation WHERE dissertation_id = ?
	`, id).Scan(&title, &year, &subjectCode, &universityID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dissertation %d: %w", id, err)
	}

	d.Title = title.String
	d.Year = int(year.Int64)
	if subjectCode.Valid {
		if d.Subject, err = db.GetSubject(subjectCode.Int64); err != nil {
			return nil, err
		}
	}
	if universityID.Valid {
		if d.University, err = db.GetUniversity(universityID.Int64); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// GetMathematician fetches a mathematician with every nested row resolved,
// down to the country of the degree-granting university.
func (db *DB) GetMathematician(id int64) (*models.Mathematician, error) {
	m := &models.Mathematician{MathematicianID: id}
	var birth, death sql.NullTime
	var dissertationID sql.NullInt64
	err := db.QueryRow(`
		SELECT mathematician_name, birth_date, death_date, dissertation_id
		FROM mathematician WHERE mathematician_id = ?
	`, id).Scan(&m.Name, &birth, &death, &dissertationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mathematician %d: %w", id, err)
	}

	if birth.Valid {
		m.BirthDate = &birth.Time
	}
	if death.Valid {
		m.DeathDate = &death.Time
	}
	if dissertationID.Valid {
		if m.Dissertation, err = db.GetDissertation(dissertationID.Int64); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Advisors lists the advisors of a mathematician (ID and name only).
func (db *DB) Advisors(adviseeID int64) ([]models.Mathematician, error) {
	return db.relatedMathematicians(`
		SELECT m.mathematician_id, m.mathematician_name
		FROM advisor_relationship ar
		JOIN mathematician m ON m.mathematician_id = ar.advisor_id
		WHERE ar.advisee_id = ?
		ORDER BY m.mathematician_id
	`, adviseeID)
}

// Advisees lists the students of a mathematician (ID and name only).
func (db *DB) Advisees(advisorID int64) ([]models.Mathematician, error) {
	return db.relatedMathematicians(`
		SELECT m.mathematician_id, m.mathematician_name
		FROM advisor_relationship ar
		JOIN mathematician m ON m.mathematician_id = ar.advisee_id
		WHERE ar.advisor_id = ?
		ORDER BY m.mathematician_id
	`, advisorID)
}

func (db *DB) relatedMathematicians(query string, id int64) ([]models.Mathematician, error) {
	rows, err := db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer rows.Close()

	var out []models.Mathematician
	for rows.Next() {
		var m models.Mathematician
		if err := rows.Scan(&m.MathematicianID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// AssociatedLinks lists the outbound links recorded for a mathematician,
// with webpage and source resolved.
func (db *DB) AssociatedLinks(mathematicianID int64) ([]models.AssociatedLink, error) {
	rows, err := db.Query(`
		SELECT l.href_text, w.webpage_id, w.path, w.query, w.timestamp, s.web_source_id, s.base_url
		FROM math_genealogy_associated_link l
		JOIN webpage w ON w.webpage_id = l.webpage_id
		JOIN web_source s ON s.web_source_id = w.web_source_id
		WHERE l.mathematician_id = ?
		ORDER BY w.webpage_id
	`, mathematicianID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var out []models.AssociatedLink
	for rows.Next() {
		var href, query sql.NullString
		var ts sql.NullTime
		page := &models.Webpage{Source: &models.WebSource{}}
		if err := rows.Scan(&href, &page.WebpageID, &page.Path, &query, &ts,
			&page.Source.WebSourceID, &page.Source.BaseURL); err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		page.Query = query.String
		if ts.Valid {
			page.Timestamp = &ts.Time
		}
		out = append(out, models.AssociatedLink{Webpage: page, HrefText: href.String})
	}
	return out, rows.Err()
}

// SearchByName lists mathematicians whose name contains the given substring.
func (db *DB) SearchByName(substr string, limit int) ([]models.Mathematician, error) {
	rows, err := db.Query(`
		SELECT mathematician_id, mathematician_name
		FROM mathematician
		WHERE mathematician_name LIKE '%' || ? || '%'
		ORDER BY mathematician_id
		LIMIT ?
	`, substr, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search by name: %w", err)
	}
	defer rows.Close()

	var out []models.Mathematician
	for rows.Next() {
		var m models.Mathematician
		if err := rows.Scan(&m.MathematicianID, &m.Name); err != nil {
			return nil, fmt.Errorf("failed to scan search row: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// YearMatch is a mathematician matched through the dissertation year index.
type YearMatch struct {
	MathematicianID int64
	Name            string
	Year            int
}

// ByDissertationYear lists mathematicians whose dissertation year falls in
// [from, to], inclusive.
func (db *DB) ByDissertationYear(from, to int) ([]YearMatch, error) {
	rows, err := db.Query(`
		SELECT m.mathematician_id, m.mathematician_name, d.dissertation_year
		FROM mathematician m
		JOIN dissertation d ON d.dissertation_id = m.dissertation_id
		WHERE d.dissertation_year BETWEEN ? AND ?
		ORDER BY d.dissertation_year, m.mathematician_id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to search by year: %w", err)
	}
	defer rows.Close()

	var out []YearMatch
	for rows.Next() {
		var ym YearMatch
		if err := rows.Scan(&ym.MathematicianID, &ym.Name, &ym.Year); err != nil {
			return nil, fmt.Errorf("failed to scan year row: %w", err)
		}
		out = append(out, ym)
	}
	return out, rows.Err()
}

// TableCount is a per-table row count, in schema order.
type TableCount struct {
	Table string
	Rows  int64
}

var statTables = []string{
	"country",
	"university",
	"mathematics_subject_classification",
	"dissertation",
	"mathematician",
	"advisor_relationship",
	"web_source",
	"webpage",
	"math_genealogy_associated_link",
}

// Stats counts the rows in every table.
func (db *DB) Stats() ([]TableCount, error) {
	out := make([]TableCount, 0, len(statTables))
	for _, table := range statTables {
		var n int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	return out, nil
}
