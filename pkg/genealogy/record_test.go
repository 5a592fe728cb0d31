package genealogy

import (
	"strings"
	"testing"
	"time"
)

const kleinPage = `<!DOCTYPE html>
<html>
<body>
<div id="mainContent">
<p style="text-align: center">
<a href="https://mathscinet.ams.org/mathscinet/MRAuthorID/101160">MathSciNet</a>
<a href="https://www.wikidata.org/wiki/Q76641?lang=en">Wikidata</a>
</p>
<div style="text-align: center">
<h2>Felix Christian Klein</h2>
<hr>
</div>
<div style="line-height: 30px; text-align: center; margin-bottom: 1ex">
<span>Ph.D. <img src="/img/flags/Germany.gif" alt="Germany"> <span>Rheinische Friedrich-Wilhelms-Universit&auml;t Bonn</span> 1868</span>
</div>
<div style="text-align: center; margin-bottom: 1ex">
<span id="thesisTitle">&Uuml;ber die Transformation der allgemeinen Gleichung des zweiten Grades zwischen Linien-Koordinaten auf eine kanonische Form</span>
</div>
<div style="text-align: center">Mathematics Subject Classification: 51&mdash;Geometry</div>
<p style="text-align: center">
Advisor 1: <a href="id.php?id=17946">Julius Pl&uuml;cker</a><br>
Advisor 2: <a href="id.php?id=30254">Rudolf Otto Sigismund Lipschitz</a>
</p>
<table border="0">
<tr><th>Name</th><th>University</th><th>Year</th></tr>
<tr><td><a href="id.php?id=7338">Walther von Dyck</a></td><td>M&uuml;nchen</td><td>1879</td></tr>
<tr><td><a href="id.php?id=7339">Adolf Hurwitz</a></td><td>Leipzig</td><td>1881</td></tr>
</table>
</div>
</body>
</html>`

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord(7401, strings.NewReader(kleinPage))
	if err != nil {
		t.Fatalf("ParseRecord() failed: %v", err)
	}

	m := rec.Mathematician
	if m.MathematicianID != 7401 {
		t.Errorf("record number = %d, want 7401", m.MathematicianID)
	}
	if m.Name != "Felix Christian Klein" {
		t.Errorf("name = %q, want %q", m.Name, "Felix Christian Klein")
	}

	d := m.Dissertation
	if d == nil {
		t.Fatal("dissertation not extracted")
	}
	if !strings.HasPrefix(d.Title, "Über die Transformation") {
		t.Errorf("title = %q, want the thesis title", d.Title)
	}
	if d.Year != 1868 {
		t.Errorf("year = %d, want 1868", d.Year)
	}
	if d.University == nil || d.University.Name != "Rheinische Friedrich-Wilhelms-Universität Bonn" {
		t.Fatalf("university = %v, want Bonn", d.University)
	}
	if d.University.Country == nil || d.University.Country.Name != "Germany" {
		t.Errorf("country = %v, want Germany", d.University.Country)
	}
	if d.Subject == nil || d.Subject.Code != 51 || d.Subject.Name != "Geometry" {
		t.Errorf("subject = %v, want 51 Geometry", d.Subject)
	}

	if len(rec.AdvisorIDs) != 2 || rec.AdvisorIDs[0] != 17946 || rec.AdvisorIDs[1] != 30254 {
		t.Errorf("advisor IDs = %v, want [17946 30254]", rec.AdvisorIDs)
	}
	if len(rec.StudentIDs) != 2 || rec.StudentIDs[0] != 7338 || rec.StudentIDs[1] != 7339 {
		t.Errorf("student IDs = %v, want [7338 7339]", rec.StudentIDs)
	}

	if len(rec.Links) != 2 {
		t.Fatalf("link count = %d, want 2", len(rec.Links))
	}
	first := rec.Links[0]
	if first.HrefText != "MathSciNet" {
		t.Errorf("link text = %q, want %q", first.HrefText, "MathSciNet")
	}
	if first.Webpage.Source.BaseURL != "mathscinet.ams.org" {
		t.Errorf("link host = %q, want %q", first.Webpage.Source.BaseURL, "mathscinet.ams.org")
	}
	if first.Webpage.Path != "/mathscinet/MRAuthorID/101160" {
		t.Errorf("link path = %q, want %q", first.Webpage.Path, "/mathscinet/MRAuthorID/101160")
	}
	second := rec.Links[1]
	if second.Webpage.Source.BaseURL != "www.wikidata.org" || second.Webpage.Query != "lang=en" {
		t.Errorf("second link = %v %q, want wikidata with query", second.Webpage.Source, second.Webpage.Query)
	}

	page := rec.Page
	if page == nil {
		t.Fatal("provenance page missing")
	}
	if page.Source.BaseURL != BaseURL || page.Path != RecordPath || page.Query != "id=7401" {
		t.Errorf("provenance = %s?%s, want %s%s?id=7401", page.Path, page.Query, BaseURL, RecordPath)
	}
	if page.Timestamp == nil {
		t.Error("provenance timestamp missing")
	}
}

func TestParseRecord_SparsePage(t *testing.T) {
	const sparse = `<html><body><div id="mainContent">
<div><h2>Obscure Scholar</h2><hr></div>
<div><span>Ph.D. <span>Universit&eacute; de Paris</span></span></div>
<div><span id="thesisTitle"></span></div>
</div></body></html>`

	rec, err := ParseRecord(55, strings.NewReader(sparse))
	if err != nil {
		t.Fatalf("ParseRecord() failed: %v", err)
	}

	if rec.Mathematician.Name != "Obscure Scholar" {
		t.Errorf("name = %q, want %q", rec.Mathematician.Name, "Obscure Scholar")
	}

	d := rec.Mathematician.Dissertation
	if d == nil {
		t.Fatal("dissertation not extracted")
	}
	if d.Title != "" {
		t.Errorf("title = %q, want empty", d.Title)
	}
	if d.Year != 0 {
		t.Errorf("year = %d, want 0 (unknown)", d.Year)
	}
	if d.University == nil || d.University.Name != "Université de Paris" {
		t.Fatalf("university = %v, want Paris", d.University)
	}
	if d.University.Country != nil {
		t.Errorf("country = %v, want none (no flag image)", d.University.Country)
	}
	if d.Subject != nil {
		t.Errorf("subject = %v, want none", d.Subject)
	}

	if len(rec.AdvisorIDs) != 0 || len(rec.StudentIDs) != 0 || len(rec.Links) != 0 {
		t.Errorf("sparse page produced relations: advisors=%v students=%v links=%v",
			rec.AdvisorIDs, rec.StudentIDs, rec.Links)
	}
}

func TestParseRecord_RejectsNonRecordPage(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no main content", `<html><body><p>nothing here</p></body></html>`},
		{"no name", `<html><body><div id="mainContent"><div><hr></div></div></body></html>`},
		{"no layout", `<html><body><div id="mainContent"><h2>Name Only</h2></div></body></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseRecord(1, strings.NewReader(tt.html)); err == nil {
				t.Error("ParseRecord() succeeded, want error")
			}
		})
	}
}

func TestParseMathematicianID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    int64
		wantErr bool
	}{
		{"relative record link", "id.php?id=17946", 17946, false},
		{"absolute record link", "https://genealogy.math.ndsu.nodak.edu/id.php?id=7401", 7401, false},
		{"extra parameters", "id.php?fChrono=1&id=7338", 7338, false},
		{"missing id", "id.php?name=klein", 0, true},
		{"non-numeric id", "id.php?id=abc", 0, true},
		{"empty", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMathematicianID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMathematicianID() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMathematicianID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecordURL(t *testing.T) {
	want := "https://genealogy.math.ndsu.nodak.edu/id.php?id=7401"
	if got := RecordURL(7401); got != want {
		t.Errorf("RecordURL() = %q, want %q", got, want)
	}
}

func TestRecordWebpage(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	page := RecordWebpage(7401, ts)

	if page.Source.BaseURL != BaseURL {
		t.Errorf("base_url = %q, want %q", page.Source.BaseURL, BaseURL)
	}
	if page.Path != RecordPath || page.Query != "id=7401" {
		t.Errorf("page = %s?%s, want %s?id=7401", page.Path, page.Query, RecordPath)
	}
	if page.Timestamp == nil || !page.Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", page.Timestamp, ts)
	}
}
