package models

import "testing"

func TestWebpageURL(t *testing.T) {
	tests := []struct {
		name string
		page Webpage
		want string
	}{
		{
			name: "path and query",
			page: Webpage{
				Source: &WebSource{BaseURL: "genealogy.math.ndsu.nodak.edu"},
				Path:   "/id.php",
				Query:  "id=7401",
			},
			want: "https://genealogy.math.ndsu.nodak.edu/id.php?id=7401",
		},
		{
			name: "no query",
			page: Webpage{
				Source: &WebSource{BaseURL: "mathscinet.ams.org"},
				Path:   "/mathscinet/MRAuthorID/101160",
			},
			want: "https://mathscinet.ams.org/mathscinet/MRAuthorID/101160",
		},
		{
			name: "no source",
			page: Webpage{Path: "/id.php", Query: "id=1"},
			want: "https:///id.php?id=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.page.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}
