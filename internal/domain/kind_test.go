package domain

import "testing"

func TestIDFromURL(t *testing.T) {
	tests := []struct {
		url    string
		wantID int
		wantOK bool
	}{
		{"https://catalog.example/api/v2/pokemon/25/", 25, true},
		{"https://catalog.example/api/v2/pokemon/25", 25, true},
		{"https://catalog.example/api/v2/pokemon-species/1/", 1, true},
		{"https://catalog.example/api/v2/pokemon/", 0, false},
		{"https://catalog.example/api/v2/pokemon/abc/", 0, false},
		{"https://catalog.example/api/v2/pokemon/0/", 0, false},
		{"https://catalog.example/api/v2/pokemon/-3/", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		id, ok := IDFromURL(tt.url)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("IDFromURL(%q) = (%d, %v), want (%d, %v)", tt.url, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestRefID(t *testing.T) {
	r := ResourceRef{Name: "pikachu", URL: "https://catalog.example/api/v2/pokemon/25/"}
	id, ok := r.ID()
	if !ok || id != 25 {
		t.Errorf("ID() = (%d, %v), want (25, true)", id, ok)
	}
	if _, ok := (ResourceRef{}).ID(); ok {
		t.Error("empty ref must not resolve to an id")
	}
}

// Every join kind must reference a secondary kind that is itself a
// registered record kind, or existence checks on join writes would
// never resolve.
func TestJoinSecondariesAreRecordKinds(t *testing.T) {
	for kind, spec := range joinTables {
		if _, ok := spec.Secondary.RecordTable(); !ok {
			t.Errorf("join kind %s: secondary %s has no record table", kind, spec.Secondary)
		}
		if spec.Table == "" || spec.PrimaryCol == "" || spec.SecondaryCol == "" {
			t.Errorf("join kind %s: incomplete spec %+v", kind, spec)
		}
	}
}

func TestRecordAndJoinKindsDisjoint(t *testing.T) {
	for kind := range recordTables {
		if _, ok := kind.JoinSpec(); ok {
			t.Errorf("kind %s registered as both record and join", kind)
		}
	}
}
