package catalog

import (
	"reflect"
	"testing"
)

func TestConflictClause(t *testing.T) {
	tests := []struct {
		name        string
		keyCols     []string
		payloadCols []string
		want        string
	}{
		{
			name:    "single key no payload",
			keyCols: []string{"id"},
			want:    "ON CONFLICT (id) DO NOTHING",
		},
		{
			name:    "composite key no payload",
			keyCols: []string{"pokemon_id", "move_id"},
			want:    "ON CONFLICT (pokemon_id, move_id) DO NOTHING",
		},
		{
			name:        "single key with payload",
			keyCols:     []string{"id"},
			payloadCols: []string{"name", "sort_order"},
			want:        "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, sort_order = EXCLUDED.sort_order",
		},
		{
			name:        "composite key with payload",
			keyCols:     []string{"pokemon_species_id", "language_id"},
			payloadCols: []string{"name"},
			want:        "ON CONFLICT (pokemon_species_id, language_id) DO UPDATE SET name = EXCLUDED.name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := conflictClause(tt.keyCols, tt.payloadCols); got != tt.want {
				t.Errorf("conflictClause() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortedKeys(t *testing.T) {
	got := sortedKeys(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedKeys() = %v, want %v", got, want)
	}
	if len(sortedKeys(nil)) != 0 {
		t.Error("sortedKeys(nil) should be empty")
	}
}

func TestAllAbsent(t *testing.T) {
	empty := ""
	full := "text"
	tests := []struct {
		name   string
		fields map[string]any
		want   bool
	}{
		{"no fields", nil, true},
		{"nil value", map[string]any{"description": nil}, true},
		{"empty string", map[string]any{"name": ""}, true},
		{"nil string pointer", map[string]any{"name": (*string)(nil)}, true},
		{"empty string pointer", map[string]any{"name": &empty}, true},
		{"non-empty string", map[string]any{"name": "bulbasaur"}, false},
		{"non-empty pointer", map[string]any{"name": &full}, false},
		{"numeric payload", map[string]any{"potency": 10}, false},
		{"mixed", map[string]any{"name": "", "slot": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := allAbsent(tt.fields); got != tt.want {
				t.Errorf("allAbsent(%v) = %v, want %v", tt.fields, got, tt.want)
			}
		})
	}
}
