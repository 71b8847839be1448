package grid

import (
	"strings"
	"testing"

	"github.com/matzehuels/geofacet/pkg/errors"
)

func mustGrid(t *testing.T, entries []Entry) *Grid {
	t.Helper()
	g, err := New(entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNew(t *testing.T) {
	g := mustGrid(t, []Entry{
		{Code: "A", Row: 1, Col: 1},
		{Code: "B", Row: 1, Col: 2, Name: "Bee"},
	})
	if g.Len() != 2 {
		t.Fatalf("Len = %d, want 2", g.Len())
	}

	a, ok := g.Entry("A")
	if !ok {
		t.Fatal("Entry(A) not found")
	}
	if a.Meta == nil {
		t.Error("Meta should be initialized to an empty map")
	}
	if a.DisplayName() != "A" {
		t.Errorf("DisplayName = %q, want code fallback", a.DisplayName())
	}

	b, _ := g.Entry("B")
	if b.DisplayName() != "Bee" {
		t.Errorf("DisplayName = %q, want %q", b.DisplayName(), "Bee")
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		code    errors.Code
		mention []string
	}{
		{
			name:    "blank code",
			entries: []Entry{{Code: "  ", Row: 1, Col: 1}},
			code:    errors.ErrCodeInvalidEntity,
		},
		{
			name:    "zero row",
			entries: []Entry{{Code: "A", Row: 0, Col: 1}},
			code:    errors.ErrCodeInvalidPosition,
			mention: []string{"A"},
		},
		{
			name:    "negative col",
			entries: []Entry{{Code: "A", Row: 1, Col: -2}},
			code:    errors.ErrCodeInvalidPosition,
			mention: []string{"A", "-2"},
		},
		{
			name: "position conflict names both entities",
			entries: []Entry{
				{Code: "A", Row: 2, Col: 3},
				{Code: "B", Row: 2, Col: 3},
			},
			code:    errors.ErrCodePositionConflict,
			mention: []string{"A", "B", "(2,3)"},
		},
		{
			name: "duplicate code",
			entries: []Entry{
				{Code: "A", Row: 1, Col: 1},
				{Code: "A", Row: 1, Col: 2},
			},
			code: errors.ErrCodeInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.entries)
			if err == nil {
				t.Fatal("expected error")
			}
			if g != nil {
				t.Error("no grid should be returned on error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
			for _, m := range tt.mention {
				if !strings.Contains(err.Error(), m) {
					t.Errorf("error %q should mention %q", err, m)
				}
			}
		})
	}
}

func TestNewTrimsCodes(t *testing.T) {
	g := mustGrid(t, []Entry{{Code: " CA ", Row: 1, Col: 1}})
	if !g.Has("CA") {
		t.Error("codes should be trimmed on construction")
	}
}

func TestFromMap(t *testing.T) {
	g, err := FromMap(map[string][2]int{
		"B": {1, 2},
		"A": {1, 1},
	})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}
	// Deterministic code order regardless of map iteration.
	if got := g.Codes(); got[0] != "A" || got[1] != "B" {
		t.Errorf("Codes = %v, want [A B]", got)
	}
}

func TestFromColumns(t *testing.T) {
	g, err := FromColumns(
		[]string{"A", "B"},
		[]int{1, 1},
		[]int{1, 2},
		WithNames([]string{"Alpha", "Beta"}),
		WithMeta([]Metadata{{"pop": 10}, {"pop": 20}}),
	)
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	b, _ := g.Entry("B")
	if b.Name != "Beta" {
		t.Errorf("Name = %q, want Beta", b.Name)
	}
	if b.Meta["pop"] != 20 {
		t.Errorf("Meta[pop] = %v, want 20", b.Meta["pop"])
	}
}

func TestFromColumnsShapeMismatch(t *testing.T) {
	_, err := FromColumns([]string{"A", "B"}, []int{1}, []int{1, 2})
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Fatalf("want SHAPE_MISMATCH, got %v", err)
	}

	_, err = FromColumns([]string{"A"}, []int{1}, []int{1}, WithNames([]string{"x", "y"}))
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Fatalf("want SHAPE_MISMATCH for names, got %v", err)
	}
}

func TestFilter(t *testing.T) {
	g := mustGrid(t, []Entry{
		{Code: "A", Row: 1, Col: 1},
		{Code: "B", Row: 1, Col: 2},
		{Code: "C", Row: 2, Col: 1},
	})

	keep := func(e Entry) bool { return e.Code != "B" }
	f := g.Filter(keep)

	if f.Len() != 2 || f.Has("B") {
		t.Errorf("filtered grid should drop B: %v", f.Codes())
	}
	if g.Len() != 3 {
		t.Error("Filter must not mutate the source grid")
	}

	// Filtering is idempotent.
	ff := f.Filter(keep)
	if ff.Len() != f.Len() {
		t.Errorf("double filter: %d entries, want %d", ff.Len(), f.Len())
	}
}

func TestEntriesCopy(t *testing.T) {
	g := mustGrid(t, []Entry{{Code: "A", Row: 1, Col: 1}})
	es := g.Entries()
	es[0].Code = "Z"
	if !g.Has("A") {
		t.Error("mutating the returned slice must not affect the grid")
	}
}
