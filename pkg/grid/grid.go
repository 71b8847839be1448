// Package grid defines the geographic grid model used to position facets.
//
// A Grid is an ordered collection of entries, each placing one entity
// (a state, country, or other region code) at a (row, col) cell of a
// two-dimensional layout that approximates the real-world arrangement of
// the entities. Grids are validated on construction and immutable
// afterwards: filtered views are fresh grids, never in-place deletions.
//
// Grids can be built from a position map, from parallel columns, from an
// explicit entry list, or loaded from CSV. A built-in US states layout is
// available via USStates.
package grid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/geofacet/pkg/errors"
)

// Metadata stores arbitrary key-value pairs attached to a grid entry,
// typically auxiliary columns from a grid definition file. Metadata maps
// are never nil after construction.
type Metadata map[string]any

// Entry places one entity at a grid cell.
//
// The zero value is not usable - Code, Row, and Col must be set before the
// entry is added to a Grid.
type Entry struct {
	Code string   // Unique entity identifier (e.g., "CA"), non-blank
	Row  int      // 1-based row
	Col  int      // 1-based column
	Name string   // Display name; defaults to Code when blank
	Meta Metadata // Arbitrary key-value metadata (never nil after New)
}

// DisplayName returns Name, falling back to Code when Name is blank.
func (e Entry) DisplayName() string {
	if strings.TrimSpace(e.Name) == "" {
		return e.Code
	}
	return e.Name
}

// Grid is a validated, ordered collection of entries addressable by entity
// code and by position. The zero value is an empty grid; use the
// constructors to build a populated one.
//
// A Grid is immutable after construction and therefore safe for concurrent
// readers.
type Grid struct {
	entries []Entry
	byCode  map[string]int    // code -> index into entries
	byPos   map[[2]int]string // (row, col) -> code
}

// New builds a Grid from an explicit entry list.
//
// Every constructor funnels through the same checks:
//   - codes must be non-blank after trimming (INVALID_ENTITY)
//   - rows and columns must be >= 1 (INVALID_POSITION, naming the entity)
//   - no two entries may share a cell (POSITION_CONFLICT, naming both)
//
// On error no Grid is returned; a Grid is never partially built. Entry
// metadata maps are initialized to empty maps when nil, and entry order
// is preserved.
func New(entries []Entry) (*Grid, error) {
	g := &Grid{
		entries: make([]Entry, 0, len(entries)),
		byCode:  make(map[string]int, len(entries)),
		byPos:   make(map[[2]int]string, len(entries)),
	}
	for i, e := range entries {
		e.Code = strings.TrimSpace(e.Code)
		if e.Code == "" {
			return nil, errors.New(errors.ErrCodeInvalidEntity,
				"entry %d has a blank entity code", i)
		}
		if e.Row < 1 {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"entity %q has row %d; rows start at 1", e.Code, e.Row)
		}
		if e.Col < 1 {
			return nil, errors.New(errors.ErrCodeInvalidPosition,
				"entity %q has col %d; columns start at 1", e.Code, e.Col)
		}
		if _, dup := g.byCode[e.Code]; dup {
			return nil, errors.New(errors.ErrCodeInvalidEntity,
				"entity %q appears more than once", e.Code)
		}
		pos := [2]int{e.Row, e.Col}
		if other, taken := g.byPos[pos]; taken {
			return nil, errors.New(errors.ErrCodePositionConflict,
				"entities %q and %q both occupy cell (%d,%d)", other, e.Code, e.Row, e.Col)
		}
		if e.Meta == nil {
			e.Meta = Metadata{}
		}
		g.byCode[e.Code] = len(g.entries)
		g.byPos[pos] = e.Code
		g.entries = append(g.entries, e)
	}
	return g, nil
}

// FromMap builds a Grid from a code -> [row, col] position map.
// Entries are ordered by code so construction is deterministic.
func FromMap(positions map[string][2]int) (*Grid, error) {
	codes := make([]string, 0, len(positions))
	for code := range positions {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	entries := make([]Entry, 0, len(codes))
	for _, code := range codes {
		pos := positions[code]
		entries = append(entries, Entry{Code: code, Row: pos[0], Col: pos[1]})
	}
	return New(entries)
}

// ColumnsOption customizes FromColumns construction.
type ColumnsOption func(*columnsConfig)

type columnsConfig struct {
	names []string
	meta  []Metadata
}

// WithNames supplies display names parallel to the code column.
func WithNames(names []string) ColumnsOption {
	return func(c *columnsConfig) { c.names = names }
}

// WithMeta supplies per-entry metadata parallel to the code column.
func WithMeta(meta []Metadata) ColumnsOption {
	return func(c *columnsConfig) { c.meta = meta }
}

// FromColumns builds a Grid from parallel columns of codes, rows, and
// columns, optionally extended with display names and metadata. All
// supplied columns must have the same length (SHAPE_MISMATCH).
func FromColumns(codes []string, rows, cols []int, opts ...ColumnsOption) (*Grid, error) {
	var cfg columnsConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(codes)
	if len(rows) != n || len(cols) != n {
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"column lengths differ: %d codes, %d rows, %d cols", n, len(rows), len(cols))
	}
	if cfg.names != nil && len(cfg.names) != n {
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"column lengths differ: %d codes, %d names", n, len(cfg.names))
	}
	if cfg.meta != nil && len(cfg.meta) != n {
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"column lengths differ: %d codes, %d metadata rows", n, len(cfg.meta))
	}

	entries := make([]Entry, n)
	for i := 0; i < n; i++ {
		entries[i] = Entry{Code: codes[i], Row: rows[i], Col: cols[i]}
		if cfg.names != nil {
			entries[i].Name = cfg.names[i]
		}
		if cfg.meta != nil {
			entries[i].Meta = cfg.meta[i]
		}
	}
	return New(entries)
}

// Entries returns a copy of the grid's entries in construction order.
// Modifications to the returned slice do not affect the grid.
func (g *Grid) Entries() []Entry {
	out := make([]Entry, len(g.entries))
	copy(out, g.entries)
	return out
}

// Len returns the number of entries in the grid.
func (g *Grid) Len() int { return len(g.entries) }

// Codes returns all entity codes in construction order.
func (g *Grid) Codes() []string {
	codes := make([]string, len(g.entries))
	for i, e := range g.entries {
		codes[i] = e.Code
	}
	return codes
}

// Entry returns the entry for the given code and true, or a zero Entry and
// false if the code is not in the grid.
func (g *Grid) Entry(code string) (Entry, bool) {
	i, ok := g.byCode[code]
	if !ok {
		return Entry{}, false
	}
	return g.entries[i], true
}

// Filter returns a fresh Grid containing only entries for which keep
// returns true. The receiver is not modified, and filtering is idempotent:
// filtering twice with the same predicate yields the same entity set as
// filtering once.
func (g *Grid) Filter(keep func(Entry) bool) *Grid {
	var kept []Entry
	for _, e := range g.entries {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	// Entries already passed validation once; a subset cannot introduce
	// conflicts, so the error is unreachable.
	ng, err := New(kept)
	if err != nil {
		panic(fmt.Sprintf("grid: filter broke validation: %v", err))
	}
	return ng
}
