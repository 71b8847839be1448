// Package render provides the figure container that faceted plots are
// drawn into, along with the SVG/PNG/PDF sinks that turn a populated
// figure into bytes.
//
// A [Figure] holds a grid of [Cell] containers. Each cell owns one or
// more [Axes] created in order; axes carry plotted series, axis limits,
// and decoration visibility. The orchestrator in pkg/facet populates a
// figure cell by cell, links axis ranges across cells, and attaches a
// legend; callers then export via [Figure.SVG], [ToPNG], or [ToPDF].
//
// The figure is a single mutable structure: populate it from one
// goroutine, then treat it as read-only for export.
package render

import "sort"

// Figure is the top-level render container for one faceted plot.
type Figure struct {
	rows, cols   int
	cellW, cellH float64
	pad          float64
	title        string

	cells map[[2]int]*Cell
	order [][2]int // cell creation order
	leg   *Legend
}

// Option customizes figure construction.
type Option func(*Figure)

// WithCellSize sets the pixel size of each grid cell.
// The defaults are 120x90.
func WithCellSize(w, h float64) Option {
	return func(f *Figure) { f.cellW, f.cellH = w, h }
}

// WithTitle sets a figure-level title rendered above the grid.
func WithTitle(title string) Option {
	return func(f *Figure) { f.title = title }
}

// NewFigure creates an empty figure sized for a rows x cols grid.
// Cells are created on demand via Cell.
func NewFigure(rows, cols int, opts ...Option) *Figure {
	f := &Figure{
		rows:  rows,
		cols:  cols,
		cellW: 120,
		cellH: 90,
		pad:   14,
		cells: make(map[[2]int]*Cell),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Rows returns the number of grid rows the figure was sized for.
func (f *Figure) Rows() int { return f.rows }

// Cols returns the number of grid columns the figure was sized for.
func (f *Figure) Cols() int { return f.cols }

// Cell returns the container at (row, col), creating it on first use.
// Rows and columns are 1-based. A column one past Cols is permitted so a
// legend column can sit to the right of the grid.
func (f *Figure) Cell(row, col int) *Cell {
	pos := [2]int{row, col}
	if c, ok := f.cells[pos]; ok {
		return c
	}
	c := &Cell{fig: f, row: row, col: col}
	f.cells[pos] = c
	f.order = append(f.order, pos)
	return c
}

// CellAt returns the container at (row, col) without creating it.
func (f *Figure) CellAt(row, col int) (*Cell, bool) {
	c, ok := f.cells[[2]int{row, col}]
	return c, ok
}

// Cells returns all cells in creation order.
func (f *Figure) Cells() []*Cell {
	out := make([]*Cell, 0, len(f.order))
	for _, pos := range f.order {
		out = append(out, f.cells[pos])
	}
	return out
}

// Legend describes the unified legend attached to a figure.
type Legend struct {
	Title   string
	Row     int // 1-based grid row; 0 means top of the legend column
	Col     int // 1-based grid column; defaults to Cols+1
	RowSpan int // number of rows the legend may occupy; 0 means all
	Entries []LegendEntry
}

// LegendEntry is one swatch + label pair.
type LegendEntry struct {
	Label string
	Color string
}

// SetLegend attaches the unified legend. Entries are sorted by label so
// output is deterministic regardless of cell iteration order.
func (f *Figure) SetLegend(l Legend) {
	sort.Slice(l.Entries, func(i, j int) bool { return l.Entries[i].Label < l.Entries[j].Label })
	if l.Col == 0 {
		l.Col = f.cols + 1
	}
	if l.RowSpan == 0 {
		l.RowSpan = f.rows
	}
	f.leg = &l
}

// LegendSpec returns the attached legend, or ok=false when none is set.
func (f *Figure) LegendSpec() (Legend, bool) {
	if f.leg == nil {
		return Legend{}, false
	}
	return *f.leg, true
}

// Cell is the per-position container facets draw into.
type Cell struct {
	fig      *Figure
	row, col int
	title    string
	axes     []*Axes
}

// Row returns the cell's 1-based grid row.
func (c *Cell) Row() int { return c.row }

// Col returns the cell's 1-based grid column.
func (c *Cell) Col() int { return c.col }

// SetTitle sets the text rendered above the cell, typically the entity's
// display name.
func (c *Cell) SetTitle(title string) { c.title = title }

// Title returns the cell title.
func (c *Cell) Title() string { return c.title }

// Axes creates the next axes inside the cell and returns its handle.
// Axes are stacked in creation order; with more than one, later axes
// overlay the first (a dual-axis cell puts its second Y scale on the
// right via AxesStyle.YSide).
func (c *Cell) Axes(style AxesStyle) *Axes {
	a := &Axes{cell: c, index: len(c.axes), style: style}
	c.axes = append(c.axes, a)
	return a
}

// AxesList returns the cell's axes in creation order.
func (c *Cell) AxesList() []*Axes { return c.axes }
