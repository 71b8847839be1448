package grid

// Dimensions returns the maximum row and column over all entries.
// An empty grid has dimensions (0, 0).
func (g *Grid) Dimensions() (maxRow, maxCol int) {
	for _, e := range g.entries {
		if e.Row > maxRow {
			maxRow = e.Row
		}
		if e.Col > maxCol {
			maxCol = e.Col
		}
	}
	return maxRow, maxCol
}

// Has reports whether the grid contains an entry for the given code.
func (g *Grid) Has(code string) bool {
	_, ok := g.byCode[code]
	return ok
}

// PositionOf returns the cell of the given code, or ok=false if the code
// is not in the grid.
func (g *Grid) PositionOf(code string) (row, col int, ok bool) {
	i, ok := g.byCode[code]
	if !ok {
		return 0, 0, false
	}
	return g.entries[i].Row, g.entries[i].Col, true
}

// CodeAt returns the entity code at the given cell, or ok=false if the
// cell is unoccupied.
func (g *Grid) CodeAt(row, col int) (code string, ok bool) {
	code, ok = g.byPos[[2]int{row, col}]
	return code, ok
}

// IsCompleteRectangle reports whether every cell of the grid's bounding
// rectangle is occupied. An empty grid is vacuously complete.
func (g *Grid) IsCompleteRectangle() bool {
	maxRow, maxCol := g.Dimensions()
	return len(g.entries) == maxRow*maxCol
}

// Neighbor queries are existential, not adjacent-cell: HasNeighborBelow
// reports whether ANY other entry shares the column with a strictly
// greater row, not just the immediately next cell. In sparse grids this
// keeps axis decorations hidden whenever some facet renders further along
// the axis, even across gaps. The other three directions are symmetric.
// All four return false for codes not in the grid.

// HasNeighborAbove reports whether any entry shares the code's column
// with a strictly smaller row.
func (g *Grid) HasNeighborAbove(code string) bool {
	return g.hasNeighbor(code, func(e, o Entry) bool {
		return o.Col == e.Col && o.Row < e.Row
	})
}

// HasNeighborBelow reports whether any entry shares the code's column
// with a strictly greater row.
func (g *Grid) HasNeighborBelow(code string) bool {
	return g.hasNeighbor(code, func(e, o Entry) bool {
		return o.Col == e.Col && o.Row > e.Row
	})
}

// HasNeighborLeft reports whether any entry shares the code's row with a
// strictly smaller column.
func (g *Grid) HasNeighborLeft(code string) bool {
	return g.hasNeighbor(code, func(e, o Entry) bool {
		return o.Row == e.Row && o.Col < e.Col
	})
}

// HasNeighborRight reports whether any entry shares the code's row with a
// strictly greater column.
func (g *Grid) HasNeighborRight(code string) bool {
	return g.hasNeighbor(code, func(e, o Entry) bool {
		return o.Row == e.Row && o.Col > e.Col
	})
}

func (g *Grid) hasNeighbor(code string, pred func(e, other Entry) bool) bool {
	i, ok := g.byCode[code]
	if !ok {
		return false
	}
	e := g.entries[i]
	for j, o := range g.entries {
		if j != i && pred(e, o) {
			return true
		}
	}
	return false
}
