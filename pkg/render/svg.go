package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Cell geometry shared by every facet so axes align across the grid.
const (
	figMargin  = 24.0
	titleSpace = 26.0 // extra top space when the figure has a title
	insetTop   = 14.0 // cell title
	insetLeft  = 30.0 // left Y decorations
	insetRight = 30.0 // right Y decorations
	insetBot   = 18.0 // X decorations
	tickLen    = 4.0
	maxXTicks  = 4
	maxYTicks  = 4
)

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// SVG renders the figure to SVG bytes. Cells are emitted in (row, col)
// order so output is deterministic.
func (f *Figure) SVG() []byte {
	var buf bytes.Buffer
	f.writeSVG(&buf)
	return buf.Bytes()
}

// WriteSVG renders the figure as SVG to w.
func (f *Figure) WriteSVG(w io.Writer) error {
	var buf bytes.Buffer
	f.writeSVG(&buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (f *Figure) writeSVG(buf *bytes.Buffer) {
	cols := f.cols
	if leg, ok := f.LegendSpec(); ok && leg.Col > cols {
		cols = leg.Col
	}
	top := figMargin
	if f.title != "" {
		top += titleSpace
	}
	width := figMargin*2 + float64(cols)*(f.cellW+f.pad) - f.pad
	height := top + figMargin + float64(f.rows)*(f.cellH+f.pad) - f.pad

	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(buf, `  <rect width="%.1f" height="%.1f" fill="white"/>`+"\n", width, height)

	if f.title != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="14" font-weight="bold">%s</text>`+"\n",
			width/2, figMargin, textEscaper.Replace(f.title))
	}

	positions := make([][2]int, 0, len(f.cells))
	for pos := range f.cells {
		positions = append(positions, pos)
	}
	sort.Slice(positions, func(i, j int) bool {
		if positions[i][0] != positions[j][0] {
			return positions[i][0] < positions[j][0]
		}
		return positions[i][1] < positions[j][1]
	})

	for _, pos := range positions {
		f.writeCell(buf, f.cells[pos], top)
	}

	if leg, ok := f.LegendSpec(); ok {
		f.writeLegend(buf, leg, top)
	}

	buf.WriteString("</svg>\n")
}

// cellOrigin returns the top-left pixel of a 1-based grid cell.
func (f *Figure) cellOrigin(row, col int, top float64) (x, y float64) {
	x = figMargin + float64(col-1)*(f.cellW+f.pad)
	y = top + float64(row-1)*(f.cellH+f.pad)
	return x, y
}

func (f *Figure) writeCell(buf *bytes.Buffer, c *Cell, top float64) {
	cx, cy := f.cellOrigin(c.row, c.col, top)
	px := cx + insetLeft
	py := cy + insetTop
	pw := f.cellW - insetLeft - insetRight
	ph := f.cellH - insetTop - insetBot

	fmt.Fprintf(buf, `  <g id="cell-%d-%d">`+"\n", c.row, c.col)
	if c.title != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="9" font-weight="bold">%s</text>`+"\n",
			px+pw/2, cy+insetTop-4, textEscaper.Replace(c.title))
	}
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#999" stroke-width="0.75"/>`+"\n",
		px, py, pw, ph)

	for _, a := range c.axes {
		f.writeAxes(buf, a, px, py, pw, ph)
	}
	buf.WriteString("  </g>\n")
}

func (f *Figure) writeAxes(buf *bytes.Buffer, a *Axes, px, py, pw, ph float64) {
	if a.Placeholder() != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="9" fill="#888">%s</text>`+"\n",
			px+pw/2, py+ph/2+3, textEscaper.Replace(a.Placeholder()))
		f.writeDecorations(buf, a, Range{0, 1}, Range{0, 1}, px, py, pw, ph)
		return
	}

	xr, okX := a.XRange()
	yr, okY := a.YRange()
	if !okX {
		xr = Range{0, 1}
	}
	if !okY {
		yr = Range{0, 1}
	}
	xr = padDegenerate(xr)
	yr = padDegenerate(yr)

	sx := func(v float64) float64 { return px + (v-xr.Min)/(xr.Max-xr.Min)*pw }
	sy := func(v float64) float64 { return py + ph - (v-yr.Min)/(yr.Max-yr.Min)*ph }

	f.writeDecorations(buf, a, xr, yr, px, py, pw, ph)

	for _, s := range a.series {
		switch s.kind {
		case kindLine:
			if len(s.xs) == 0 {
				continue
			}
			var pts strings.Builder
			for i := range s.xs {
				fmt.Fprintf(&pts, "%.1f,%.1f ", sx(s.xs[i]), sy(s.ys[i]))
			}
			fmt.Fprintf(buf, `    <polyline points="%s" fill="none" stroke="%s" stroke-width="1.2"/>`+"\n",
				strings.TrimSpace(pts.String()), s.color)
		case kindPoints:
			for i := range s.xs {
				fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="1.6" fill="%s"/>`+"\n",
					sx(s.xs[i]), sy(s.ys[i]), s.color)
			}
		case kindBars:
			if len(s.xs) == 0 {
				continue
			}
			bw := pw / float64(len(s.xs)) * 0.7
			y0 := sy(clamp(0, yr.Min, yr.Max))
			for i := range s.xs {
				yTop := sy(s.ys[i])
				yLo, yHi := yTop, y0
				if yLo > yHi {
					yLo, yHi = yHi, yLo
				}
				fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
					sx(s.xs[i])-bw/2, yLo, bw, yHi-yLo, s.color)
			}
		}
	}
}

// writeDecorations draws tick marks and labels honoring the axes style.
// Only the cell's first axes draws X decorations; later axes would
// duplicate them on the same edge.
func (f *Figure) writeDecorations(buf *bytes.Buffer, a *Axes, xr, yr Range, px, py, pw, ph float64) {
	xr = padDegenerate(xr)
	yr = padDegenerate(yr)

	if !a.style.HideXDecorations && a.index == 0 {
		for _, v := range ticks(xr, maxXTicks) {
			x := px + (v-xr.Min)/(xr.Max-xr.Min)*pw
			fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#666" stroke-width="0.75"/>`+"\n",
				x, py+ph, x, py+ph+tickLen)
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="7" fill="#444">%s</text>`+"\n",
				x, py+ph+tickLen+8, tickLabel(v))
		}
		if a.style.XLabel != "" {
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="8" fill="#444">%s</text>`+"\n",
				px+pw/2, py+ph+insetBot-1, textEscaper.Replace(a.style.XLabel))
		}
	}

	if !a.style.HideYDecorations {
		for _, v := range ticks(yr, maxYTicks) {
			y := py + ph - (v-yr.Min)/(yr.Max-yr.Min)*ph
			if a.style.YSide == SideRight {
				fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#666" stroke-width="0.75"/>`+"\n",
					px+pw, y, px+pw+tickLen, y)
				fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="start" font-family="sans-serif" font-size="7" fill="#444">%s</text>`+"\n",
					px+pw+tickLen+2, y+2, tickLabel(v))
			} else {
				fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#666" stroke-width="0.75"/>`+"\n",
					px-tickLen, y, px, y)
				fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="end" font-family="sans-serif" font-size="7" fill="#444">%s</text>`+"\n",
					px-tickLen-2, y+2, tickLabel(v))
			}
		}
	}
}

func (f *Figure) writeLegend(buf *bytes.Buffer, leg Legend, top float64) {
	row := leg.Row
	if row < 1 {
		row = 1
	}
	lx, ly := f.cellOrigin(row, leg.Col, top)

	buf.WriteString("  <g id=\"legend\">\n")
	y := ly + 12
	if leg.Title != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10" font-weight="bold">%s</text>`+"\n",
			lx, y, textEscaper.Replace(leg.Title))
		y += 16
	}
	for _, e := range leg.Entries {
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>`+"\n", lx, y-8, e.Color)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="9">%s</text>`+"\n",
			lx+14, y, textEscaper.Replace(e.Label))
		y += 14
	}
	buf.WriteString("  </g>\n")
}

func padDegenerate(r Range) Range {
	if r.Max > r.Min {
		return r
	}
	return Range{r.Min - 0.5, r.Max + 0.5}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
