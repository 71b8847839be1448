package render

import (
	"fmt"
	"math"
)

// Side selects which side of a cell a Y axis draws its decorations on.
type Side int

const (
	// SideLeft is the primary Y-axis side.
	SideLeft Side = iota
	// SideRight is the secondary (twin) Y-axis side.
	SideRight
)

// Range is a closed numeric interval.
type Range struct {
	Min, Max float64
}

// union extends r to cover o. An empty range (ok=false callers) should
// not be passed in.
func (r Range) union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// AxesStyle configures one axes' decorations and limits at creation time.
type AxesStyle struct {
	// HideXDecorations suppresses X tick marks and labels, typically
	// because a linked facet below will render them.
	HideXDecorations bool
	// HideYDecorations suppresses Y tick marks and labels on this
	// axes' side.
	HideYDecorations bool
	// YSide selects the side the Y decorations draw on. SideLeft is
	// the default; dual-axis cells put the second axes on SideRight.
	YSide Side

	// XLabel and YLabel are optional axis titles.
	XLabel, YLabel string

	// XLim and YLim fix the axis range instead of deriving it from the
	// plotted data.
	XLim, YLim *Range
}

// seriesKind is the drawing primitive for a series.
type seriesKind int

const (
	kindLine seriesKind = iota
	kindBars
	kindPoints
)

// Series is one plotted dataset inside an axes.
type Series struct {
	kind  seriesKind
	xs    []float64
	ys    []float64
	label string
	color string
}

// Label returns the series legend label, empty when unlabeled.
func (s *Series) Label() string { return s.label }

// Color returns the series color (hex), assigned from the default
// palette when not set explicitly.
func (s *Series) Color() string { return s.color }

// SeriesOption customizes a plotted series.
type SeriesOption func(*Series)

// WithLabel attaches a legend label to the series. Labeled series are
// collected into the figure's unified legend.
func WithLabel(label string) SeriesOption {
	return func(s *Series) { s.label = label }
}

// WithColor overrides the palette color (any SVG color string).
func WithColor(color string) SeriesOption {
	return func(s *Series) { s.color = color }
}

// palette cycles per axes as series are added.
var palette = []string{"#4269d0", "#efb118", "#ff725c", "#6cc5b0", "#3ca951", "#ff8ab7", "#a463f2", "#97bbf5"}

// Axes is one plotting surface inside a cell. Handles are opaque to the
// orchestrator: it only stores them, regroups them by creation index,
// and applies range linking through LinkX/LinkY.
type Axes struct {
	cell  *Cell
	index int
	style AxesStyle

	series      []*Series
	placeholder string

	// linked ranges set by LinkX/LinkY; they override data extents.
	linkedX, linkedY *Range
}

// Index returns the axes' creation index within its cell.
func (a *Axes) Index() int { return a.index }

// Style returns the axes' style as configured at creation.
func (a *Axes) Style() AxesStyle { return a.style }

// Series returns the plotted series in add order.
func (a *Axes) Series() []*Series { return a.series }

// Line plots a connected line through (xs[i], ys[i]).
func (a *Axes) Line(xs, ys []float64, opts ...SeriesOption) error {
	return a.add(kindLine, xs, ys, opts)
}

// Bars plots vertical bars of the given heights at xs.
func (a *Axes) Bars(xs, heights []float64, opts ...SeriesOption) error {
	return a.add(kindBars, xs, heights, opts)
}

// Points plots unconnected markers at (xs[i], ys[i]).
func (a *Axes) Points(xs, ys []float64, opts ...SeriesOption) error {
	return a.add(kindPoints, xs, ys, opts)
}

func (a *Axes) add(kind seriesKind, xs, ys []float64, opts []SeriesOption) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("series length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	s := &Series{
		kind:  kind,
		xs:    xs,
		ys:    ys,
		color: palette[len(a.series)%len(palette)],
	}
	for _, opt := range opts {
		opt(s)
	}
	a.series = append(a.series, s)
	return nil
}

// SetPlaceholder marks the axes as an empty placeholder rendered with
// only the given centered label. Decorations still follow AxesStyle so
// hidden ticks stay hidden on empty cells.
func (a *Axes) SetPlaceholder(label string) { a.placeholder = label }

// Placeholder returns the placeholder label, empty for normal axes.
func (a *Axes) Placeholder() string { return a.placeholder }

// Labeled reports whether any series carries a non-empty legend label.
func (a *Axes) Labeled() bool {
	for _, s := range a.series {
		if s.label != "" {
			return true
		}
	}
	return false
}

// XRange returns the effective X range: the linked range if set, the
// fixed style limit otherwise, else the data extent. ok is false when
// none of those exist (no data plotted).
func (a *Axes) XRange() (Range, bool) {
	if a.linkedX != nil {
		return *a.linkedX, true
	}
	if a.style.XLim != nil {
		return *a.style.XLim, true
	}
	return a.dataRange(func(s *Series) []float64 { return s.xs })
}

// YRange is the Y counterpart of XRange. Bars always include zero in
// their data extent so bar heights stay comparable.
func (a *Axes) YRange() (Range, bool) {
	if a.linkedY != nil {
		return *a.linkedY, true
	}
	if a.style.YLim != nil {
		return *a.style.YLim, true
	}
	r, ok := a.dataRange(func(s *Series) []float64 { return s.ys })
	if ok {
		for _, s := range a.series {
			if s.kind == kindBars {
				r = r.union(Range{0, 0})
				break
			}
		}
	}
	return r, ok
}

func (a *Axes) dataRange(vals func(*Series) []float64) (Range, bool) {
	var r Range
	found := false
	for _, s := range a.series {
		for _, v := range vals(s) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if !found {
				r = Range{v, v}
				found = true
				continue
			}
			r = r.union(Range{v, v})
		}
	}
	return r, found
}

// LinkX applies a shared X range to every axes in the group: the union
// of each member's effective X range. Members with no data adopt the
// group range unchanged.
func LinkX(axes ...*Axes) {
	linkRanges(axes, (*Axes).XRange, func(a *Axes, r Range) { a.linkedX = &r })
}

// LinkY is the Y counterpart of LinkX.
func LinkY(axes ...*Axes) {
	linkRanges(axes, (*Axes).YRange, func(a *Axes, r Range) { a.linkedY = &r })
}

func linkRanges(axes []*Axes, get func(*Axes) (Range, bool), set func(*Axes, Range)) {
	var union Range
	found := false
	for _, a := range axes {
		if a == nil {
			continue
		}
		r, ok := get(a)
		if !ok {
			continue
		}
		if !found {
			union = r
			found = true
			continue
		}
		union = union.union(r)
	}
	if !found {
		return
	}
	for _, a := range axes {
		if a != nil {
			// Each member gets its own copy so later relinking of
			// one group cannot alias another.
			set(a, union)
		}
	}
}
