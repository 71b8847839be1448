package render

import (
	"math"
	"testing"
)

func newAxes(t *testing.T) *Axes {
	t.Helper()
	return NewFigure(1, 1).Cell(1, 1).Axes(AxesStyle{})
}

func TestDataRanges(t *testing.T) {
	a := newAxes(t)
	if _, ok := a.XRange(); ok {
		t.Error("empty axes should have no X range")
	}

	if err := a.Line([]float64{1, 5, 3}, []float64{-2, 0, 7}); err != nil {
		t.Fatal(err)
	}
	xr, ok := a.XRange()
	if !ok || xr != (Range{1, 5}) {
		t.Errorf("XRange = %+v, %v; want {1 5}, true", xr, ok)
	}
	yr, ok := a.YRange()
	if !ok || yr != (Range{-2, 7}) {
		t.Errorf("YRange = %+v, %v; want {-2 7}, true", yr, ok)
	}
}

func TestDataRangeSkipsNonFinite(t *testing.T) {
	a := newAxes(t)
	if err := a.Points([]float64{1, 2, 3}, []float64{5, math.NaN(), math.Inf(1)}); err != nil {
		t.Fatal(err)
	}
	yr, ok := a.YRange()
	if !ok || yr != (Range{5, 5}) {
		t.Errorf("YRange = %+v, %v; want {5 5}, true", yr, ok)
	}
}

func TestBarsIncludeZero(t *testing.T) {
	a := newAxes(t)
	if err := a.Bars([]float64{1, 2}, []float64{4, 9}); err != nil {
		t.Fatal(err)
	}
	yr, _ := a.YRange()
	if yr.Min != 0 {
		t.Errorf("bar YRange.Min = %v, want 0", yr.Min)
	}
}

func TestStyleLimitsOverrideData(t *testing.T) {
	f := NewFigure(1, 1)
	a := f.Cell(1, 1).Axes(AxesStyle{XLim: &Range{0, 100}})
	if err := a.Line([]float64{40, 60}, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}
	xr, _ := a.XRange()
	if xr != (Range{0, 100}) {
		t.Errorf("XRange = %+v, want the fixed limit {0 100}", xr)
	}
}

func TestLinkX(t *testing.T) {
	a, b := newAxes(t), newAxes(t)
	if err := a.Line([]float64{0, 5}, []float64{1, 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.Line([]float64{3, 9}, []float64{1, 1}); err != nil {
		t.Fatal(err)
	}
	empty := newAxes(t)

	LinkX(a, b, empty, nil)

	want := Range{0, 9}
	for i, ax := range []*Axes{a, b, empty} {
		r, ok := ax.XRange()
		if !ok || r != want {
			t.Errorf("axes %d: XRange = %+v, %v; want %+v, true", i, r, ok, want)
		}
	}

	// Linked ranges override, Y stays per-axes.
	if _, ok := a.YRange(); !ok {
		t.Error("LinkX should not disturb Y ranges")
	}
}

func TestLinkGroupsDoNotAlias(t *testing.T) {
	a, b := newAxes(t), newAxes(t)
	if err := a.Line([]float64{0, 1}, []float64{0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := b.Line([]float64{0, 1}, []float64{0, 1}); err != nil {
		t.Fatal(err)
	}
	LinkY(a, b)

	c := newAxes(t)
	if err := c.Line([]float64{0, 1}, []float64{0, 50}); err != nil {
		t.Fatal(err)
	}
	LinkY(b, c)

	ra, _ := a.YRange()
	rb, _ := b.YRange()
	if ra == rb {
		t.Errorf("relinking b should not rewrite a's range: a=%+v b=%+v", ra, rb)
	}
}

func TestTicks(t *testing.T) {
	got := ticks(Range{0, 10}, 4)
	if len(got) == 0 || len(got) > 4 {
		t.Fatalf("ticks(0..10, 4) = %v, want 1..4 ticks", got)
	}
	for i, v := range got {
		if v < 0 || v > 10 {
			t.Errorf("tick %v outside range", v)
		}
		if i > 0 && got[i] <= got[i-1] {
			t.Errorf("ticks not increasing: %v", got)
		}
	}
}

func TestTicksDegenerate(t *testing.T) {
	got := ticks(Range{3, 3}, 4)
	if len(got) != 1 || got[0] != 3 {
		t.Errorf("ticks on a degenerate range = %v, want [3]", got)
	}
}

func TestTicksSmallSpans(t *testing.T) {
	for _, r := range []Range{{0.001, 0.005}, {-7, 13}, {1e6, 3e6}, {-0.5, 0.5}} {
		got := ticks(r, 4)
		if len(got) == 0 || len(got) > 4 {
			t.Errorf("ticks(%+v, 4) = %v, want 1..4 ticks", r, got)
		}
	}
}

func TestDecadeTickerContract(t *testing.T) {
	tk := decadeTicker{Range{-7, 13}}
	prev := -1
	for level := 3; level >= -3; level-- {
		got := tk.TicksAtLevel(level).([]float64)
		if n := tk.CountTicks(level); n != len(got) {
			t.Errorf("level %d: CountTicks = %d, len(TicksAtLevel) = %d", level, n, len(got))
		}
		// Counts must not decrease as the level drops (smaller steps).
		if n := tk.CountTicks(level); n < prev {
			t.Errorf("level %d: count %d < count %d at coarser level", level, n, prev)
		}
		prev = tk.CountTicks(level)
	}
}

func TestTickLabel(t *testing.T) {
	if got := tickLabel(2500); got != "2500" {
		t.Errorf("tickLabel(2500) = %q", got)
	}
	if got := tickLabel(0.5); got != "0.5" {
		t.Errorf("tickLabel(0.5) = %q", got)
	}
}
