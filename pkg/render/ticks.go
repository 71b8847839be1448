package render

import (
	"math"
	"strconv"

	"github.com/aclements/go-moremath/scale"
)

// decadeTicker generates candidate tick positions for a range from the
// 1-2-5 decade sequence. Levels index the step sequence ..., 0.5, 1, 2,
// 5, 10, ...; higher levels mean larger steps and fewer ticks, the weak
// monotonicity scale.TickOptions.FindLevel requires.
type decadeTicker struct {
	r Range
}

func (t decadeTicker) step(level int) float64 {
	mantissa := []float64{1, 2, 5}
	m := ((level % 3) + 3) % 3
	e := int(math.Floor(float64(level) / 3))
	return mantissa[m] * math.Pow(10, float64(e))
}

// CountTicks implements scale.Ticker.
func (t decadeTicker) CountTicks(level int) int {
	s := t.step(level)
	if (t.r.Max-t.r.Min)/s > 1e6 {
		// Far below any acceptable level; avoid overflowing the tick
		// count during the level search.
		return math.MaxInt32
	}
	lo := math.Ceil(t.r.Min / s)
	hi := math.Floor(t.r.Max / s)
	if hi < lo {
		return 0
	}
	return int(hi-lo) + 1
}

// TicksAtLevel implements scale.Ticker; the result is a []float64 in
// increasing order.
func (t decadeTicker) TicksAtLevel(level int) interface{} {
	s := t.step(level)
	lo := math.Ceil(t.r.Min / s)
	hi := math.Floor(t.r.Max / s)
	var out []float64
	for v := lo; v <= hi; v++ {
		out = append(out, v*s)
	}
	return out
}

// ticks returns at most max tick positions covering r, chosen from the
// 1-2-5 decade sequence. Degenerate ranges collapse to a single tick.
func ticks(r Range, max int) []float64 {
	if max < 1 {
		return nil
	}
	if r.Max <= r.Min {
		return []float64{r.Min}
	}

	// Start the search near the step implied by the span and the
	// requested tick count.
	t := decadeTicker{r}
	guess := 3 * int(math.Round(math.Log10((r.Max-r.Min)/float64(max))))
	o := scale.TickOptions{Max: max}
	level, ok := o.FindLevel(t, guess)
	if !ok {
		return []float64{r.Min, r.Max}
	}
	return t.TicksAtLevel(level).([]float64)
}

// tickLabel formats a tick value compactly (no trailing zeros).
func tickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
