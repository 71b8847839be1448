package facet

import (
	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/render"
)

// Well-known configuration keys. Configs are open maps so callbacks can
// carry arbitrary options of their own, but keys listed here are
// understood by AxesStyle and by the decoration merge.
const (
	// OptHideXDecorations (bool) suppresses X tick marks and labels.
	OptHideXDecorations = "hide_x_decorations"
	// OptHideYDecorations (bool) suppresses Y tick marks and labels.
	OptHideYDecorations = "hide_y_decorations"
	// OptYSide ("left" or "right") selects the Y decoration side.
	OptYSide = "y_side"
	// OptXLabel / OptYLabel (string) are axis titles.
	OptXLabel = "x_label"
	OptYLabel = "y_label"
	// OptXLim / OptYLim (render.Range) fix an axis range.
	OptXLim = "x_lim"
	OptYLim = "y_lim"
)

// YSideRight is the OptYSide value selecting the right-hand side.
const YSideRight = "right"

// Config is an ordered option mapping for one axes. Insertion order is
// preserved; merging copies, never mutates.
type Config struct {
	keys []string
	vals map[string]any
}

// NewConfig builds a Config from alternating key, value pairs.
// It panics on an odd argument count or a non-string key; configs are
// authored by hand and a malformed literal is a programming error.
func NewConfig(kv ...any) *Config {
	if len(kv)%2 != 0 {
		panic("facet.NewConfig: odd number of arguments")
	}
	c := &Config{vals: make(map[string]any, len(kv)/2)}
	for i := 0; i < len(kv); i += 2 {
		k, ok := kv[i].(string)
		if !ok {
			panic("facet.NewConfig: key is not a string")
		}
		c.Set(k, kv[i+1])
	}
	return c
}

// Set stores a value, appending the key on first use.
func (c *Config) Set(key string, v any) {
	if c.vals == nil {
		c.vals = make(map[string]any)
	}
	if _, ok := c.vals[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.vals[key] = v
}

// Get returns the value for key and whether it is present.
func (c *Config) Get(key string) (any, bool) {
	if c == nil || c.vals == nil {
		return nil, false
	}
	v, ok := c.vals[key]
	return v, ok
}

// Bool returns the value for key as a bool, false when absent or not a
// bool.
func (c *Config) Bool(key string) bool {
	v, ok := c.Get(key)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// String returns the value for key as a string, "" when absent.
func (c *Config) String(key string) string {
	v, ok := c.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Keys returns the keys in insertion order.
func (c *Config) Keys() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of keys.
func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// Clone returns an independent copy. Values are copied shallowly.
func (c *Config) Clone() *Config {
	out := &Config{vals: make(map[string]any, c.Len())}
	if c != nil {
		for _, k := range c.keys {
			out.Set(k, c.vals[k])
		}
	}
	return out
}

// Merge returns a fresh Config layering over on top of c; on key
// collision the value from over wins, keeping c's key order. Neither
// receiver nor argument is mutated.
func (c *Config) Merge(over *Config) *Config {
	out := c.Clone()
	if over != nil {
		for _, k := range over.keys {
			out.Set(k, over.vals[k])
		}
	}
	return out
}

// AxesStyle translates the well-known keys into a render style.
// Unknown keys are ignored; they belong to the user callback.
func (c *Config) AxesStyle() render.AxesStyle {
	st := render.AxesStyle{
		HideXDecorations: c.Bool(OptHideXDecorations),
		HideYDecorations: c.Bool(OptHideYDecorations),
		XLabel:           c.String(OptXLabel),
		YLabel:           c.String(OptYLabel),
	}
	if c.String(OptYSide) == YSideRight {
		st.YSide = render.SideRight
	}
	if v, ok := c.Get(OptXLim); ok {
		if r, ok := v.(render.Range); ok {
			st.XLim = &r
		}
	}
	if v, ok := c.Get(OptYLim); ok {
		if r, ok := v.(render.Range); ok {
			st.YLim = &r
		}
	}
	return st
}

// axisConfigs computes the merged per-axis configs for one entity.
// Layering per axis, later wins: common options, that axis's entry in
// the per-axis list, then the computed decoration-hiding options.
// neighbors is the neighbor-detection grid, which may be a filtered
// subset of the layout grid when absent regions are skipped.
func axisConfigs(o *Options, neighbors *grid.Grid, code string) []*Config {
	n := len(o.PerAxisOptions)
	if n == 0 {
		n = 1
	}
	configs := make([]*Config, n)
	for i := 0; i < n; i++ {
		cfg := o.CommonAxisOptions.Clone()
		if i < len(o.PerAxisOptions) {
			cfg = cfg.Merge(o.PerAxisOptions[i])
		}
		if !o.ShowInnerDecorations {
			cfg = cfg.Merge(decorationConfig(o.LinkMode, neighbors, code, cfg))
		}
		configs[i] = cfg
	}
	return configs
}

// decorationConfig computes the hiding layer for one axis. It only ever
// sets keys to hide: an axis whose neighbor is absent keeps whatever the
// user configured. X decorations hide when the X ranges are linked and a
// facet renders below; Y decorations hide when the Y ranges are linked
// and a facet renders on the axis's own side (left by default, right for
// right-side axes).
func decorationConfig(mode LinkMode, neighbors *grid.Grid, code string, axis *Config) *Config {
	deco := NewConfig()
	if (mode == LinkX || mode == LinkBoth) && neighbors.HasNeighborBelow(code) {
		deco.Set(OptHideXDecorations, true)
	}
	if mode == LinkY || mode == LinkBoth {
		hide := neighbors.HasNeighborLeft(code)
		if axis.String(OptYSide) == YSideRight {
			hide = neighbors.HasNeighborRight(code)
		}
		if hide {
			deco.Set(OptHideYDecorations, true)
		}
	}
	return deco
}
