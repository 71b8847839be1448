package facet

import (
	"reflect"
	"testing"

	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/render"
)

func TestConfigMergeLaterWins(t *testing.T) {
	common := NewConfig("color", "red", "width", 1)
	per := NewConfig("color", "blue")

	merged := common.Merge(per)
	if v, _ := merged.Get("color"); v != "blue" {
		t.Errorf("color = %v, want per-axis value blue", v)
	}
	if v, _ := merged.Get("width"); v != 1 {
		t.Errorf("width = %v, want common value 1", v)
	}

	// Sources untouched.
	if v, _ := common.Get("color"); v != "red" {
		t.Error("Merge mutated the receiver")
	}
}

func TestConfigKeyOrder(t *testing.T) {
	c := NewConfig("a", 1, "b", 2)
	c.Set("c", 3)
	c.Set("a", 9) // update keeps position
	if got, want := c.Keys(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys = %v, want %v", got, want)
	}

	merged := c.Merge(NewConfig("d", 4, "b", 5))
	if got, want := merged.Keys(), []string{"a", "b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("merged Keys = %v, want %v", got, want)
	}
}

func TestConfigCloneIndependence(t *testing.T) {
	c := NewConfig("a", 1)
	d := c.Clone()
	d.Set("a", 2)
	if v, _ := c.Get("a"); v != 1 {
		t.Error("Clone shares state with the original")
	}
}

func TestNilConfigSafe(t *testing.T) {
	var c *Config
	if c.Len() != 0 {
		t.Error("nil Len")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("nil Get")
	}
	m := c.Merge(NewConfig("a", 1))
	if v, _ := m.Get("a"); v != 1 {
		t.Error("nil Merge")
	}
}

func TestAxesStyleConversion(t *testing.T) {
	c := NewConfig(
		OptHideXDecorations, true,
		OptYSide, YSideRight,
		OptXLabel, "year",
		OptYLim, render.Range{Min: 0, Max: 10},
		"user_key", 42, // unknown keys pass through untouched
	)
	st := c.AxesStyle()
	if !st.HideXDecorations || st.HideYDecorations {
		t.Errorf("decoration flags = %v/%v", st.HideXDecorations, st.HideYDecorations)
	}
	if st.YSide != render.SideRight {
		t.Error("YSide not resolved")
	}
	if st.XLabel != "year" {
		t.Errorf("XLabel = %q", st.XLabel)
	}
	if st.YLim == nil || *st.YLim != (render.Range{Min: 0, Max: 10}) {
		t.Errorf("YLim = %v", st.YLim)
	}
}

// column builds a 2x1 grid so A has a neighbor below and B one above.
func column(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromMap(map[string][2]int{"A": {1, 1}, "B": {2, 1}})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestMergePrecedenceWithDecorations(t *testing.T) {
	g := column(t)

	opts := &Options{
		LinkMode:          LinkBoth,
		CommonAxisOptions: NewConfig(OptHideXDecorations, false),
		PerAxisOptions:    []*Config{NewConfig(OptHideXDecorations, false)},
	}

	// Full stack: the computed decoration layer wins for A.
	cfgs := axisConfigs(opts, g, "A")
	if len(cfgs) != 1 {
		t.Fatalf("got %d configs, want 1", len(cfgs))
	}
	if !cfgs[0].Bool(OptHideXDecorations) {
		t.Error("decoration layer should override user-supplied visibility")
	}

	// Without the decoration layer the per-axis value stands.
	opts.ShowInnerDecorations = true
	opts.PerAxisOptions = []*Config{NewConfig(OptHideXDecorations, true)}
	cfgs = axisConfigs(opts, g, "A")
	if !cfgs[0].Bool(OptHideXDecorations) {
		t.Error("per-axis value should override common")
	}

	// Only the common layer remains.
	opts.PerAxisOptions = nil
	opts.CommonAxisOptions = NewConfig(OptHideXDecorations, true)
	cfgs = axisConfigs(opts, g, "A")
	if !cfgs[0].Bool(OptHideXDecorations) {
		t.Error("common value should survive alone")
	}
}

func TestDecorationHidingDirections(t *testing.T) {
	g := column(t)
	opts := &Options{LinkMode: LinkBoth}

	// A has a neighbor below: X decorations hide. No left neighbor:
	// Y decorations stay.
	cfg := axisConfigs(opts, g, "A")[0]
	if !cfg.Bool(OptHideXDecorations) {
		t.Error("A should hide X decorations")
	}
	if cfg.Bool(OptHideYDecorations) {
		t.Error("A should keep Y decorations")
	}

	// B is the bottom cell: X decorations stay.
	cfg = axisConfigs(opts, g, "B")[0]
	if cfg.Bool(OptHideXDecorations) {
		t.Error("B should keep X decorations")
	}
}

func TestDecorationHidingRespectsLinkMode(t *testing.T) {
	g := column(t)

	cfg := axisConfigs(&Options{LinkMode: LinkY}, g, "A")[0]
	if cfg.Bool(OptHideXDecorations) {
		t.Error("X decorations should stay without X linking")
	}

	cfg = axisConfigs(&Options{LinkMode: LinkNone}, g, "A")[0]
	if cfg.Len() != 0 {
		t.Errorf("no linking should add no decoration options, got %v", cfg.Keys())
	}
}

func TestDecorationHidingYSide(t *testing.T) {
	g, err := grid.FromMap(map[string][2]int{"L": {1, 1}, "R": {1, 2}})
	if err != nil {
		t.Fatal(err)
	}
	opts := &Options{
		LinkMode:       LinkY,
		PerAxisOptions: []*Config{NewConfig(), NewConfig(OptYSide, YSideRight)},
	}

	// L: left axis has no left neighbor, right axis has a right
	// neighbor (R), so only the right-side axis hides.
	cfgs := axisConfigs(opts, g, "L")
	if cfgs[0].Bool(OptHideYDecorations) {
		t.Error("L axis 0 (left side) should keep Y decorations")
	}
	if !cfgs[1].Bool(OptHideYDecorations) {
		t.Error("L axis 1 (right side) should hide Y decorations")
	}

	// R is mirrored.
	cfgs = axisConfigs(opts, g, "R")
	if !cfgs[0].Bool(OptHideYDecorations) {
		t.Error("R axis 0 (left side) should hide Y decorations")
	}
	if cfgs[1].Bool(OptHideYDecorations) {
		t.Error("R axis 1 (right side) should keep Y decorations")
	}
}

func TestAxisCountFollowsPerAxisOptions(t *testing.T) {
	g := column(t)
	opts := &Options{PerAxisOptions: []*Config{NewConfig(), NewConfig(), NewConfig()}}
	if got := len(axisConfigs(opts, g, "A")); got != 3 {
		t.Errorf("got %d configs, want 3", got)
	}
	if got := len(axisConfigs(&Options{}, g, "A")); got != 1 {
		t.Errorf("got %d configs, want the single-axis default", got)
	}
}
