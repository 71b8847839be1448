package facet

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/table"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/render"
)

// LinkMode selects which axis ranges are shared across facets.
type LinkMode int

const (
	// LinkNone leaves every facet's ranges independent.
	LinkNone LinkMode = iota
	// LinkX shares X ranges across facets.
	LinkX
	// LinkY shares Y ranges across facets.
	LinkY
	// LinkBoth shares both.
	LinkBoth
)

var linkModeNames = map[LinkMode]string{
	LinkNone: "none",
	LinkX:    "x",
	LinkY:    "y",
	LinkBoth: "both",
}

func (m LinkMode) String() string {
	if s, ok := linkModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("LinkMode(%d)", int(m))
}

// ParseLinkMode parses "none", "x", "y", or "both".
func ParseLinkMode(s string) (LinkMode, error) {
	for m, name := range linkModeNames {
		if s == name {
			return m, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidOption,
		"invalid link mode: %q (must be one of: none, x, y, both)", s)
}

// MissingRegionPolicy decides what happens to grid entities with no data.
type MissingRegionPolicy int

const (
	// MissingSkip leaves cells without data empty.
	MissingSkip MissingRegionPolicy = iota
	// MissingPlaceholder renders a labeled empty placeholder per cell.
	MissingPlaceholder
	// MissingError fails the run when any grid entity lacks data.
	MissingError
)

var missingPolicyNames = map[MissingRegionPolicy]string{
	MissingSkip:        "skip",
	MissingPlaceholder: "placeholder",
	MissingError:       "error",
}

func (p MissingRegionPolicy) String() string {
	if s, ok := missingPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("MissingRegionPolicy(%d)", int(p))
}

// ParseMissingRegionPolicy parses "skip", "placeholder", or "error".
func ParseMissingRegionPolicy(s string) (MissingRegionPolicy, error) {
	for p, name := range missingPolicyNames {
		if s == name {
			return p, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidOption,
		"invalid missing-region policy: %q (must be one of: skip, placeholder, error)", s)
}

// ExtraRegionPolicy decides what happens to data entities absent from
// the grid.
type ExtraRegionPolicy int

const (
	// ExtraWarn logs one warning and drops the extra entities.
	ExtraWarn ExtraRegionPolicy = iota
	// ExtraError fails the run when the data names unknown entities.
	ExtraError
)

var extraPolicyNames = map[ExtraRegionPolicy]string{
	ExtraWarn:  "warn",
	ExtraError: "error",
}

func (p ExtraRegionPolicy) String() string {
	if s, ok := extraPolicyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("ExtraRegionPolicy(%d)", int(p))
}

// ParseExtraRegionPolicy parses "warn" or "error".
func ParseExtraRegionPolicy(s string) (ExtraRegionPolicy, error) {
	for p, name := range extraPolicyNames {
		if s == name {
			return p, nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidOption,
		"invalid extra-region policy: %q (must be one of: warn, error)", s)
}

// RenderFunc draws one entity's facet. It receives the cell container to
// draw into, the entity's slice of the input data, the merged per-axis
// configs (single-axis callbacks read configs[0]), and any Extra args
// from Options. A returned error or a panic is logged as a per-entity
// render failure and does not abort the run.
type RenderFunc func(cell *render.Cell, data table.Grouping, configs []*Config, extra ...any) error

// LegendOptions overrides the unified legend's title and placement.
// The zero placement puts the legend in the column right of the grid,
// spanning all rows.
type LegendOptions struct {
	Title   string
	Row     int
	Col     int
	RowSpan int
}

// Options configures one orchestration run.
type Options struct {
	// Grid is the layout to facet over. Defaults to the built-in US
	// states grid.
	Grid *grid.Grid

	// EntityColumn names the column holding entity codes. Required.
	EntityColumn string

	// Render is the per-entity drawing callback. Required.
	Render RenderFunc

	// LinkMode shares axis ranges across facets. Default LinkNone.
	LinkMode LinkMode

	// MissingRegionPolicy handles grid entities with no data.
	// Default MissingSkip.
	MissingRegionPolicy MissingRegionPolicy

	// ExtraRegionPolicy handles data entities absent from the grid.
	// Default ExtraWarn.
	ExtraRegionPolicy ExtraRegionPolicy

	// ShowInnerDecorations renders tick marks and labels on every
	// facet. By default, inner decorations are hidden: a facet whose
	// linked neighbor renders below (or beside) it drops the redundant
	// axis chrome.
	ShowInnerDecorations bool

	// CommonAxisOptions applies to every axis in every cell.
	CommonAxisOptions *Config

	// PerAxisOptions applies per axis index; its length also sets the
	// number of axes per cell (one when empty).
	PerAxisOptions []*Config

	// Legend customizes the unified legend. The legend itself appears
	// whenever any rendered series carries a label.
	Legend *LegendOptions

	// Extra is passed through to the render callback verbatim.
	Extra []any

	// Title is the figure-level title.
	Title string

	// CellWidth and CellHeight size each grid cell in pixels.
	// Zero means the render package defaults.
	CellWidth, CellHeight float64

	// Logger receives warnings (extra regions, render failures,
	// skipped legends). Defaults to a discard logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same
// effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Render == nil {
		return errors.New(errors.ErrCodeInvalidOption, "render callback is required")
	}
	if o.EntityColumn == "" {
		return errors.New(errors.ErrCodeInvalidOption, "entity column is required")
	}
	if _, ok := linkModeNames[o.LinkMode]; !ok {
		return errors.New(errors.ErrCodeInvalidOption, "invalid link mode: %d", int(o.LinkMode))
	}
	if _, ok := missingPolicyNames[o.MissingRegionPolicy]; !ok {
		return errors.New(errors.ErrCodeInvalidOption, "invalid missing-region policy: %d", int(o.MissingRegionPolicy))
	}
	if _, ok := extraPolicyNames[o.ExtraRegionPolicy]; !ok {
		return errors.New(errors.ErrCodeInvalidOption, "invalid extra-region policy: %d", int(o.ExtraRegionPolicy))
	}
	if o.Grid == nil {
		g, err := grid.USStates()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "loading default grid")
		}
		o.Grid = g
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}
