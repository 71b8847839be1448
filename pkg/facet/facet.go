// Package facet arranges per-entity plots into a grid that approximates
// the entities' geographic layout.
//
// The orchestrator partitions grouped tabular data (go-gg table.Grouping)
// by an entity column, cross-checks the entities against a grid layout,
// and invokes a user callback once per occupied cell. Cross-cell concerns
// are coordinated after the loop: corresponding axes share ranges per the
// link mode, inner axis decorations are hidden where a linked neighbor
// renders them, and labeled series collect into one unified legend.
//
// # Usage
//
//	fig, err := facet.Run(data, facet.Options{
//	    EntityColumn: "state",
//	    LinkMode:     facet.LinkBoth,
//	    Render: func(cell *render.Cell, data table.Grouping, configs []*facet.Config, extra ...any) error {
//	        ax := cell.Axes(configs[0].AxesStyle())
//	        return ax.Line(xs(data), ys(data), render.WithLabel("sales"))
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.svg", fig.SVG(), 0o644)
package facet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/observability"
	"github.com/matzehuels/geofacet/pkg/render"
)

// Run executes one facet orchestration: validate, partition, cross-check,
// render per cell, link, legend. The returned figure is owned by the
// caller. Fatal errors (empty input, unknown column, bad options, region
// mismatches under the error policies) abort before any cell renders;
// a failing callback only skips its own entity.
func Run(data table.Grouping, opts Options) (*render.Figure, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	if data == nil || rowCount(data) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "input data has no rows")
	}
	if !hasColumn(data, opts.EntityColumn) {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q not found in input data", opts.EntityColumn)
	}

	start := time.Now()
	observability.Facet().OnRunStart(gridName(opts.Grid), opts.Grid.Len())

	p := newPartition(data, opts.EntityColumn)
	missing, extra := crossCheck(opts.Grid, p)

	if opts.MissingRegionPolicy == MissingError && len(missing) > 0 {
		err := &errors.RegionsError{ErrCode: errors.ErrCodeMissingRegions, Regions: missing}
		observability.Facet().OnRunComplete(gridName(opts.Grid), 0, time.Since(start), err)
		return nil, err
	}
	if len(extra) > 0 {
		if opts.ExtraRegionPolicy == ExtraError {
			err := &errors.RegionsError{ErrCode: errors.ErrCodeExtraRegions, Regions: extra}
			observability.Facet().OnRunComplete(gridName(opts.Grid), 0, time.Since(start), err)
			return nil, err
		}
		logger.Warn("data contains regions not in the grid", "regions", extra)
		observability.Facet().OnExtraRegions(extra)
	}

	// Neighbor detection must see exactly the cells that will render:
	// the full grid under the placeholder policy, only the cells with
	// data otherwise. Un-rendered cells must not hide a neighbor's
	// decorations.
	neighbors := opts.Grid
	if opts.MissingRegionPolicy != MissingPlaceholder {
		neighbors = opts.Grid.Filter(func(e grid.Entry) bool { return p.hasData(e.Code) })
	}

	rows, cols := opts.Grid.Dimensions()
	figOpts := []render.Option{}
	if opts.Title != "" {
		figOpts = append(figOpts, render.WithTitle(opts.Title))
	}
	if opts.CellWidth > 0 && opts.CellHeight > 0 {
		figOpts = append(figOpts, render.WithCellSize(opts.CellWidth, opts.CellHeight))
	}
	fig := render.NewFigure(rows, cols, figOpts...)

	rendered := 0
	for _, entry := range opts.Grid.Entries() {
		configs := axisConfigs(&opts, neighbors, entry.Code)

		switch {
		case p.hasData(entry.Code):
			cell := fig.Cell(entry.Row, entry.Col)
			cell.SetTitle(entry.DisplayName())
			part, _ := p.dataFor(entry.Code)
			if err := invokeRender(opts.Render, cell, part, configs, opts.Extra); err != nil {
				logger.Warn("facet render failed", "entity", entry.Code, "err", err)
				observability.Facet().OnRenderFailure(entry.Code, err)
				continue
			}
			rendered++
		case opts.MissingRegionPolicy == MissingPlaceholder:
			cell := fig.Cell(entry.Row, entry.Col)
			for _, cfg := range configs {
				ax := cell.Axes(cfg.AxesStyle())
				ax.SetPlaceholder(entry.DisplayName())
			}
		default:
			// skip policy: nothing renders for this cell.
		}
	}

	linkCells(fig, opts.LinkMode)
	attachLegend(fig, &opts)

	observability.Facet().OnRunComplete(gridName(opts.Grid), rendered, time.Since(start), nil)
	return fig, nil
}

// crossCheck returns the sorted grid entities without data and the
// sorted data entities absent from the grid. Both lists are upper-cased,
// the same canonical form the availability set uses, regardless of how
// the grid or the data spell the codes.
func crossCheck(g *grid.Grid, p *partition) (missing, extra []string) {
	gridCodes := make(map[string]bool, g.Len())
	for _, code := range g.Codes() {
		upper := strings.ToUpper(code)
		gridCodes[upper] = true
		if !p.hasData(code) {
			missing = append(missing, upper)
		}
	}
	for _, code := range p.available() {
		if !gridCodes[code] {
			extra = append(extra, code)
		}
	}
	sort.Strings(missing)
	// extra inherits available()'s sorted order.
	return missing, extra
}

// invokeRender calls the user callback, converting a panic into an
// error so one entity's failure cannot abort the run.
func invokeRender(fn RenderFunc, cell *render.Cell, data table.Grouping, configs []*Config, extra []any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeRenderFailure, "render callback panicked: %v", r)
		}
	}()
	if err := fn(cell, data, configs, extra...); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailure, err, "render callback")
	}
	return nil
}

// rowCount sums the row counts of every group.
func rowCount(g table.Grouping) int {
	n := 0
	for _, gid := range g.Tables() {
		n += g.Table(gid).Len()
	}
	return n
}

// hasColumn reports whether the grouping carries the named column.
func hasColumn(g table.Grouping, col string) bool {
	for _, c := range g.Columns() {
		if c == col {
			return true
		}
	}
	return false
}

// gridName identifies a grid for hooks: its dimensions, the only stable
// identity a caller-supplied grid has.
func gridName(g *grid.Grid) string {
	r, c := g.Dimensions()
	return fmt.Sprintf("%dx%d", r, c)
}
