package facet

import (
	"github.com/matzehuels/geofacet/pkg/observability"
	"github.com/matzehuels/geofacet/pkg/render"
)

// linkCells groups axes by their creation index within their cell and
// applies range linking per the link mode. Grouping by index, not by
// screen position, keeps dual-axis cells correct: axis 0 of every cell
// links to axis 0 of every other cell, never to a sibling axis 1.
func linkCells(fig *render.Figure, mode LinkMode) {
	if mode == LinkNone {
		return
	}

	groups := make(map[int][]*render.Axes)
	maxIndex := -1
	for _, cell := range fig.Cells() {
		for _, ax := range cell.AxesList() {
			groups[ax.Index()] = append(groups[ax.Index()], ax)
			if ax.Index() > maxIndex {
				maxIndex = ax.Index()
			}
		}
	}

	for i := 0; i <= maxIndex; i++ {
		group := groups[i]
		if len(group) < 2 {
			continue
		}
		if mode == LinkX || mode == LinkBoth {
			render.LinkX(group...)
		}
		if mode == LinkY || mode == LinkBoth {
			render.LinkY(group...)
		}
	}
}

// attachLegend collects labeled series from every cell into one unified
// legend. With no labeled series, a requested legend is skipped with a
// warning rather than rendered empty.
func attachLegend(fig *render.Figure, opts *Options) {
	seen := make(map[string]bool)
	var entries []render.LegendEntry
	for _, cell := range fig.Cells() {
		for _, ax := range cell.AxesList() {
			for _, s := range ax.Series() {
				label := s.Label()
				if label == "" || seen[label] {
					continue
				}
				seen[label] = true
				entries = append(entries, render.LegendEntry{Label: label, Color: s.Color()})
			}
		}
	}

	if len(entries) == 0 {
		if opts.Legend != nil {
			opts.Logger.Warn("legend requested but no labeled series were rendered")
			observability.Facet().OnLegendSkipped()
		}
		return
	}

	leg := render.Legend{Entries: entries}
	if opts.Legend != nil {
		leg.Title = opts.Legend.Title
		leg.Row = opts.Legend.Row
		leg.Col = opts.Legend.Col
		leg.RowSpan = opts.Legend.RowSpan
	}
	fig.SetLegend(leg)
}
