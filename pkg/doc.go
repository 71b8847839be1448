// Package pkg provides the core libraries for geofacet, a faceting
// engine that arranges per-entity plots into a grid approximating the
// entities' geographic layout (US states by default).
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [grid] - Grid layouts: validated entity→(row, col) placements,
//     neighbor queries, CSV loading, and built-in presets
//  2. [facet] - Orchestration: data partitioning, region cross-checks,
//     per-cell rendering, axis linking, and legend unification
//  3. [render] - The figure container and SVG/PNG/PDF sinks
//  4. [cache] - Artifact caching (file, Redis, null backends)
//  5. [errors] - Structured error codes shared across the library
//  6. [observability] - Optional hooks for metrics and tracing
//
// # Quick Start
//
// Facet a table of per-state values over the built-in US grid:
//
//	import (
//	    "os"
//
//	    "github.com/aclements/go-gg/table"
//	    "github.com/matzehuels/geofacet/pkg/facet"
//	    "github.com/matzehuels/geofacet/pkg/render"
//	)
//
//	data := new(table.Builder).
//	    Add("state", states).
//	    Add("year", years).
//	    Add("value", values).
//	    Done()
//
//	fig, err := facet.Run(data, facet.Options{
//	    EntityColumn: "state",
//	    LinkMode:     facet.LinkBoth,
//	    Render: func(cell *render.Cell, data table.Grouping, configs []*facet.Config, extra ...any) error {
//	        ax := cell.Axes(configs[0].AxesStyle())
//	        for _, gid := range data.Tables() {
//	            t := data.Table(gid)
//	            xs := t.MustColumn("year").([]float64)
//	            ys := t.MustColumn("value").([]float64)
//	            if err := ax.Line(xs, ys, render.WithLabel("value")); err != nil {
//	                return err
//	            }
//	        }
//	        return nil
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.svg", fig.SVG(), 0o644)
//
// Custom layouts come from a literal mapping, parallel columns, or CSV:
//
//	g, err := grid.ReadCSVFile("eu-countries.csv")
//	fig, err := facet.Run(data, facet.Options{Grid: g, ...})
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/facet/...    # Specific package
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/grid
// [facet]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/facet
// [render]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/geofacet/pkg/observability
package pkg
