// Package dataset converts CSV input into go-gg tables for the CLI and
// the render service, and provides the default per-facet renderer both
// use when no custom callback is available.
package dataset

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"

	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/facet"
	"github.com/matzehuels/geofacet/pkg/render"
)

// FromCSV parses CSV bytes into a grouping with the entity column as
// strings and the X/Y columns as float64. The first record is the
// header; header names are matched after trimming whitespace.
func FromCSV(body []byte, entityCol, xCol, yCol string) (table.Grouping, error) {
	records, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parsing CSV")
	}
	if len(records) < 2 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "CSV has no data rows")
	}

	idx := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range []string{entityCol, xCol, yCol} {
		if _, ok := idx[col]; !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q not found in CSV", col)
		}
	}

	n := len(records) - 1
	entities := make([]string, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, rec := range records[1:] {
		entities[i] = strings.TrimSpace(rec[idx[entityCol]])
		if xs[i], err = strconv.ParseFloat(rec[idx[xCol]], 64); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d: invalid %s value %q", i+2, xCol, rec[idx[xCol]])
		}
		if ys[i], err = strconv.ParseFloat(rec[idx[yCol]], 64); err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "row %d: invalid %s value %q", i+2, yCol, rec[idx[yCol]])
		}
	}

	return new(table.Builder).
		Add(entityCol, entities).
		Add(xCol, xs).
		Add(yCol, ys).
		Done(), nil
}

// FromCSVFile reads and parses a CSV data file.
func FromCSVFile(path, entityCol, xCol, yCol string) (table.Grouping, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "reading %s", path)
	}
	g, err := FromCSV(body, entityCol, xCol, yCol)
	return g, err
}

// LineRenderer draws one line per facet from the X/Y columns. An
// optional label feeds the unified legend.
func LineRenderer(xCol, yCol, label string) facet.RenderFunc {
	return func(cell *render.Cell, data table.Grouping, configs []*facet.Config, extra ...any) error {
		ax := cell.Axes(configs[0].AxesStyle())
		var opts []render.SeriesOption
		if label != "" {
			opts = append(opts, render.WithLabel(label))
		}
		for _, gid := range data.Tables() {
			t := data.Table(gid)
			xs := t.MustColumn(xCol).([]float64)
			ys := t.MustColumn(yCol).([]float64)
			if err := ax.Line(xs, ys, opts...); err != nil {
				return err
			}
		}
		return nil
	}
}
