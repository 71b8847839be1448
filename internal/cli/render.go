package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/geofacet/internal/dataset"
	"github.com/matzehuels/geofacet/pkg/cache"
	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/facet"
	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/render"
)

const artifactTTL = 7 * 24 * time.Hour

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file path; derived from input when empty
	format      string  // svg, png, or pdf
	gridName    string  // preset name or layout CSV path
	entityCol   string  // column holding entity codes
	xCol, yCol  string  // plotted columns
	label       string  // series label feeding the legend
	link        string  // none, x, y, both
	missing     string  // skip, placeholder, error
	extra       string  // warn, error
	legendTitle string  // unified legend title
	title       string  // figure title
	scale       float64 // PNG scale factor
	noCache     bool    // bypass the artifact cache
}

// newRenderCmd creates the render command for generating faceted
// figures from CSV data.
//
// Default settings:
//   - grid: us-states (or the config file's grid)
//   - format: svg
//   - link: both (shared ranges is the point of faceting)
//   - missing: skip, extra: warn
func newRenderCmd() *cobra.Command {
	opts := renderOpts{
		format:    "svg",
		entityCol: "state",
		xCol:      "x",
		yCol:      "y",
		link:      "both",
		missing:   "skip",
		extra:     "warn",
		scale:     2.0,
	}

	cmd := &cobra.Command{
		Use:   "render [data.csv]",
		Short: "Render a faceted figure from CSV data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, pdf")
	cmd.Flags().StringVarP(&opts.gridName, "grid", "g", "", "grid preset name or layout CSV path")
	cmd.Flags().StringVar(&opts.entityCol, "entity-column", opts.entityCol, "column holding entity codes")
	cmd.Flags().StringVar(&opts.xCol, "x-column", opts.xCol, "column plotted on the X axis")
	cmd.Flags().StringVar(&opts.yCol, "y-column", opts.yCol, "column plotted on the Y axis")
	cmd.Flags().StringVar(&opts.label, "label", "", "series label (enables the legend)")
	cmd.Flags().StringVar(&opts.link, "link", opts.link, "axis linking: none, x, y, both")
	cmd.Flags().StringVar(&opts.missing, "missing", opts.missing, "missing-region policy: skip, placeholder, error")
	cmd.Flags().StringVar(&opts.extra, "extra", opts.extra, "extra-region policy: warn, error")
	cmd.Flags().StringVar(&opts.legendTitle, "legend-title", "", "unified legend title")
	cmd.Flags().StringVar(&opts.title, "title", "", "figure title")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")

	return cmd
}

func runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if opts.gridName == "" {
		opts.gridName = cfg.Grid
	}
	if opts.output == "" {
		opts.output = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}

	link, err := facet.ParseLinkMode(opts.link)
	if err != nil {
		return err
	}
	missing, err := facet.ParseMissingRegionPolicy(opts.missing)
	if err != nil {
		return err
	}
	extra, err := facet.ParseExtraRegionPolicy(opts.extra)
	if err != nil {
		return err
	}
	if opts.format != "svg" && opts.format != "png" && opts.format != "pdf" {
		return errors.New(errors.ErrCodeInvalidOption, "invalid format: %q (must be 'svg', 'png', or 'pdf')", opts.format)
	}

	body, err := os.ReadFile(input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "reading %s", input)
	}

	store := cache.NewNullCache()
	if !opts.noCache {
		if fc, err := cache.NewFileCache(cfg.CacheDir); err == nil {
			store = fc
		} else {
			logger.Warn("artifact cache disabled", "err", err)
		}
	}
	defer store.Close()

	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(body), cache.ArtifactKeyOpts{
		Format:        opts.format,
		Grid:          opts.gridName,
		LinkMode:      link.String(),
		MissingPolicy: missing.String(),
		ExtraPolicy:   extra.String(),
		EntityColumn:  opts.entityCol,
		Title:         opts.title,
		Scale:         opts.scale,
	})
	if artifact, hit, err := store.Get(ctx, key); err == nil && hit {
		if err := os.WriteFile(opts.output, artifact, 0644); err != nil {
			return err
		}
		logger.Info("served from cache", "output", opts.output)
		return nil
	}

	g, err := resolveGrid(opts.gridName)
	if err != nil {
		return err
	}
	data, err := dataset.FromCSV(body, opts.entityCol, opts.xCol, opts.yCol)
	if err != nil {
		return err
	}

	facetOpts := facet.Options{
		Grid:                g,
		EntityColumn:        opts.entityCol,
		LinkMode:            link,
		MissingRegionPolicy: missing,
		ExtraRegionPolicy:   extra,
		Title:               opts.title,
		Logger:              logger,
		Render:              dataset.LineRenderer(opts.xCol, opts.yCol, opts.label),
	}
	if opts.legendTitle != "" {
		facetOpts.Legend = &facet.LegendOptions{Title: opts.legendTitle}
	}

	fig, err := facet.Run(data, facetOpts)
	if err != nil {
		return err
	}

	artifact := fig.SVG()
	switch opts.format {
	case "png":
		artifact, err = render.ToPNG(artifact, opts.scale)
	case "pdf":
		artifact, err = render.ToPDF(artifact)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, artifact, 0644); err != nil {
		return err
	}
	if err := store.Set(ctx, key, artifact, artifactTTL); err != nil {
		logger.Warn("caching artifact failed", "err", err)
	}

	prog.done(fmt.Sprintf("Rendered %d facets to %s", len(fig.Cells()), opts.output))
	return nil
}

// resolveGrid loads a preset by name, falling back to a layout CSV path.
func resolveGrid(name string) (*grid.Grid, error) {
	if p, ok := grid.PresetByName(name); ok {
		return p.Load()
	}
	if _, err := os.Stat(name); err == nil {
		return grid.ReadCSVFile(name)
	}
	return nil, errors.New(errors.ErrCodeNotFound, "unknown grid: %q (not a preset, not a file)", name)
}
