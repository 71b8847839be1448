package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/geofacet/internal/dataset"
	"github.com/matzehuels/geofacet/pkg/cache"
	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/facet"
	"github.com/matzehuels/geofacet/pkg/grid"
	"github.com/matzehuels/geofacet/pkg/observability"
	"github.com/matzehuels/geofacet/pkg/render"
)

var contentTypes = map[string]string{
	"svg": "image/svg+xml",
	"png": "image/png",
	"pdf": "application/pdf",
}

// renderParams are the query parameters of POST /v1/render.
type renderParams struct {
	entityCol string
	xCol      string
	yCol      string
	gridName  string
	format    string
	link      facet.LinkMode
	missing   facet.MissingRegionPolicy
	extra     facet.ExtraRegionPolicy
	title     string
	scale     float64
}

func parseRenderParams(r *http.Request) (renderParams, error) {
	q := r.URL.Query()
	p := renderParams{
		entityCol: q.Get("entity_column"),
		xCol:      q.Get("x_column"),
		yCol:      q.Get("y_column"),
		gridName:  q.Get("grid"),
		format:    q.Get("format"),
		title:     q.Get("title"),
		scale:     2.0,
	}
	if p.entityCol == "" {
		return p, errors.New(errors.ErrCodeInvalidOption, "entity_column query parameter is required")
	}
	if p.xCol == "" {
		p.xCol = "x"
	}
	if p.yCol == "" {
		p.yCol = "y"
	}
	if p.gridName == "" {
		p.gridName = "us-states"
	}
	if p.format == "" {
		p.format = "svg"
	}
	if _, ok := contentTypes[p.format]; !ok {
		return p, errors.New(errors.ErrCodeInvalidOption, "invalid format: %q (must be one of: svg, png, pdf)", p.format)
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return p, errors.New(errors.ErrCodeInvalidOption, "invalid scale: %q", v)
		}
		p.scale = f
	}

	var err error
	if v := q.Get("link"); v != "" {
		if p.link, err = facet.ParseLinkMode(v); err != nil {
			return p, err
		}
	}
	if v := q.Get("missing"); v != "" {
		if p.missing, err = facet.ParseMissingRegionPolicy(v); err != nil {
			return p, err
		}
	}
	if v := q.Get("extra"); v != "" {
		if p.extra, err = facet.ParseExtraRegionPolicy(v); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	p, err := parseRenderParams(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "reading request body"))
		return
	}

	key := s.keyer.ArtifactKey(cache.Hash(body), cache.ArtifactKeyOpts{
		Format:        p.format,
		Grid:          p.gridName,
		LinkMode:      p.link.String(),
		MissingPolicy: p.missing.String(),
		ExtraPolicy:   p.extra.String(),
		EntityColumn:  p.entityCol,
		Title:         p.title,
		Scale:         p.scale,
	})
	if artifact, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		observability.Cache().OnCacheHit(r.Context(), "artifact")
		w.Header().Set("Content-Type", contentTypes[p.format])
		w.Header().Set("X-Cache", "hit")
		_, _ = w.Write(artifact)
		return
	}
	observability.Cache().OnCacheMiss(r.Context(), "artifact")

	preset, ok := grid.PresetByName(p.gridName)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "unknown grid: %q", p.gridName))
		return
	}
	g, err := preset.Load()
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := dataset.FromCSV(body, p.entityCol, p.xCol, p.yCol)
	if err != nil {
		s.writeError(w, err)
		return
	}

	fig, err := facet.Run(data, facet.Options{
		Grid:                g,
		EntityColumn:        p.entityCol,
		LinkMode:            p.link,
		MissingRegionPolicy: p.missing,
		ExtraRegionPolicy:   p.extra,
		Title:               p.title,
		Logger:              s.logger,
		Render:              dataset.LineRenderer(p.xCol, p.yCol, ""),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	artifact := fig.SVG()
	switch p.format {
	case "png":
		artifact, err = render.ToPNG(artifact, p.scale)
	case "pdf":
		artifact, err = render.ToPDF(artifact)
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "converting %s", p.format))
		return
	}

	if err := s.cache.Set(r.Context(), key, artifact, s.ttl); err != nil {
		s.logger.Warn("caching artifact failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(r.Context(), "artifact", len(artifact))
	}

	w.Header().Set("Content-Type", contentTypes[p.format])
	w.Header().Set("X-Cache", "miss")
	_, _ = w.Write(artifact)
}

func (s *Server) handleGrids(w http.ResponseWriter, r *http.Request) {
	type gridInfo struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Rows        int    `json:"rows"`
		Cols        int    `json:"cols"`
		Entities    int    `json:"entities"`
	}

	var out []gridInfo
	for _, p := range grid.Presets() {
		g, err := p.Load()
		if err != nil {
			s.writeError(w, err)
			return
		}
		rows, cols := g.Dimensions()
		out = append(out, gridInfo{
			Name:        p.Name,
			Description: p.Description,
			Rows:        rows,
			Cols:        cols,
			Entities:    g.Len(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// writeError maps error codes to HTTP statuses and writes a JSON body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidOption, errors.ErrCodeInvalidFormat, errors.ErrCodeEmptyInput,
		errors.ErrCodeColumnNotFound, errors.ErrCodeMissingRegions, errors.ErrCodeExtraRegions,
		errors.ErrCodeInvalidEntity, errors.ErrCodeInvalidPosition, errors.ErrCodePositionConflict,
		errors.ErrCodeShapeMismatch:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}
