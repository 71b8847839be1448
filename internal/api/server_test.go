package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/geofacet/pkg/cache"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewServer(c, log.New(io.Discard))
}

const sampleCSV = `state,x,y
CA,1,10
CA,2,12
TX,1,8
TX,2,9
`

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestGrids(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/grids", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var grids []struct {
		Name     string `json:"name"`
		Entities int    `json:"entities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &grids); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, g := range grids {
		if g.Name == "us-states" && g.Entities == 51 {
			found = true
		}
	}
	if !found {
		t.Errorf("us-states preset missing from %+v", grids)
	}
}

func TestRenderSVG(t *testing.T) {
	srv := newTestServer(t)

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost,
			"/v1/render?entity_column=state&link=both", strings.NewReader(sampleCSV))
		srv.ServeHTTP(rec, req)
		return rec
	}

	rec := do()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
	if rec.Header().Get("X-Cache") != "miss" {
		t.Errorf("first render X-Cache = %q", rec.Header().Get("X-Cache"))
	}

	// Identical request served from cache.
	rec = do()
	if rec.Header().Get("X-Cache") != "hit" {
		t.Errorf("second render X-Cache = %q", rec.Header().Get("X-Cache"))
	}
	if !strings.Contains(rec.Body.String(), "<svg") {
		t.Error("cached body is not SVG")
	}
}

func TestRenderErrors(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"missing entity column", "/v1/render", sampleCSV, http.StatusBadRequest},
		{"bad format", "/v1/render?entity_column=state&format=tiff", sampleCSV, http.StatusBadRequest},
		{"bad link mode", "/v1/render?entity_column=state&link=diagonal", sampleCSV, http.StatusBadRequest},
		{"unknown grid", "/v1/render?entity_column=state&grid=atlantis", sampleCSV, http.StatusNotFound},
		{"unknown column", "/v1/render?entity_column=region", sampleCSV, http.StatusBadRequest},
		{"empty body", "/v1/render?entity_column=state", "state,x,y\n", http.StatusBadRequest},
		{"bad number", "/v1/render?entity_column=state", "state,x,y\nCA,one,2\n", http.StatusBadRequest},
		{"missing regions", "/v1/render?entity_column=state&missing=error", sampleCSV, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tc.url, strings.NewReader(tc.body))
			srv.ServeHTTP(rec, req)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.status, rec.Body.String())
			}
			var e map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if e["code"] == "" {
				t.Error("error body missing code")
			}
		})
	}
}
