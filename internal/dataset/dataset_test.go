package dataset

import (
	"testing"

	"github.com/matzehuels/geofacet/pkg/errors"
	"github.com/matzehuels/geofacet/pkg/facet"
	"github.com/matzehuels/geofacet/pkg/grid"
)

const sampleCSV = `state,x,y
CA,1,10
CA,2,20
TX,1,5
`

func TestFromCSV(t *testing.T) {
	g, err := FromCSV([]byte(sampleCSV), "state", "x", "y")
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}

	gids := g.Tables()
	if len(gids) != 1 {
		t.Fatalf("len(Tables) = %d, want 1 ungrouped table", len(gids))
	}
	tab := g.Table(gids[0])
	if tab.Len() != 3 {
		t.Errorf("rows = %d, want 3", tab.Len())
	}
	states := tab.MustColumn("state").([]string)
	if states[0] != "CA" || states[2] != "TX" {
		t.Errorf("states = %v", states)
	}
	ys := tab.MustColumn("y").([]float64)
	if ys[1] != 20 {
		t.Errorf("ys[1] = %v, want 20", ys[1])
	}
}

func TestFromCSVTrimsHeaderWhitespace(t *testing.T) {
	if _, err := FromCSV([]byte("state, x, y\nCA,1,2\n"), "state", "x", "y"); err != nil {
		t.Fatalf("FromCSV with padded header: %v", err)
	}
}

func TestFromCSVErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode errors.Code
	}{
		{"empty body", "", errors.ErrCodeEmptyInput},
		{"header only", "state,x,y\n", errors.ErrCodeEmptyInput},
		{"missing column", "state,x\nCA,1\n", errors.ErrCodeColumnNotFound},
		{"bad number", "state,x,y\nCA,1,oops\n", errors.ErrCodeInvalidFormat},
		{"ragged rows", "state,x,y\nCA,1\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromCSV([]byte(tt.body), "state", "x", "y")
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
		})
	}
}

func TestLineRenderer(t *testing.T) {
	g, err := FromCSV([]byte(sampleCSV), "state", "x", "y")
	if err != nil {
		t.Fatalf("FromCSV: %v", err)
	}
	layout, err := grid.FromMap(map[string][2]int{"CA": {1, 1}, "TX": {1, 2}})
	if err != nil {
		t.Fatalf("FromMap: %v", err)
	}

	fig, err := facet.Run(g, facet.Options{
		Grid:         layout,
		EntityColumn: "state",
		Render:       LineRenderer("x", "y", "sales"),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fig.Cells()) != 2 {
		t.Fatalf("cells = %d, want 2", len(fig.Cells()))
	}
	leg, ok := fig.LegendSpec()
	if !ok || len(leg.Entries) != 1 || leg.Entries[0].Label != "sales" {
		t.Errorf("legend = %+v (ok=%v), want single 'sales' entry", leg, ok)
	}
}
