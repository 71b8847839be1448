package facet

import (
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
)

func stateTable(states []string, vals []float64) table.Grouping {
	return new(table.Builder).Add("state", states).Add("v", vals).Done()
}

func TestPartition(t *testing.T) {
	data := stateTable(
		[]string{"ca", "ca", "TX", "Wa"},
		[]float64{1, 2, 3, 4},
	)
	p := newPartition(data, "state")

	if got, want := p.available(), []string{"CA", "TX", "WA"}; !reflect.DeepEqual(got, want) {
		t.Errorf("available = %v, want %v", got, want)
	}
}

func TestHasDataCaseInsensitive(t *testing.T) {
	p := newPartition(stateTable([]string{"ca"}, []float64{1}), "state")

	for _, code := range []string{"CA", "ca", "Ca", "cA"} {
		if !p.hasData(code) {
			t.Errorf("hasData(%q) = false, want true", code)
		}
	}
	if p.hasData("NY") {
		t.Error("hasData(NY) = true for absent entity")
	}
}

func TestDataFor(t *testing.T) {
	data := stateTable(
		[]string{"CA", "TX", "CA"},
		[]float64{1, 2, 3},
	)
	p := newPartition(data, "state")

	part, ok := p.dataFor("ca")
	if !ok {
		t.Fatal("dataFor(ca) not found")
	}
	n := 0
	for _, gid := range part.Tables() {
		tab := part.Table(gid)
		n += tab.Len()
		for _, s := range tab.MustColumn("state").([]string) {
			if s != "CA" {
				t.Errorf("partition for CA contains row for %q", s)
			}
		}
	}
	if n != 2 {
		t.Errorf("partition has %d rows, want 2", n)
	}

	if _, ok := p.dataFor("NY"); ok {
		t.Error("dataFor(NY) should report absent")
	}
}

func TestDataForSharesTables(t *testing.T) {
	data := stateTable([]string{"CA"}, []float64{1})
	p := newPartition(data, "state")

	part, _ := p.dataFor("CA")
	gids := part.Tables()
	if len(gids) != 1 {
		t.Fatalf("got %d groups, want 1", len(gids))
	}
	if part.Table(gids[0]) != p.grouped.Table(gids[0]) {
		t.Error("dataFor should reuse the grouped tables, not copy them")
	}
}
