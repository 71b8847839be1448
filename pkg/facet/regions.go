package facet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
)

// partition maps entity codes (case-insensitively) to their slice of the
// input data. It is built once per run; lookups never copy or mutate the
// caller's tables.
type partition struct {
	grouped table.Grouping
	// byCode maps upper-cased entity codes to their group IDs. A code
	// owns several groups when the input carried grouping structure of
	// its own.
	byCode map[string][]table.GroupID
}

// newPartition groups data by the entity column. The group label is the
// entity value of the innermost grouping level.
func newPartition(data table.Grouping, entityCol string) *partition {
	grouped := table.GroupBy(data, entityCol)
	p := &partition{
		grouped: grouped,
		byCode:  make(map[string][]table.GroupID),
	}
	for _, gid := range grouped.Tables() {
		code := strings.ToUpper(fmt.Sprint(gid.Label()))
		p.byCode[code] = append(p.byCode[code], gid)
	}
	return p
}

// available returns the sorted upper-cased entity codes present in the
// data.
func (p *partition) available() []string {
	out := make([]string, 0, len(p.byCode))
	for code := range p.byCode {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// hasData reports whether the entity has any rows, matching
// case-insensitively.
func (p *partition) hasData(code string) bool {
	_, ok := p.byCode[strings.ToUpper(code)]
	return ok
}

// dataFor returns the entity's slice of the input as a Grouping sharing
// the original tables. ok is false when the entity has no data.
func (p *partition) dataFor(code string) (table.Grouping, bool) {
	gids, ok := p.byCode[strings.ToUpper(code)]
	if !ok {
		return nil, false
	}
	var b table.GroupingBuilder
	for _, gid := range gids {
		b.Add(gid, p.grouped.Table(gid))
	}
	return b.Done(), true
}
