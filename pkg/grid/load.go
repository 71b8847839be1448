package grid

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/geofacet/pkg/errors"
)

// ReadCSV loads a grid definition from CSV.
//
// The header must contain `row` and `col` columns and exactly one column
// whose name contains "code" (matched case-insensitively), which supplies
// the entity identifier. An optional `name` column supplies display names.
// Every other column is kept as per-entry metadata keyed by its header.
//
// The resulting entries pass through the same validation as New, so a
// malformed file can also surface INVALID_ENTITY, INVALID_POSITION, or
// POSITION_CONFLICT errors.
func ReadCSV(r io.Reader) (*Grid, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "grid file is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read grid header")
	}

	rowIdx, colIdx, nameIdx, codeIdx := -1, -1, -1, -1
	var metaCols []int
	for i, h := range header {
		switch name := strings.ToLower(strings.TrimSpace(h)); {
		case name == "row":
			rowIdx = i
		case name == "col":
			colIdx = i
		case name == "name":
			nameIdx = i
		case strings.Contains(name, "code"):
			if codeIdx >= 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"grid file has multiple code columns: %q and %q", header[codeIdx], h)
			}
			codeIdx = i
		default:
			metaCols = append(metaCols, i)
		}
	}
	if rowIdx < 0 || colIdx < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "grid file needs row and col columns")
	}
	if codeIdx < 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"grid file needs a column whose name contains %q", "code")
	}

	var entries []Entry
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read grid line %d", line)
		}

		row, err := strconv.Atoi(strings.TrimSpace(record[rowIdx]))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: row %q is not an integer", line, record[rowIdx])
		}
		col, err := strconv.Atoi(strings.TrimSpace(record[colIdx]))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: col %q is not an integer", line, record[colIdx])
		}

		e := Entry{Code: record[codeIdx], Row: row, Col: col}
		if nameIdx >= 0 {
			e.Name = record[nameIdx]
		}
		if len(metaCols) > 0 {
			e.Meta = Metadata{}
			for _, mi := range metaCols {
				e.Meta[header[mi]] = record[mi]
			}
		}
		entries = append(entries, e)
	}

	return New(entries)
}

// ReadCSVFile loads a grid definition from a CSV file on disk.
func ReadCSVFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open grid file %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}
