package grid

import "sync"

// usStateRows lists the built-in US layout (50 states plus DC) row by row.
// Positions approximate the geographic arrangement of the states on a
// compact 8x11 grid.
var usStateRows = []Entry{
	{Code: "AK", Name: "Alaska", Row: 1, Col: 1},
	{Code: "ME", Name: "Maine", Row: 1, Col: 11},

	{Code: "VT", Name: "Vermont", Row: 2, Col: 10},
	{Code: "NH", Name: "New Hampshire", Row: 2, Col: 11},

	{Code: "WA", Name: "Washington", Row: 3, Col: 1},
	{Code: "ID", Name: "Idaho", Row: 3, Col: 2},
	{Code: "MT", Name: "Montana", Row: 3, Col: 3},
	{Code: "ND", Name: "North Dakota", Row: 3, Col: 4},
	{Code: "MN", Name: "Minnesota", Row: 3, Col: 5},
	{Code: "IL", Name: "Illinois", Row: 3, Col: 6},
	{Code: "WI", Name: "Wisconsin", Row: 3, Col: 7},
	{Code: "MI", Name: "Michigan", Row: 3, Col: 8},
	{Code: "NY", Name: "New York", Row: 3, Col: 9},
	{Code: "RI", Name: "Rhode Island", Row: 3, Col: 10},
	{Code: "MA", Name: "Massachusetts", Row: 3, Col: 11},

	{Code: "OR", Name: "Oregon", Row: 4, Col: 1},
	{Code: "NV", Name: "Nevada", Row: 4, Col: 2},
	{Code: "WY", Name: "Wyoming", Row: 4, Col: 3},
	{Code: "SD", Name: "South Dakota", Row: 4, Col: 4},
	{Code: "IA", Name: "Iowa", Row: 4, Col: 5},
	{Code: "IN", Name: "Indiana", Row: 4, Col: 6},
	{Code: "OH", Name: "Ohio", Row: 4, Col: 7},
	{Code: "PA", Name: "Pennsylvania", Row: 4, Col: 8},
	{Code: "NJ", Name: "New Jersey", Row: 4, Col: 9},
	{Code: "CT", Name: "Connecticut", Row: 4, Col: 10},

	{Code: "CA", Name: "California", Row: 5, Col: 1},
	{Code: "UT", Name: "Utah", Row: 5, Col: 2},
	{Code: "CO", Name: "Colorado", Row: 5, Col: 3},
	{Code: "NE", Name: "Nebraska", Row: 5, Col: 4},
	{Code: "MO", Name: "Missouri", Row: 5, Col: 5},
	{Code: "KY", Name: "Kentucky", Row: 5, Col: 6},
	{Code: "WV", Name: "West Virginia", Row: 5, Col: 7},
	{Code: "VA", Name: "Virginia", Row: 5, Col: 8},
	{Code: "MD", Name: "Maryland", Row: 5, Col: 9},
	{Code: "DE", Name: "Delaware", Row: 5, Col: 10},

	{Code: "AZ", Name: "Arizona", Row: 6, Col: 2},
	{Code: "NM", Name: "New Mexico", Row: 6, Col: 3},
	{Code: "KS", Name: "Kansas", Row: 6, Col: 4},
	{Code: "AR", Name: "Arkansas", Row: 6, Col: 5},
	{Code: "TN", Name: "Tennessee", Row: 6, Col: 6},
	{Code: "NC", Name: "North Carolina", Row: 6, Col: 7},
	{Code: "SC", Name: "South Carolina", Row: 6, Col: 8},
	{Code: "DC", Name: "District of Columbia", Row: 6, Col: 9},

	{Code: "HI", Name: "Hawaii", Row: 7, Col: 1},
	{Code: "OK", Name: "Oklahoma", Row: 7, Col: 4},
	{Code: "LA", Name: "Louisiana", Row: 7, Col: 5},
	{Code: "MS", Name: "Mississippi", Row: 7, Col: 6},
	{Code: "AL", Name: "Alabama", Row: 7, Col: 7},
	{Code: "GA", Name: "Georgia", Row: 7, Col: 8},

	{Code: "TX", Name: "Texas", Row: 8, Col: 4},
	{Code: "FL", Name: "Florida", Row: 8, Col: 9},
}

// usStates builds the preset on first use. Construction is deferred so a
// validation failure in the table above surfaces as an error to the first
// caller instead of an init-time panic or a silent empty grid.
var usStates = sync.OnceValues(func() (*Grid, error) {
	return New(usStateRows)
})

// USStates returns the built-in US states grid (50 states plus DC).
// The grid is constructed lazily on first call and shared afterwards.
func USStates() (*Grid, error) {
	return usStates()
}

// Preset describes a named built-in grid.
type Preset struct {
	Name        string
	Description string
	Load        func() (*Grid, error)
}

// Presets returns the built-in grids in display order.
func Presets() []Preset {
	return []Preset{
		{
			Name:        "us-states",
			Description: "US states plus DC on a compact 8x11 layout",
			Load:        USStates,
		},
	}
}

// PresetByName returns the named preset, or ok=false if it does not exist.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets() {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
