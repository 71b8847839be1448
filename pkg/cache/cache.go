// Package cache provides caching for rendered figure artifacts.
//
// Rendering a figure is deterministic in its inputs: the same data, grid,
// and render options always produce the same bytes. The CLI and the
// render service exploit that by keying artifacts on a content hash of
// the input data plus the render options, so repeated renders of
// unchanged data are served from cache.
//
// Three backends implement the Cache interface:
//   - FileCache: directory-based, for CLI usage
//   - RedisCache: shared cache for the render service
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render options that change the output bytes.
// Two renders with the same data hash and the same opts are
// interchangeable.
type ArtifactKeyOpts struct {
	Format        string  `json:"format"` // svg, png, pdf
	Grid          string  `json:"grid"`
	LinkMode      string  `json:"link_mode"`
	MissingPolicy string  `json:"missing_policy"`
	ExtraPolicy   string  `json:"extra_policy"`
	EntityColumn  string  `json:"entity_column"`
	Title         string  `json:"title,omitempty"`
	Scale         float64 `json:"scale,omitempty"`
	CellWidth     float64 `json:"cell_width,omitempty"`
	CellHeight    float64 `json:"cell_height,omitempty"`
}

// Keyer generates cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey generates a key from the input data's content hash
	// and the render options.
	ArtifactKey(dataHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(dataHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", dataHash, opts)
}
