// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about facet runs, cache operations, and API calls.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, DataDog, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFacetHooks(&myFacetHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Facet().OnRunStart(gridName, entityCount)
//	// ... render facets ...
//	observability.Facet().OnRunComplete(gridName, rendered, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Facet Hooks
// =============================================================================

// FacetHooks receives events from facet orchestration runs.
type FacetHooks interface {
	// OnRunStart records the beginning of a facet run.
	OnRunStart(gridName string, entityCount int)

	// OnRunComplete records the end of a facet run with the number of
	// cells actually rendered.
	OnRunComplete(gridName string, rendered int, duration time.Duration, err error)

	// OnRenderFailure records a non-fatal per-entity callback failure.
	OnRenderFailure(entity string, err error)

	// OnExtraRegions records data entities absent from the grid that
	// were tolerated under the warn policy.
	OnExtraRegions(regions []string)

	// OnLegendSkipped records a requested legend that was skipped
	// because no series carried a label.
	OnLegendSkipped()
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the render service.
type HTTPHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response sent for a request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFacetHooks is a no-op implementation of FacetHooks.
type NoopFacetHooks struct{}

func (NoopFacetHooks) OnRunStart(string, int)                          {}
func (NoopFacetHooks) OnRunComplete(string, int, time.Duration, error) {}
func (NoopFacetHooks) OnRenderFailure(string, error)                   {}
func (NoopFacetHooks) OnExtraRegions([]string)                         {}
func (NoopFacetHooks) OnLegendSkipped()                                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	facetHooks FacetHooks = NoopFacetHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetFacetHooks registers custom facet hooks.
// This should be called once at application startup before any facet runs.
func SetFacetHooks(h FacetHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		facetHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before the server starts.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Facet returns the registered facet hooks.
func Facet() FacetHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return facetHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	facetHooks = NoopFacetHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
