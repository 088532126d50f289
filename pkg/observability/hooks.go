// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about packing jobs and tile cache operations.
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
//	    observability.SetJobHooks(&myJobHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Jobs().OnJobStart(ctx, category, size)
//	// ... pack the atlas ...
//	observability.Jobs().OnJobComplete(ctx, category, size, icons, warnings, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Job Hooks
// =============================================================================

// JobHooks receives events from the atlas packing pipeline.
type JobHooks interface {
	// OnJobStart records the start of one (category, icon size) packing job.
	OnJobStart(ctx context.Context, category string, size int)

	// OnJobComplete records a finished job with its icon count, fallback
	// warning count, and duration. err is nil for successful jobs.
	OnJobComplete(ctx context.Context, category string, size, icons, warnings int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from tile cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopJobHooks is a no-op implementation of JobHooks.
type NoopJobHooks struct{}

func (NoopJobHooks) OnJobStart(context.Context, string, int) {}
func (NoopJobHooks) OnJobComplete(context.Context, string, int, int, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	jobHooks   JobHooks   = NoopJobHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetJobHooks registers custom job hooks.
// This should be called once at application startup before any packing runs.
func SetJobHooks(h JobHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		jobHooks = h
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

// Jobs returns the registered job hooks.
func Jobs() JobHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return jobHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	jobHooks = NoopJobHooks{}
	cacheHooks = NoopCacheHooks{}
}
