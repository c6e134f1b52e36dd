// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about frame rendering, interaction handling and frame
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Render and interaction hooks take no context: they fire from inside the
// synchronous event loop of a visualization, which has no cancellation.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	render.Draw(ctx, frame)
//	observability.Render().OnFrame(len(frame.Nodes), len(frame.Links), time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the render loop.
type RenderHooks interface {
	// OnFrame records one complete redraw.
	OnFrame(nodeCount, linkCount int, duration time.Duration)

	// OnTooltip records a tooltip shown for node index.
	OnTooltip(index int)
}

// =============================================================================
// Interaction Hooks
// =============================================================================

// InteractionHooks receives events from the interaction controller.
type InteractionHooks interface {
	// OnEvent records an input event by kind ("click", "wheel", ...).
	OnEvent(kind string)

	// OnHover records a hover notification for node index.
	OnHover(index int)

	// OnSelection records the selection size after a change.
	OnSelection(size int)

	// OnZoom records the zoom factor after a pan or zoom tick.
	OnZoom(k float64)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from frame cache operations.
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

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnFrame(int, int, time.Duration) {}
func (NoopRenderHooks) OnTooltip(int)                   {}

// NoopInteractionHooks is a no-op implementation of InteractionHooks.
type NoopInteractionHooks struct{}

func (NoopInteractionHooks) OnEvent(string)  {}
func (NoopInteractionHooks) OnHover(int)     {}
func (NoopInteractionHooks) OnSelection(int) {}
func (NoopInteractionHooks) OnZoom(float64)  {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks      RenderHooks      = NoopRenderHooks{}
	interactionHooks InteractionHooks = NoopInteractionHooks{}
	cacheHooks       CacheHooks       = NoopCacheHooks{}
	hooksMu          sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any frame is drawn.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetInteractionHooks registers custom interaction hooks.
// This should be called once at application startup before any event is handled.
func SetInteractionHooks(h InteractionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		interactionHooks = h
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

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Interaction returns the registered interaction hooks.
func Interaction() InteractionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return interactionHooks
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
	renderHooks = NoopRenderHooks{}
	interactionHooks = NoopInteractionHooks{}
	cacheHooks = NoopCacheHooks{}
}
