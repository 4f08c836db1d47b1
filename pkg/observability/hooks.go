// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about constraint application, pipeline runs, and cache
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Engine hooks take no context: the grid engine is synchronous and never
// blocks. Pipeline and cache hooks receive the request context.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnContainerCreated(id, observability.ReasonSubdivide)
package observability

import (
	"context"
	"sync"
	"time"
)

// Reasons passed to [EngineHooks.OnContainerCreated].
const (
	ReasonWrap      = "wrap"      // anchor's parent was not a container
	ReasonSubdivide = "subdivide" // collision with a leaf occupant
	ReasonCrossAxis = "cross-axis"
)

// =============================================================================
// Engine Hooks
// =============================================================================

// EngineHooks receives events from constraint application and the grid engine.
type EngineHooks interface {
	// OnConstraintApplied records one constraint application and its outcome.
	OnConstraintApplied(constraint string, duration time.Duration, err error)

	// OnContainerCreated records a synthesized container.
	OnContainerCreated(id, reason string)

	// OnGlobbed records a node appended to an existing container along its
	// dominant axis.
	OnGlobbed(containerID, nodeID, axis string)

	// OnShifted records a renormalization of a container's axis.
	OnShifted(containerID, axis string)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the compile pipeline.
type PipelineHooks interface {
	OnCompileStart(ctx context.Context, constraints int)
	OnCompileComplete(ctx context.Context, nodes int, duration time.Duration, err error)
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
// No-op Implementations
// =============================================================================

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnConstraintApplied(string, time.Duration, error) {}
func (NoopEngineHooks) OnContainerCreated(string, string)                {}
func (NoopEngineHooks) OnGlobbed(string, string, string)                 {}
func (NoopEngineHooks) OnShifted(string, string)                         {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnCompileStart(context.Context, int)                          {}
func (NoopPipelineHooks) OnCompileComplete(context.Context, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// registry holds the process-wide hooks. Hooks are registered at startup
// and read on every event, hence the read-write lock.
type registry struct {
	mu       sync.RWMutex
	engine   EngineHooks
	pipeline PipelineHooks
	cache    CacheHooks
}

var hooks = &registry{
	engine:   NoopEngineHooks{},
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
}

// Register installs h for every hook interface it implements and reports
// how many that was. A nil h registers nothing.
func Register(h any) int {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	n := 0
	if e, ok := h.(EngineHooks); ok {
		hooks.engine, n = e, n+1
	}
	if p, ok := h.(PipelineHooks); ok {
		hooks.pipeline, n = p, n+1
	}
	if c, ok := h.(CacheHooks); ok {
		hooks.cache, n = c, n+1
	}
	return n
}

// SetEngineHooks registers engine hooks. Call it at startup, before any
// constraints are applied; nil is ignored.
func SetEngineHooks(h EngineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.engine = h
}

// SetPipelineHooks registers pipeline hooks; nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline = h
}

// SetCacheHooks registers cache hooks; nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.cache = h
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.engine
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// Reset restores the no-op hooks. Tests that register hooks call it in
// cleanup.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.engine = NoopEngineHooks{}
	hooks.pipeline = NoopPipelineHooks{}
	hooks.cache = NoopCacheHooks{}
}
