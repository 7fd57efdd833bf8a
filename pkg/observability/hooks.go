// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through the registered hooks; binaries decide what
// to do with them. The defaults are no-ops, so library code never depends
// on a particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnComposeStart(ctx, cfg.Layers, cfg.Seeded())
//	// ... compose ...
//	observability.Pipeline().OnComposeComplete(ctx, len(c.Shapes), duration, err)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the poster pipeline.
type PipelineHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, layers int, seeded bool)
	OnComposeComplete(ctx context.Context, shapes int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP server.
type HTTPHooks interface {
	// OnRequest records an incoming request. route is the matched pattern.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComposeStart(context.Context, int, bool)                        {}
func (NoopPipelineHooks) OnComposeComplete(context.Context, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds the registered implementation of one hook interface.
type slot[T any] struct {
	cur  atomic.Pointer[T]
	noop T
}

func (s *slot[T]) get() T {
	if p := s.cur.Load(); p != nil {
		return *p
	}
	return s.noop
}

// set installs h and returns a func that puts the previous hooks back.
// A nil h is ignored.
func (s *slot[T]) set(h T) (restore func()) {
	if any(h) == nil {
		return func() {}
	}
	prev := s.cur.Swap(&h)
	return func() { s.cur.Store(prev) }
}

var (
	pipelineSlot = &slot[PipelineHooks]{noop: NoopPipelineHooks{}}
	cacheSlot    = &slot[CacheHooks]{noop: NoopCacheHooks{}}
	httpSlot     = &slot[HTTPHooks]{noop: NoopHTTPHooks{}}
)

// SetPipelineHooks registers pipeline hooks. Call the returned func to
// restore the previous ones.
func SetPipelineHooks(h PipelineHooks) (restore func()) { return pipelineSlot.set(h) }

// SetCacheHooks registers cache hooks.
func SetCacheHooks(h CacheHooks) (restore func()) { return cacheSlot.set(h) }

// SetHTTPHooks registers HTTP hooks.
func SetHTTPHooks(h HTTPHooks) (restore func()) { return httpSlot.set(h) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.get() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.get() }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return httpSlot.get() }

// Reset restores all hooks to their no-op defaults.
func Reset() {
	pipelineSlot.cur.Store(nil)
	cacheSlot.cur.Store(nil)
	httpSlot.cur.Store(nil)
}

// MultiPipeline returns hooks that forward every event to each of hooks in
// order.
func MultiPipeline(hooks ...PipelineHooks) PipelineHooks {
	return multiPipeline(hooks)
}

type multiPipeline []PipelineHooks

func (m multiPipeline) OnComposeStart(ctx context.Context, layers int, seeded bool) {
	for _, h := range m {
		h.OnComposeStart(ctx, layers, seeded)
	}
}

func (m multiPipeline) OnComposeComplete(ctx context.Context, shapes int, d time.Duration, err error) {
	for _, h := range m {
		h.OnComposeComplete(ctx, shapes, d, err)
	}
}

func (m multiPipeline) OnRenderStart(ctx context.Context, formats []string) {
	for _, h := range m {
		h.OnRenderStart(ctx, formats)
	}
}

func (m multiPipeline) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	for _, h := range m {
		h.OnRenderComplete(ctx, formats, d, err)
	}
}
