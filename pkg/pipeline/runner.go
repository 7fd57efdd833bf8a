package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobposter/pkg/buildinfo"
	"github.com/matzehuels/blobposter/pkg/cache"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// Runner encapsulates pipeline execution with caching.
// Both the CLI and the HTTP server use it so caching behaves the same.
//
// The Runner holds no per-run state. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the compose → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{
		Config: opts.Config,
		Seeded: opts.Config.Seeded(),
	}

	composeStart := time.Now()
	c, err := r.Compose(ctx, opts.Config)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Canvas = c
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.Shapes = len(c.Shapes)
	result.Stats.Points = c.PointCount()

	r.Logger.Debug("composed poster",
		"shapes", result.Stats.Shapes,
		"points", result.Stats.Points,
		"seeded", result.Seeded,
		"duration", result.Stats.ComposeTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, c, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.Cacheable = result.Seeded
	result.CacheInfo.RenderHit = hit

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Compose validates cfg and draws the canvas, reporting to the pipeline hooks.
func (r *Runner) Compose(ctx context.Context, cfg poster.Config) (*poster.Canvas, error) {
	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, cfg.Layers, cfg.Seeded())
	start := time.Now()

	c, err := poster.Compose(cfg)

	shapes := 0
	if c != nil {
		shapes = len(c.Shapes)
	}
	hooks.OnComposeComplete(ctx, shapes, time.Since(start), err)
	return c, err
}

// RenderWithCacheInfo renders every requested format and reports whether all
// of them came from the cache. Unseeded canvases bypass the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, c *poster.Canvas, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, hit, err := r.render(ctx, c, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, c *poster.Canvas, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, c, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, c *poster.Canvas, opts Options) (map[string][]byte, bool, error) {
	if c.Seed == nil {
		artifacts, err := Render(ctx, c, opts)
		return artifacts, false, err
	}

	configHash, err := cache.HashJSON(opts.Config)
	if err != nil {
		return nil, false, fmt.Errorf("hash config for cache key: %w", err)
	}
	keys := make(map[string]string, len(opts.Formats))
	for _, format := range opts.Formats {
		keys[format] = r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format, buildinfo.Version))
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	hits := 0

	for _, format := range opts.Formats {
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, keys[format])
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "error", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				hits++
				continue
			}
			cacheHooks.OnCacheMiss(ctx, "artifact")
		}

		data, err := RenderFormat(ctx, c, format, opts)
		if err != nil {
			return nil, false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, keys[format], data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, hits == len(opts.Formats), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
