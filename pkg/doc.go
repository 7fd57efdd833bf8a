// Package pkg provides the core libraries for blobposter generative posters.
//
// # Overview
//
// Blobposter draws posters from randomly placed, wobbly blob shapes filled
// from a generated colour palette. The pkg directory is organized into
// three areas:
//
//  1. Domain logic ([blob], [palette], [poster])
//  2. Output ([render], [render/sink], [fonts])
//  3. Infrastructure ([pipeline], [cache], [observability], [errors], [buildinfo])
//
// # Architecture
//
// The data flow for one poster:
//
//	poster.Config (flags, TOML file, query string or JSON body)
//	         ↓
//	    [poster] package (validate, seed, place shapes)
//	         ↓
//	    [blob] + [palette] packages (outlines and fill colours)
//	         ↓
//	    [render/sink] package (SVG, PNG, PDF, JSON)
//
// # Quick Start
//
// Compose a seeded poster and render it to SVG:
//
//	import (
//	    "github.com/matzehuels/blobposter/pkg/poster"
//	    "github.com/matzehuels/blobposter/pkg/render/sink"
//	)
//
//	cfg := poster.DefaultConfig().WithSeed(42)
//	c, _ := poster.Compose(cfg)
//	svg := sink.RenderSVG(c)
//
// The same poster through the cached pipeline, as the CLI and server use it:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Config:  cfg,
//	    Preset:  "vivid",
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatJSON},
//	})
//	png := result.Artifacts[pipeline.FormatPNG]
//
// # Main Packages
//
// [blob] - Closed wobbly outlines: evenly spaced vertices on a circle, each
// with its radius perturbed by a uniform random factor.
//
// [palette] - Colour generation in sampled (HSV) and swatch modes, named
// backgrounds and contrast ink.
//
// [poster] - Configuration, presets, seeding and composition of a [poster.Canvas].
//
// [render/sink] - Output formats. SVG is hand-written, PNG is rasterized with
// gg, PDF converts the SVG with rsvg-convert and JSON describes the scene.
//
// [pipeline] - Validation, composition, rendering and caching in one call.
// Only seeded posters are cached because only they are reproducible.
//
// [cache] - Null, memory, file and Redis backends behind one interface.
//
// [observability] - Hooks for logging pipeline, cache and HTTP events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                                           # All tests
//	BLOBPOSTER_TEST_REDIS=redis://localhost:6379/15 go test ./pkg/cache/
//
// [blob]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/blob
// [palette]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/palette
// [poster]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/poster
// [poster.Canvas]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/poster#Canvas
// [render]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/render/sink
// [fonts]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/blobposter/pkg/buildinfo
package pkg
