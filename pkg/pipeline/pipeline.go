// Package pipeline runs the compose → render pipeline shared by the CLI,
// the TUI and the HTTP server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Compose: apply the preset, validate the config and draw a [poster.Canvas]
//  2. Render: encode the canvas in each requested format (SVG, PNG, PDF, JSON)
//
// Rendered artifacts are cached only for seeded configs. Without a seed
// every run draws a new poster, so there is nothing to reuse.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Config:  poster.DefaultConfig().WithSeed(42),
//	    Preset:  "vivid",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [poster.Canvas]: github.com/matzehuels/blobposter/pkg/poster.Canvas
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobposter/pkg/cache"
	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is the poster configuration. A non-empty Preset overrides
	// the preset's fields.
	Config poster.Config `json:"config"`
	Preset string        `json:"preset,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`       // PNG scale factor
	EmbedFonts bool     `json:"embed_fonts,omitempty"` // inline fonts in SVG
	Points     bool     `json:"points,omitempty"`      // include vertices in JSON

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Config is the effective configuration after the preset was applied.
	Config poster.Config

	// Canvas is the composed poster.
	Canvas *poster.Canvas

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Seeded reports whether the poster is reproducible.
	Seeded bool

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo reports whether artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Shapes      int
	Points      int
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Cacheable bool // Seeded config, artifacts were looked up and stored
	RenderHit bool // Every artifact came from the cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return perrors.New(perrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ValidateAndSetDefaults applies the preset, checks the config and formats
// and fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Preset != "" {
		if err := poster.ApplyPreset(&o.Config, o.Preset); err != nil {
			return err
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return perrors.New(perrors.ErrCodeInvalidRange, "scale must be positive, got %g", o.Scale)
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	w := math.Round(o.Config.Width * o.Config.DPI * o.Scale)
	h := math.Round(o.Config.Height * o.Config.DPI * o.Scale)
	if w*h > poster.MaxPixels {
		return perrors.New(perrors.ErrCodeInvalidRange,
			"scale %g gives a %gx%g raster, over %d pixels", o.Scale, w, h, poster.MaxPixels)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, version string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Version: version}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG, FormatPDF:
		k.EmbedFonts = o.EmbedFonts || format == FormatPDF
	case FormatJSON:
		k.Points = o.Points
	}
	return k
}
