package poster

import (
	"math"

	"github.com/matzehuels/blobposter/pkg/blob"
	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
)

// Limits enforced by Validate.
const (
	MaxLayers      = 500
	MinPoints      = 3
	MaxPoints      = 4000
	MaxRadius      = 2.0
	MaxWobble      = 4.0
	MaxPaletteSize = 64
	MaxInches      = 60.0
	MinDPI         = 18.0
	MaxDPI         = 1200.0
	MaxPixels      = 100_000_000
)

// Config is the full set of generation parameters for one poster.
//
// Config has no "zero means default" fields: zero layers is a blank poster
// and a zero base hue is red. Decode user input on top of [DefaultConfig]
// so omitted fields keep their defaults.
type Config struct {
	Layers     int     `json:"layers" toml:"layers"`
	WobbleMin  float64 `json:"wobble_min" toml:"wobble_min"`
	WobbleMax  float64 `json:"wobble_max" toml:"wobble_max"`
	WobbleMode string  `json:"wobble_mode" toml:"wobble_mode"`
	RadiusMin  float64 `json:"radius_min" toml:"radius_min"`
	RadiusMax  float64 `json:"radius_max" toml:"radius_max"`
	AlphaMin   float64 `json:"alpha_min" toml:"alpha_min"`
	AlphaMax   float64 `json:"alpha_max" toml:"alpha_max"`
	Points     int     `json:"points" toml:"points"`

	Palette       string  `json:"palette" toml:"palette"`
	PaletteSource string  `json:"palette_source" toml:"palette_source"`
	PaletteSize   int     `json:"palette_size" toml:"palette_size"`
	BaseHue       float64 `json:"base_hue" toml:"base_hue"`

	// Seed makes the render reproducible when set.
	Seed *int64 `json:"seed,omitempty" toml:"seed,omitempty"`

	Width      float64 `json:"width" toml:"width"`   // inches
	Height     float64 `json:"height" toml:"height"` // inches
	DPI        float64 `json:"dpi" toml:"dpi"`
	Background string  `json:"background" toml:"background"`

	Title      string `json:"title" toml:"title"`
	Subtitle   string `json:"subtitle" toml:"subtitle"`
	TagPalette bool   `json:"tag_palette" toml:"tag_palette"` // append " • <palette>" to the title
}

// DefaultConfig returns the default poster parameters.
func DefaultConfig() Config {
	return Config{
		Layers:        12,
		WobbleMin:     0.05,
		WobbleMax:     0.25,
		WobbleMode:    blob.Relative.String(),
		RadiusMin:     0.18,
		RadiusMax:     0.48,
		AlphaMin:      0.30,
		AlphaMax:      0.65,
		Points:        200,
		Palette:       palette.Pastel.String(),
		PaletteSource: palette.Sampled.String(),
		PaletteSize:   8,
		BaseHue:       palette.DefaultBaseHue,
		Width:         7,
		Height:        10,
		DPI:           150,
		Background:    "off-white",
		Title:         "Generative Poster",
		Subtitle:      "Made with blobposter",
	}
}

// WithSeed returns a copy of c with the seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = &seed
	return c
}

// Seeded reports whether the render is reproducible.
func (c Config) Seeded() bool { return c.Seed != nil }

// PixelSize returns the raster size of the canvas.
func (c Config) PixelSize() (w, h int) {
	return int(math.Round(c.Width * c.DPI)), int(math.Round(c.Height * c.DPI))
}

// settings are the enum fields of a Config after parsing.
type settings struct {
	mode       palette.Mode
	source     palette.Source
	wobbleMode blob.WobbleMode
	background palette.Color
}

// Validate checks every field and returns a coded error for the first
// problem found.
func (c Config) Validate() error {
	_, err := c.resolve()
	return err
}

func (c Config) resolve() (settings, error) {
	var s settings
	var err error

	if s.mode, err = palette.ParseMode(c.Palette); err != nil {
		return s, perrors.Wrap(perrors.ErrCodeInvalidPalette, err, "palette")
	}
	if s.source, err = palette.ParseSource(c.PaletteSource); err != nil {
		return s, perrors.Wrap(perrors.ErrCodeInvalidPalette, err, "palette source")
	}
	if s.wobbleMode, err = blob.ParseWobbleMode(c.WobbleMode); err != nil {
		return s, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "wobble mode")
	}
	if s.background, err = palette.ParseBackground(c.Background); err != nil {
		return s, perrors.Wrap(perrors.ErrCodeInvalidBackground, err, "background")
	}

	checks := []error{
		perrors.ValidateIntRange("layers", c.Layers, 0, MaxLayers),
		perrors.ValidateIntRange("points", c.Points, MinPoints, MaxPoints),
		perrors.ValidateSpan("radius", c.RadiusMin, c.RadiusMax, 0, MaxRadius),
		perrors.ValidateSpan("wobble", c.WobbleMin, c.WobbleMax, 0, MaxWobble),
		perrors.ValidateSpan("alpha", c.AlphaMin, c.AlphaMax, 0, 1),
		perrors.ValidateIntRange("palette size", c.PaletteSize, 1, MaxPaletteSize),
		perrors.ValidateRange("base hue", c.BaseHue, 0, 1),
		perrors.ValidateLabel("title", c.Title),
		perrors.ValidateLabel("subtitle", c.Subtitle),
	}
	for _, err := range checks {
		if err != nil {
			return s, err
		}
	}
	if c.RadiusMin <= 0 {
		return s, perrors.New(perrors.ErrCodeInvalidRange, "radius min must be positive")
	}
	return s, c.validateCanvas()
}

func (c Config) validateCanvas() error {
	if math.IsNaN(c.Width) || c.Width <= 0 || c.Width > MaxInches {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "width must be within (0, %g] inches, got %g", MaxInches, c.Width)
	}
	if math.IsNaN(c.Height) || c.Height <= 0 || c.Height > MaxInches {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "height must be within (0, %g] inches, got %g", MaxInches, c.Height)
	}
	if math.IsNaN(c.DPI) || c.DPI < MinDPI || c.DPI > MaxDPI {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "dpi must be within [%g, %g], got %g", MinDPI, MaxDPI, c.DPI)
	}
	w, h := c.PixelSize()
	if w < 1 || h < 1 {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "canvas is smaller than one pixel")
	}
	if w*h > MaxPixels {
		return perrors.New(perrors.ErrCodeInvalidCanvas, "canvas %dx%d exceeds %d pixels", w, h, MaxPixels)
	}
	return nil
}
