package poster

import (
	"math/rand/v2"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/palette"
)

// Label placement in unit-square coordinates.
const (
	labelX       = 0.05
	titleY       = 0.95
	subtitleY    = 0.91
	titleSize    = 18.0
	subtitleSize = 11.0
)

// Compose validates cfg and draws a poster on the stream from NewRand(cfg.Seed).
func Compose(cfg Config) (*Canvas, error) {
	return ComposeWith(NewRand(cfg.Seed), cfg)
}

// ComposeWith validates cfg and draws a poster using rng for every random
// draw. Callers that need to control the stream directly (tests, previews
// that reroll) use this instead of Compose.
func ComposeWith(rng *rand.Rand, cfg Config) (*Canvas, error) {
	s, err := cfg.resolve()
	if err != nil {
		return nil, err
	}

	pal := palette.Generate(rng, cfg.PaletteSize, s.mode,
		palette.WithSource(s.source),
		palette.WithBaseHue(cfg.BaseHue))

	c := &Canvas{
		Width:      cfg.Width,
		Height:     cfg.Height,
		DPI:        cfg.DPI,
		Background: s.background,
		Ink:        palette.Contrast(s.background),
		Palette:    pal,
		Shapes:     make([]Shape, 0, cfg.Layers),
		Seed:       cfg.Seed,
	}

	for range cfg.Layers {
		center := blob.Point{X: rng.Float64(), Y: rng.Float64()}
		radius := uniform(rng, cfg.RadiusMin, cfg.RadiusMax)
		wobble := uniform(rng, cfg.WobbleMin, cfg.WobbleMax)
		pts := blob.Generate(rng, center, radius, cfg.Points, wobble, s.wobbleMode)
		fill := pal.Pick(rng)
		alpha := uniform(rng, cfg.AlphaMin, cfg.AlphaMax)

		c.Shapes = append(c.Shapes, Shape{
			Points: pts,
			Center: center,
			Radius: radius,
			Wobble: wobble,
			Fill:   fill,
			Alpha:  alpha,
		})
	}

	c.Labels = labels(cfg, s.mode)
	return c, nil
}

func labels(cfg Config, mode palette.Mode) []Label {
	title := cfg.Title
	if cfg.TagPalette {
		title += " • " + mode.String()
	}
	var out []Label
	if title != "" {
		out = append(out, Label{Text: title, X: labelX, Y: titleY, Size: titleSize, Bold: true})
	}
	if cfg.Subtitle != "" {
		out = append(out, Label{Text: cfg.Subtitle, X: labelX, Y: subtitleY, Size: subtitleSize})
	}
	return out
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
