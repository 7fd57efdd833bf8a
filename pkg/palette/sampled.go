package palette

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// hsvRange bounds a sampled HSV triple. Hue is a fraction of a turn.
type hsvRange struct {
	satLo, satHi float64
	valLo, valHi float64
}

var sampledRanges = map[Mode]hsvRange{
	Pastel:     {0.12, 0.28, 0.92, 1.00},
	Vivid:      {0.85, 1.00, 0.85, 1.00},
	Monochrome: {0.25, 0.65, 0.55, 1.00},
	Random:     {0.30, 1.00, 0.55, 1.00},
}

func sampled(rng *rand.Rand, size int, mode Mode, baseHue float64) Palette {
	switch mode {
	case Pastel:
		return sampleHSV(rng, size, sampledRanges[Pastel], randomHue)
	case Vivid:
		return sampleHSV(rng, size, sampledRanges[Vivid], randomHue)
	case Monochrome:
		return sampleHSV(rng, size, sampledRanges[Monochrome], fixedHue(baseHue))
	default:
		return sampleHSV(rng, size, sampledRanges[Random], randomHue)
	}
}

func randomHue(rng *rand.Rand) float64 { return rng.Float64() }

func fixedHue(h float64) func(*rand.Rand) float64 {
	return func(*rand.Rand) float64 { return h }
}

// sampleHSV draws hue, saturation and value in that order for each colour.
func sampleHSV(rng *rand.Rand, size int, r hsvRange, hue func(*rand.Rand) float64) Palette {
	p := make(Palette, size)
	for i := range p {
		h := hue(rng)
		s := uniform(rng, r.satLo, r.satHi)
		v := uniform(rng, r.valLo, r.valHi)
		p[i] = FromColorful(colorful.Hsv(h*360, s, v))
	}
	return p
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}
