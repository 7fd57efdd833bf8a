package palette

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

var pastelSwatch = Palette{
	{0.98, 0.74, 0.76}, // soft pink
	{0.69, 0.88, 0.90}, // pastel blue
	{0.77, 0.92, 0.80}, // mint
	{0.98, 0.91, 0.71}, // light yellow
	{0.86, 0.77, 0.90}, // lavender
	{0.99, 0.82, 0.64}, // peach
}

var vividSwatch = Palette{
	{1.0, 0.0, 0.0},
	{0.0, 0.7, 0.0},
	{0.0, 0.0, 1.0},
	{1.0, 0.5, 0.0},
	{0.8, 0.0, 0.8},
	{1.0, 1.0, 0.0},
}

func swatch(rng *rand.Rand, size int, mode Mode, baseHue float64) Palette {
	switch mode {
	case Pastel:
		return padded(rng, pastelSwatch, size)
	case Vivid:
		return padded(rng, vividSwatch, size)
	case Monochrome:
		return shades(size, baseHue)
	default:
		return randomRGB(rng, size)
	}
}

// padded takes the first size entries of base and tops up with random RGB.
// Random draws only happen for the padding.
func padded(rng *rand.Rand, base Palette, size int) Palette {
	if size <= len(base) {
		return append(Palette(nil), base[:size]...)
	}
	p := append(Palette(nil), base...)
	return append(p, randomRGB(rng, size-len(base))...)
}

func randomRGB(rng *rand.Rand, size int) Palette {
	p := make(Palette, size)
	for i := range p {
		p[i] = Color{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	}
	return p
}

// shades steps saturation down and value up across one hue. Saturation
// never drops to zero so the hue stays defined.
func shades(size int, hue float64) Palette {
	p := make(Palette, size)
	for i := range p {
		var t float64
		if size > 1 {
			t = float64(i) / float64(size-1)
		}
		s := 0.65 - 0.50*t
		v := 0.60 + 0.40*t
		p[i] = FromColorful(colorful.Hsv(hue*360, s, v))
	}
	return p
}
