// Package palette samples colour palettes for poster blobs.
//
// A palette is an ordered list of RGB colours with components in [0,1]. Four
// modes are supported, each with its own generator:
//
//   - [Pastel]: low saturation, high value
//   - [Vivid]: high saturation and value
//   - [Monochrome]: one fixed hue, varying saturation and value
//   - [Random]: anything goes
//
// Two sources decide how a mode becomes colours. [Sampled] draws HSV
// triples from the random stream and converts them with go-colorful.
// [Swatch] starts from hand-picked colour lists and pads them with random
// colours when more are requested than the list holds.
//
//	rng := rand.New(rand.NewPCG(7, 7^0xdeadbeef))
//	p := palette.Generate(rng, 8, palette.Pastel)
//	c := p.Pick(rng)
//
// Generators take an explicit *rand.Rand; there is no package-level random
// state, so two renders never share a stream.
package palette
