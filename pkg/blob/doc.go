// Package blob generates wobbly closed outlines approximating perturbed circles.
//
// A blob is a polygon whose vertices sit at evenly spaced angles around a
// center. Each vertex radius is the base radius perturbed by a uniform random
// draw, so the outline looks like a hand-cut circle:
//
//	rng := rand.New(rand.NewPCG(42, 42^0xdeadbeef))
//	pts := blob.Generate(rng, blob.Point{X: 0.5, Y: 0.5}, 0.3, 200, 0.12, blob.Relative)
//
// # Wobble Modes
//
// [Relative] scales the perturbation by the radius: every vertex lies at
// radius*(1 + wobble*(u-0.5)) for u in [0,1). Vertices therefore stay within
// radius*(1 ± wobble/2) of the center.
//
// [Absolute] adds the perturbation directly: radius + wobble*(u-0.5), clamped
// at zero. Large absolute wobble on a small radius can collapse vertices onto
// the center.
//
// Coordinates are in unit-square space with y pointing up; the sinks in
// [github.com/matzehuels/blobposter/pkg/render/sink] map them to pixels.
package blob
