// Package poster composes generative posters from layered wobbly blobs.
//
// # Overview
//
// A poster is described by a flat [Config]: how many blob layers to draw,
// the ranges their radius, wobble and opacity are sampled from, which
// palette to fill them with, the canvas size and the title/subtitle text.
// [Compose] turns a Config into a [Canvas], a resolution-independent scene
// that the sinks in [github.com/matzehuels/blobposter/pkg/render/sink]
// encode as SVG, PNG, PDF or JSON.
//
// # Reproducibility
//
// Every random draw of a render comes from one *rand.Rand built by
// [NewRand]. With a seed the stream is a PCG seeded from it, so the same
// Config always yields the same Canvas; without a seed the stream is
// randomly seeded and every render differs.
//
// Seeds typed by users go through [ParseSeed]. A value that is not an
// integer is rejected with ErrCodeInvalidSeed; callers warn and render
// unseeded instead of failing.
//
// # Draw Order
//
// The palette is sampled first. Then, for each layer: centre x, centre y,
// radius, wobble, the blob vertices, the palette index and the opacity.
// Shapes are kept in draw order; later shapes paint over earlier ones.
//
// # Presets
//
// [Presets] bundle layer count, wobble range and palette for quick styles.
// [ApplyPreset] overrides only those fields, on top of whatever the config
// file or flags set.
package poster
