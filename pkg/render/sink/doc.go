// Package sink encodes composed posters into output formats.
//
// # Overview
//
// A "sink" transforms a [poster.Canvas] into bytes. This package provides:
//
//   - SVG: Vector output, written directly
//   - PNG: Raster output, drawn with fogleman/gg
//   - PDF: Print output, converted from SVG (requires rsvg-convert)
//   - JSON: Scene export for external tools
//
// Canvases use unit-square coordinates with y pointing up. Every sink maps
// them onto a pixel grid of Width*DPI by Height*DPI with y pointing down, so
// a blob at (0.5, 0.9) lands near the top centre of the poster.
//
// # Determinism
//
// SVG, PNG and JSON output depend only on the canvas: encoding the same
// canvas twice yields identical bytes. PDF output embeds whatever metadata
// rsvg-convert writes and is not guaranteed to be byte-stable.
//
// # Usage
//
//	c, err := poster.Compose(cfg)
//	svg := sink.RenderSVG(c)
//	png, err := sink.RenderPNG(c, sink.WithScale(0.5))
//	pdf, err := sink.RenderPDF(ctx, c)
//	js, err := sink.RenderJSON(c)
//
// [poster.Canvas]: github.com/matzehuels/blobposter/pkg/poster.Canvas
package sink
