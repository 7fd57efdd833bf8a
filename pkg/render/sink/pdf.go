package sink

import (
	"context"

	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render"
)

// RenderPDF renders the canvas as SVG with embedded fonts and converts it
// with rsvg-convert. It fails when the converter is not installed.
func RenderPDF(ctx context.Context, c *poster.Canvas) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(c, WithEmbeddedFonts()))
}
