package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/blobposter/pkg/fonts"
	"github.com/matzehuels/blobposter/pkg/poster"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// PNGOption configures raster rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the raster scale factor relative to the canvas DPI
// (default 1.0; 0.25 makes a quarter-size preview).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderImage rasterises the canvas.
func RenderImage(c *poster.Canvas, opts ...PNGOption) (image.Image, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) {
		return nil, fmt.Errorf("invalid raster scale %v", r.scale)
	}

	w := max(1, int(math.Round(c.Width*c.DPI*r.scale)))
	h := max(1, int(math.Round(c.Height*c.DPI*r.scale)))
	fw, fh := float64(w), float64(h)

	dc := gg.NewContext(w, h)
	dc.SetColor(c.Background.NRGBA(1))
	dc.Clear()

	for _, s := range c.Shapes {
		if len(s.Points) == 0 {
			continue
		}
		dc.NewSubPath()
		for _, p := range s.Points {
			dc.LineTo(p.X*fw, (1-p.Y)*fh)
		}
		dc.ClosePath()
		dc.SetColor(s.Fill.NRGBA(s.Alpha))
		dc.Fill()
	}

	dc.SetColor(c.Ink.NRGBA(1))
	for _, l := range c.Labels {
		face, err := fonts.Face(l.Bold, l.Size, c.DPI*r.scale)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		dc.SetFontFace(face)
		dc.DrawString(l.Text, l.X*fw, (1-l.Y)*fh)
	}

	return dc.Image(), nil
}

// RenderPNG rasterises the canvas and encodes it as PNG.
func RenderPNG(c *poster.Canvas, opts ...PNGOption) ([]byte, error) {
	img, err := RenderImage(c, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
