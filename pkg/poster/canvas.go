package poster

import (
	"math"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/palette"
)

// Canvas is a composed poster, ready for a sink to encode.
// Geometry is in unit-square coordinates with y pointing up.
type Canvas struct {
	Width      float64 // inches
	Height     float64 // inches
	DPI        float64
	Background palette.Color
	Ink        palette.Color // label colour
	Palette    palette.Palette
	Shapes     []Shape
	Labels     []Label
	Seed       *int64
}

// Shape is one filled blob.
type Shape struct {
	Points []blob.Point
	Center blob.Point
	Radius float64
	Wobble float64
	Fill   palette.Color
	Alpha  float64
}

// Label is a line of text anchored at its left baseline.
type Label struct {
	Text string
	X, Y float64 // unit-square position
	Size float64 // points
	Bold bool
}

// PixelSize returns the raster size of the canvas.
func (c *Canvas) PixelSize() (w, h int) {
	return int(math.Round(c.Width * c.DPI)), int(math.Round(c.Height * c.DPI))
}

// PointCount returns the total number of blob vertices.
func (c *Canvas) PointCount() int {
	n := 0
	for _, s := range c.Shapes {
		n += len(s.Points)
	}
	return n
}
