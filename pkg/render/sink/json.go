package sink

import (
	"encoding/json"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// JSONOption configures scene export.
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	points bool
}

// WithPoints includes every blob vertex in the export. Without it only the
// blob parameters are written.
func WithPoints() JSONOption { return func(r *jsonRenderer) { r.points = true } }

type sceneJSON struct {
	Width      float64     `json:"width_in"`
	Height     float64     `json:"height_in"`
	DPI        float64     `json:"dpi"`
	Pixels     [2]int      `json:"pixels"`
	Seed       *int64      `json:"seed,omitempty"`
	Background string      `json:"background"`
	Ink        string      `json:"ink"`
	Palette    []string    `json:"palette"`
	Shapes     []shapeJSON `json:"shapes"`
	Labels     []labelJSON `json:"labels,omitempty"`
}

type shapeJSON struct {
	Center blob.Point   `json:"center"`
	Radius float64      `json:"radius"`
	Wobble float64      `json:"wobble"`
	Fill   string       `json:"fill"`
	Alpha  float64      `json:"alpha"`
	Bounds [4]float64   `json:"bounds"`
	Points []blob.Point `json:"points,omitempty"`
}

type labelJSON struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size_pt"`
	Bold bool    `json:"bold,omitempty"`
}

// RenderJSON exports the composed scene as indented JSON.
func RenderJSON(c *poster.Canvas, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	w, h := c.PixelSize()
	out := sceneJSON{
		Width:      c.Width,
		Height:     c.Height,
		DPI:        c.DPI,
		Pixels:     [2]int{w, h},
		Seed:       c.Seed,
		Background: c.Background.Hex(),
		Ink:        c.Ink.Hex(),
		Palette:    c.Palette.Hex(),
		Shapes:     make([]shapeJSON, len(c.Shapes)),
	}
	for i, s := range c.Shapes {
		lo, hi := blob.Bounds(s.Points)
		sj := shapeJSON{
			Center: s.Center,
			Radius: s.Radius,
			Wobble: s.Wobble,
			Fill:   s.Fill.Hex(),
			Alpha:  s.Alpha,
			Bounds: [4]float64{lo.X, lo.Y, hi.X, hi.Y},
		}
		if r.points {
			sj.Points = s.Points
		}
		out.Shapes[i] = sj
	}
	for _, l := range c.Labels {
		out.Labels = append(out.Labels, labelJSON{Text: l.Text, X: l.X, Y: l.Y, Size: l.Size, Bold: l.Bold})
	}
	return json.MarshalIndent(out, "", "  ")
}
