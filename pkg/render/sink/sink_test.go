package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/blobposter/pkg/blob"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/poster"
)

func testCanvas(t *testing.T, seed int64) *poster.Canvas {
	t.Helper()
	cfg := poster.DefaultConfig().WithSeed(seed)
	cfg.Width, cfg.Height, cfg.DPI = 2, 3, 40
	cfg.Points = 40
	c, err := poster.Compose(cfg)
	if err != nil {
		t.Fatalf("Compose() error: %v", err)
	}
	return c
}

func square() *poster.Canvas {
	return &poster.Canvas{
		Width:      1,
		Height:     1,
		DPI:        100,
		Background: palette.Color{R: 1, G: 1, B: 1},
		Ink:        palette.Color{},
		Palette:    palette.Palette{{R: 1}},
		Shapes: []poster.Shape{{
			Points: []blob.Point{{X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.75}, {X: 0.75, Y: 0.25}, {X: 0.25, Y: 0.25}},
			Center: blob.Point{X: 0.5, Y: 0.5},
			Radius: 0.25,
			Fill:   palette.Color{R: 1},
			Alpha:  0.5,
		}},
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testCanvas(t, 7))
	b := RenderSVG(testCanvas(t, 7))
	if !bytes.Equal(a, b) {
		t.Error("same seed produced different SVG")
	}
	c := RenderSVG(testCanvas(t, 8))
	if bytes.Equal(a, c) {
		t.Error("different seeds produced identical SVG")
	}
}

func TestRenderSVGStructure(t *testing.T) {
	c := testCanvas(t, 1)
	svg := string(RenderSVG(c))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 80 120" width="2in" height="3in">`) {
		t.Errorf("unexpected header: %.120s", svg)
	}
	if got := strings.Count(svg, "<path "); got != len(c.Shapes) {
		t.Errorf("path count = %d, want %d", got, len(c.Shapes))
	}
	if got := strings.Count(svg, "<text "); got != 2 {
		t.Errorf("text count = %d, want 2", got)
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("fonts embedded without WithEmbeddedFonts")
	}
}

func TestRenderSVGFlipsY(t *testing.T) {
	svg := string(RenderSVG(square()))
	// (0.25, 0.75) in unit space is (25, 25) on a 100px canvas.
	if !strings.Contains(svg, `d="M25 25 L75 25 L75 75 L25 75 Z"`) {
		t.Errorf("path not flipped: %s", svg)
	}
	if !strings.Contains(svg, `fill="#ff0000" fill-opacity="0.5"`) {
		t.Errorf("missing fill attributes: %s", svg)
	}
}

func TestRenderSVGZeroLayers(t *testing.T) {
	c := square()
	c.Shapes = nil
	c.Labels = []poster.Label{{Text: "A & B", X: 0.05, Y: 0.95, Size: 18, Bold: true}}
	svg := string(RenderSVG(c))

	if strings.Contains(svg, "<path") {
		t.Error("zero-layer canvas rendered a path")
	}
	if !strings.Contains(svg, `<rect width="100" height="100" fill="#ffffff"/>`) {
		t.Errorf("missing background rect: %s", svg)
	}
	if !strings.Contains(svg, "A &amp; B") {
		t.Error("label text not escaped")
	}
	if !strings.Contains(svg, `font-size="25"`) {
		t.Errorf("18pt at 100dpi should be 25px: %s", svg)
	}
}

func TestRenderSVGEmbeddedFonts(t *testing.T) {
	svg := string(RenderSVG(square(), WithEmbeddedFonts()))
	if strings.Count(svg, "@font-face") != 2 {
		t.Error("expected regular and bold @font-face rules")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{100, "100"},
		{1.5, "1.5"},
		{1.256, "1.26"},
		{-0.001, "0"},
		{-2.25, "-2.25"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderPNG(t *testing.T) {
	c := testCanvas(t, 3)
	data, err := RenderPNG(c)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 120 {
		t.Errorf("size = %dx%d, want 80x120", b.Dx(), b.Dy())
	}

	again, err := RenderPNG(testCanvas(t, 3))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("same seed produced different PNG")
	}
}

func TestRenderImageScale(t *testing.T) {
	img, err := RenderImage(square(), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderImage() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("size = %dx%d, want 50x50", b.Dx(), b.Dy())
	}

	// Corner is background, centre is the half-transparent red square.
	r, g, b, _ := img.At(2, 2).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Errorf("corner = (%d,%d,%d), want white", r>>8, g>>8, b>>8)
	}
	r, g, _, _ = img.At(25, 25).RGBA()
	if r>>8 < 250 || g>>8 > 140 || g>>8 < 115 {
		t.Errorf("centre = (%d,%d), want light red", r>>8, g>>8)
	}

	if _, err := RenderImage(square(), WithScale(0)); err == nil {
		t.Error("expected error for zero scale")
	}
}

func TestRenderJSON(t *testing.T) {
	c := testCanvas(t, 11)
	data, err := RenderJSON(c)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out sceneJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Pixels != [2]int{80, 120} {
		t.Errorf("Pixels = %v, want [80 120]", out.Pixels)
	}
	if out.Seed == nil || *out.Seed != 11 {
		t.Errorf("Seed = %v, want 11", out.Seed)
	}
	if len(out.Shapes) != len(c.Shapes) {
		t.Fatalf("Shapes = %d, want %d", len(out.Shapes), len(c.Shapes))
	}
	if len(out.Palette) != len(c.Palette) {
		t.Errorf("Palette = %d, want %d", len(out.Palette), len(c.Palette))
	}
	for _, s := range out.Shapes {
		if s.Points != nil {
			t.Fatal("points exported without WithPoints")
		}
	}

	again, _ := RenderJSON(testCanvas(t, 11))
	if !bytes.Equal(data, again) {
		t.Error("same seed produced different JSON")
	}
}

func TestRenderJSONWithPoints(t *testing.T) {
	data, err := RenderJSON(square(), WithPoints())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out sceneJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	s := out.Shapes[0]
	if len(s.Points) != 4 {
		t.Errorf("Points = %d, want 4", len(s.Points))
	}
	if s.Bounds != [4]float64{0.25, 0.25, 0.75, 0.75} {
		t.Errorf("Bounds = %v", s.Bounds)
	}
	if s.Fill != "#ff0000" {
		t.Errorf("Fill = %q, want #ff0000", s.Fill)
	}
}
