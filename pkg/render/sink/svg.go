package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/blobposter/pkg/fonts"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	embedFonts bool
}

// WithEmbeddedFonts inlines the Go fonts so the text renders identically
// without them installed. Adds roughly 200KB per weight.
func WithEmbeddedFonts() SVGOption { return func(r *svgRenderer) { r.embedFonts = true } }

// RenderSVG renders the canvas as a standalone SVG document.
// The viewBox is in pixels; width and height are physical inches.
func RenderSVG(c *poster.Canvas, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	w, h := c.PixelSize()
	fw, fh := float64(w), float64(h)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%sin" height="%sin">`+"\n",
		w, h, num(c.Width), num(c.Height))

	if r.embedFonts {
		renderFontFaces(&buf)
	}
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="%s"/>`+"\n", w, h, c.Background.Hex())

	for _, s := range c.Shapes {
		renderShape(&buf, s, fw, fh)
	}
	for _, l := range c.Labels {
		renderLabel(&buf, l, c, fw, fh)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFontFaces(buf *bytes.Buffer) {
	buf.WriteString("  <style>\n")
	for _, bold := range []bool{false, true} {
		weight := "normal"
		if bold {
			weight = "bold"
		}
		fmt.Fprintf(buf, "    @font-face { font-family: '%s'; font-weight: %s; src: url(data:font/ttf;base64,%s) format('truetype'); }\n",
			fonts.FontFamily, weight, fonts.TTFBase64(bold))
	}
	buf.WriteString("  </style>\n")
}

func renderShape(buf *bytes.Buffer, s poster.Shape, w, h float64) {
	if len(s.Points) == 0 {
		return
	}
	buf.WriteString(`  <path d="`)
	for i, p := range s.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(buf, "%s%s %s ", cmd, num(p.X*w), num((1-p.Y)*h))
	}
	fmt.Fprintf(buf, `Z" fill="%s" fill-opacity="%s"/>`+"\n", s.Fill.Hex(), num(s.Alpha))
}

func renderLabel(buf *bytes.Buffer, l poster.Label, c *poster.Canvas, w, h float64) {
	weight := ""
	if l.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `  <text x="%s" y="%s" font-family="%s" font-size="%s"%s fill="%s">%s</text>`+"\n",
		num(l.X*w), num((1-l.Y)*h), escapeXML(fonts.FallbackFontFamily), num(pointsToPixels(l.Size, c.DPI)),
		weight, c.Ink.Hex(), escapeXML(l.Text))
}

// pointsToPixels converts a font size in points to pixels at dpi.
func pointsToPixels(size, dpi float64) float64 {
	return size * dpi / 72
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
