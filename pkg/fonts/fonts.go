// Package fonts provides the poster typefaces for raster and vector output.
//
// The fonts are the Go font family shipped with golang.org/x/image, so the
// binary carries them without external files. Raster sinks get parsed
// faces through [Face]; SVG sinks can inline the TTF data with
// [TTFBase64] so the poster looks the same on machines without the font.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family name used for inlined fonts.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for SVG viewers without the inlined font.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

// Parsed fonts are computed once on first access.
var (
	regularFont, boldFont       *truetype.Font
	regularErr, boldErr         error
	regularOnce, boldOnce       sync.Once
	regularB64, boldB64         string
	regularB64Once, boldB64Once sync.Once
)

// Parsed returns the parsed font for the requested weight.
func Parsed(bold bool) (*truetype.Font, error) {
	if bold {
		boldOnce.Do(func() { boldFont, boldErr = truetype.Parse(gobold.TTF) })
		return boldFont, boldErr
	}
	regularOnce.Do(func() { regularFont, regularErr = truetype.Parse(goregular.TTF) })
	return regularFont, regularErr
}

// Face returns a font face of size points at dpi.
func Face(bold bool, size, dpi float64) (font.Face, error) {
	f, err := Parsed(bold)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	}), nil
}

// TTFBase64 returns the TrueType data as a base64 string.
// The result is cached after first computation.
func TTFBase64(bold bool) string {
	if bold {
		boldB64Once.Do(func() { boldB64 = base64.StdEncoding.EncodeToString(gobold.TTF) })
		return boldB64
	}
	regularB64Once.Do(func() { regularB64 = base64.StdEncoding.EncodeToString(goregular.TTF) })
	return regularB64
}
