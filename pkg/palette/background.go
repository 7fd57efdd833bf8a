package palette

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Named backgrounds accepted by ParseBackground.
var Backgrounds = map[string]Color{
	"off-white": {0.98, 0.98, 0.97},
	"white":     {1, 1, 1},
	"black":     {0.05, 0.05, 0.05},
}

// BackgroundNames lists the named backgrounds in display order.
var BackgroundNames = []string{"off-white", "white", "black"}

// ParseBackground resolves a background spec:
//
//	off-white | white | black   named backgrounds
//	gray:0.98                   grey level in [0,1]
//	#1a2b3c                     hex colour
func ParseBackground(s string) (Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if c, ok := Backgrounds[spec]; ok {
		return c, nil
	}
	if level, ok := strings.CutPrefix(spec, "gray:"); ok {
		v, err := strconv.ParseFloat(level, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
			return Color{}, fmt.Errorf("invalid gray level %q (must be a number in [0,1])", level)
		}
		return Color{v, v, v}, nil
	}
	if strings.HasPrefix(spec, "#") {
		c, err := colorful.Hex(spec)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex background %q: %w", s, err)
		}
		return FromColorful(c), nil
	}
	return Color{}, fmt.Errorf("unknown background %q (use off-white, white, black, gray:<level> or #rrggbb)", s)
}

// Contrast returns black or white, whichever reads better on bg.
func Contrast(bg Color) Color {
	r, g, b := bg.Colorful().Clamped().LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.18 {
		return Color{0, 0, 0}
	}
	return Color{1, 1, 1}
}
