package palette

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultBaseHue is the monochrome hue (as a fraction of a turn) when none is
// configured. 0.60 is a mid blue.
const DefaultBaseHue = 0.60

// Color is an RGB triple with components in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// FromColorful converts a go-colorful colour, clamping it into gamut.
func FromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: c.R, G: c.G, B: c.B}
}

// Colorful returns the go-colorful view of c.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the colour as #rrggbb.
func (c Color) Hex() string {
	return c.Colorful().Clamped().Hex()
}

// NRGBA returns c with the given opacity as a non-premultiplied colour.
func (c Color) NRGBA(alpha float64) color.NRGBA {
	r, g, b := c.Colorful().Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Hue returns the HSV hue in degrees.
func (c Color) Hue() float64 {
	h, _, _ := c.Colorful().Hsv()
	return h
}

// Palette is an ordered set of colours.
type Palette []Color

// Pick returns a uniformly chosen entry, consuming one draw from rng.
// It panics on an empty palette.
func (p Palette) Pick(rng *rand.Rand) Color {
	return p[rng.IntN(len(p))]
}

// Hex returns every entry as #rrggbb.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}

// Mode is the palette flavour.
type Mode int

const (
	Pastel Mode = iota
	Vivid
	Monochrome
	Random
)

// Modes lists every mode in display order.
var Modes = []Mode{Pastel, Vivid, Monochrome, Random}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case Pastel:
		return "pastel"
	case Vivid:
		return "vivid"
	case Monochrome:
		return "mono"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode converts a mode name, case-insensitively. Both "mono" and
// "monochrome" select Monochrome.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pastel":
		return Pastel, nil
	case "vivid":
		return Vivid, nil
	case "mono", "monochrome":
		return Monochrome, nil
	case "random":
		return Random, nil
	default:
		return Pastel, fmt.Errorf("unknown palette %q (must be pastel, vivid, mono or random)", s)
	}
}

// Source decides where palette colours come from.
type Source int

const (
	// Sampled draws HSV triples per colour.
	Sampled Source = iota
	// Swatch uses fixed colour lists padded with random colours.
	Swatch
)

// String returns the configuration name of the source.
func (s Source) String() string {
	if s == Swatch {
		return "swatch"
	}
	return "sampled"
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Source) UnmarshalText(b []byte) error {
	v, err := ParseSource(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSource converts a source name. The empty string selects Sampled.
func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sampled", "hsv":
		return Sampled, nil
	case "swatch", "fixed":
		return Swatch, nil
	default:
		return Sampled, fmt.Errorf("unknown palette source %q (must be 'sampled' or 'swatch')", s)
	}
}

// Option configures Generate.
type Option func(*options)

type options struct {
	source  Source
	baseHue float64
}

// WithSource selects sampled or swatch colours.
func WithSource(s Source) Option { return func(o *options) { o.source = s } }

// WithBaseHue sets the monochrome hue as a fraction of a turn in [0,1].
// A full turn wraps to zero.
func WithBaseHue(h float64) Option {
	return func(o *options) { o.baseHue = math.Mod(clamp01(h), 1) }
}

// Generate returns exactly size colours for mode. A non-positive size yields
// an empty palette.
func Generate(rng *rand.Rand, size int, mode Mode, opts ...Option) Palette {
	o := options{source: Sampled, baseHue: DefaultBaseHue}
	for _, opt := range opts {
		opt(&o)
	}
	if size <= 0 {
		return Palette{}
	}
	if o.source == Swatch {
		return swatch(rng, size, mode, o.baseHue)
	}
	return sampled(rng, size, mode, o.baseHue)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}
