package server

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// param decodes one query parameter onto a config.
type param func(c *poster.Config, v string) error

func floatParam(dst func(*poster.Config) *float64) param {
	return func(c *poster.Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

func intParam(dst func(*poster.Config) *int) param {
	return func(c *poster.Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func stringParam(dst func(*poster.Config) *string) param {
	return func(c *poster.Config, v string) error {
		*dst(c) = v
		return nil
	}
}

// params uses the same names as the JSON and TOML config keys.
var params = map[string]param{
	"layers":         intParam(func(c *poster.Config) *int { return &c.Layers }),
	"wobble_min":     floatParam(func(c *poster.Config) *float64 { return &c.WobbleMin }),
	"wobble_max":     floatParam(func(c *poster.Config) *float64 { return &c.WobbleMax }),
	"wobble_mode":    stringParam(func(c *poster.Config) *string { return &c.WobbleMode }),
	"radius_min":     floatParam(func(c *poster.Config) *float64 { return &c.RadiusMin }),
	"radius_max":     floatParam(func(c *poster.Config) *float64 { return &c.RadiusMax }),
	"alpha_min":      floatParam(func(c *poster.Config) *float64 { return &c.AlphaMin }),
	"alpha_max":      floatParam(func(c *poster.Config) *float64 { return &c.AlphaMax }),
	"points":         intParam(func(c *poster.Config) *int { return &c.Points }),
	"palette":        stringParam(func(c *poster.Config) *string { return &c.Palette }),
	"palette_source": stringParam(func(c *poster.Config) *string { return &c.PaletteSource }),
	"palette_size":   intParam(func(c *poster.Config) *int { return &c.PaletteSize }),
	"base_hue":       floatParam(func(c *poster.Config) *float64 { return &c.BaseHue }),
	"width":          floatParam(func(c *poster.Config) *float64 { return &c.Width }),
	"height":         floatParam(func(c *poster.Config) *float64 { return &c.Height }),
	"dpi":            floatParam(func(c *poster.Config) *float64 { return &c.DPI }),
	"background":     stringParam(func(c *poster.Config) *string { return &c.Background }),
	"title":          stringParam(func(c *poster.Config) *string { return &c.Title }),
	"subtitle":       stringParam(func(c *poster.Config) *string { return &c.Subtitle }),
	"tag_palette": func(c *poster.Config, v string) error {
		// HTML checkboxes submit "on".
		b := v == "on"
		if !b {
			var err error
			if b, err = strconv.ParseBool(v); err != nil {
				return err
			}
		}
		c.TagPalette = b
		return nil
	},
}

// posterQuery is a decoded request.
type posterQuery struct {
	config  poster.Config
	preset  string
	warning string // set when the seed was ignored
}

// parseQuery decodes query parameters on top of the default config.
// Unknown parameters are ignored; malformed values are INVALID_INPUT.
// A non-integer seed is not an error: it is dropped and reported in warning.
func parseQuery(q url.Values) (posterQuery, error) {
	out := posterQuery{config: poster.DefaultConfig(), preset: q.Get("preset")}

	for name, set := range params {
		if !q.Has(name) {
			continue
		}
		v := q.Get(name)
		if err := set(&out.config, strings.TrimSpace(v)); err != nil {
			return out, perrors.New(perrors.ErrCodeInvalidInput, "parameter %s: invalid value %q", name, v)
		}
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := poster.ParseSeed(raw)
		if err != nil {
			out.warning = fmt.Sprintf("seed %q is not an integer; poster is unseeded", raw)
		}
		out.config.Seed = seed
	}
	return out, nil
}
