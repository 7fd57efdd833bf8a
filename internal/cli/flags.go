package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/poster"
)

// posterFlags binds every poster.Config field to a flag. Flags write
// straight into cfg; a --config file is layered underneath them by resolve.
type posterFlags struct {
	cfg        poster.Config
	seed       string
	configFile string
	preset     string
}

func newPosterFlags() *posterFlags {
	return &posterFlags{cfg: poster.DefaultConfig()}
}

// register adds the poster flags to fs.
func (f *posterFlags) register(fs *pflag.FlagSet) {
	c := &f.cfg
	fs.StringVar(&f.configFile, "config", "", "TOML configuration file (flags override it)")
	fs.StringVarP(&f.preset, "preset", "p", "", "preset: custom, minimal, vivid, noisetouch (overrides flags)")
	fs.StringVarP(&f.seed, "seed", "s", "", "random seed (integer); empty for a new poster every run")

	fs.IntVarP(&c.Layers, "layers", "n", c.Layers, "number of blobs")
	fs.Float64Var(&c.WobbleMin, "wobble-min", c.WobbleMin, "minimum wobble")
	fs.Float64Var(&c.WobbleMax, "wobble-max", c.WobbleMax, "maximum wobble")
	fs.StringVar(&c.WobbleMode, "wobble-mode", c.WobbleMode, "wobble mode: relative (fraction of radius), absolute")
	fs.Float64Var(&c.RadiusMin, "radius-min", c.RadiusMin, "minimum blob radius (canvas fraction)")
	fs.Float64Var(&c.RadiusMax, "radius-max", c.RadiusMax, "maximum blob radius (canvas fraction)")
	fs.Float64Var(&c.AlphaMin, "alpha-min", c.AlphaMin, "minimum fill opacity")
	fs.Float64Var(&c.AlphaMax, "alpha-max", c.AlphaMax, "maximum fill opacity")
	fs.IntVar(&c.Points, "points", c.Points, "vertices per blob")

	fs.StringVar(&c.Palette, "palette", c.Palette, "palette: pastel, vivid, mono, random")
	fs.StringVar(&c.PaletteSource, "palette-source", c.PaletteSource, "palette source: sampled (HSV), swatch (fixed colours)")
	fs.IntVar(&c.PaletteSize, "palette-size", c.PaletteSize, "number of palette colours")
	fs.Float64Var(&c.BaseHue, "hue", c.BaseHue, "base hue for mono palettes (0-1)")

	fs.Float64Var(&c.Width, "width", c.Width, "poster width in inches")
	fs.Float64Var(&c.Height, "height", c.Height, "poster height in inches")
	fs.Float64Var(&c.DPI, "dpi", c.DPI, "raster resolution")
	fs.StringVar(&c.Background, "background", c.Background, "background: off-white, white, black, gray:<0-1>, #rrggbb")
	fs.StringVar(&c.Title, "title", c.Title, "poster title (empty to omit)")
	fs.StringVar(&c.Subtitle, "subtitle", c.Subtitle, "poster subtitle (empty to omit)")
	fs.BoolVar(&c.TagPalette, "tag-palette", c.TagPalette, "append the palette mode to the title")
}

// registerCompletions offers the accepted values of the enum flags to shell
// completion. cmd must own the flags added by register.
func (f *posterFlags) registerCompletions(cmd *cobra.Command) {
	modes := make([]string, len(palette.Modes))
	for i, m := range palette.Modes {
		modes[i] = m.String()
	}
	choices := map[string][]string{
		"preset":         poster.PresetNames(),
		"palette":        modes,
		"palette-source": {"sampled", "swatch"},
		"wobble-mode":    {"relative", "absolute"},
		"background":     palette.BackgroundNames,
	}
	for name, values := range choices {
		_ = cmd.RegisterFlagCompletionFunc(name, cobra.FixedCompletions(values, cobra.ShellCompDirectiveNoFileComp))
	}
}

// resolve builds the effective config: defaults, then the --config file,
// then explicitly set flags. An invalid seed is passed to warn and the
// poster is drawn unseeded.
func (f *posterFlags) resolve(fs *pflag.FlagSet, warn func(string)) (poster.Config, error) {
	if f.configFile != "" {
		if err := f.layerFile(fs); err != nil {
			return poster.Config{}, err
		}
	}

	cfg := f.cfg
	if fs.Changed("seed") {
		seed, err := poster.ParseSeed(f.seed)
		if err != nil {
			warn(fmt.Sprintf("Ignoring seed %q: not an integer, drawing an unseeded poster", f.seed))
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// posterConfig resolves the poster flags of cmd, reporting an ignored seed
// to both the log and the terminal.
func posterConfig(ctx context.Context, cmd *cobra.Command, f *posterFlags) (poster.Config, error) {
	return f.resolve(cmd.Flags(), func(msg string) {
		loggerFromContext(ctx).Warn(msg)
		printWarning("%s", msg)
	})
}

// layerFile decodes the config file underneath the flags: changed flag
// values are captured, the file replaces cfg and the captured values are
// set again.
func (f *posterFlags) layerFile(fs *pflag.FlagSet) error {
	changed := map[string]string{}
	fs.Visit(func(fl *pflag.Flag) { changed[fl.Name] = fl.Value.String() })

	cfg, err := loadConfigFile(f.configFile)
	if err != nil {
		return err
	}
	f.cfg = cfg

	for name, v := range changed {
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("reapply --%s: %w", name, err)
		}
	}
	return nil
}

// loadConfigFile decodes a TOML file on top of the default config.
// Unknown keys are rejected so typos do not pass silently.
func loadConfigFile(path string) (poster.Config, error) {
	cfg := poster.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, perrors.New(perrors.ErrCodeInvalidInput, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}
