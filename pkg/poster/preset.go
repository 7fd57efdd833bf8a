package poster

import (
	"strings"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
)

// Preset is a named bundle of layer count, wobble range and palette.
type Preset struct {
	Name        string
	Description string
	Layers      int
	WobbleMin   float64
	WobbleMax   float64
	Palette     string
}

// PresetCustom leaves the configuration untouched.
const PresetCustom = "custom"

// Presets lists the built-in styles in display order.
var Presets = []Preset{
	{Name: PresetCustom, Description: "Use the configured parameters as-is"},
	{Name: "minimal", Description: "A few calm pastel shapes", Layers: 5, WobbleMin: 0.02, WobbleMax: 0.10, Palette: "pastel"},
	{Name: "vivid", Description: "Dense, saturated and wavy", Layers: 20, WobbleMin: 0.20, WobbleMax: 0.80, Palette: "vivid"},
	{Name: "noisetouch", Description: "Noisy edges in random colours", Layers: 12, WobbleMin: 0.60, WobbleMax: 1.20, Palette: "random"},
}

// LookupPreset finds a preset by name, case-insensitively.
// The empty name resolves to the custom preset.
func LookupPreset(name string) (Preset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = PresetCustom
	}
	for _, p := range Presets {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, perrors.New(perrors.ErrCodeInvalidPreset, "unknown preset %q (must be one of: %s)", name, strings.Join(PresetNames(), ", "))
}

// PresetNames returns the preset names in display order.
func PresetNames() []string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = p.Name
	}
	return names
}

// Apply overrides the preset's fields on cfg.
func (p Preset) Apply(cfg *Config) {
	if p.Name == PresetCustom {
		return
	}
	cfg.Layers = p.Layers
	cfg.WobbleMin, cfg.WobbleMax = p.WobbleMin, p.WobbleMax
	cfg.Palette = p.Palette
}

// ApplyPreset looks up name and applies it to cfg.
func ApplyPreset(cfg *Config, name string) error {
	p, err := LookupPreset(name)
	if err != nil {
		return err
	}
	p.Apply(cfg)
	return nil
}
