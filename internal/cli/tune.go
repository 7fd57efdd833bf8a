package cli

import (
	"context"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/blobposter/pkg/errors"
	"github.com/matzehuels/blobposter/pkg/palette"
	"github.com/matzehuels/blobposter/pkg/pipeline"
	"github.com/matzehuels/blobposter/pkg/poster"
	"github.com/matzehuels/blobposter/pkg/render/sink"
)

// Tune styles
var (
	tuneSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tuneNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	tuneLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(14)
	tuneDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	tuneErrorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	tunePreviewStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCols is the preview width in terminal cells. Each cell shows two
// vertically stacked pixels.
const previewCols = 36

// tuneField is one adjustable row in the form.
type tuneField struct {
	label  string
	value  func(c *poster.Config) string
	adjust func(c *poster.Config, dir int)
}

func stepFloat(get func(*poster.Config) *float64, step float64) func(*poster.Config, int) {
	return func(c *poster.Config, dir int) {
		v := get(c)
		*v = math.Round((*v+float64(dir)*step)*1000) / 1000
	}
}

func stepInt(get func(*poster.Config) *int, step int) func(*poster.Config, int) {
	return func(c *poster.Config, dir int) {
		v := get(c)
		*v += dir * step
	}
}

func cycle(get func(*poster.Config) *string, options []string) func(*poster.Config, int) {
	return func(c *poster.Config, dir int) {
		v := get(c)
		i := slices.Index(options, *v)
		*v = options[(i+dir+len(options))%len(options)]
	}
}

func fmtFloat(get func(*poster.Config) *float64) func(*poster.Config) string {
	return func(c *poster.Config) string { return fmt.Sprintf("%.2f", *get(c)) }
}

func fmtInt(get func(*poster.Config) *int) func(*poster.Config) string {
	return func(c *poster.Config) string { return fmt.Sprint(*get(c)) }
}

func fmtString(get func(*poster.Config) *string) func(*poster.Config) string {
	return func(c *poster.Config) string { return *get(c) }
}

func floatField(label string, get func(*poster.Config) *float64, step float64) tuneField {
	return tuneField{label: label, value: fmtFloat(get), adjust: stepFloat(get, step)}
}

func intField(label string, get func(*poster.Config) *int, step int) tuneField {
	return tuneField{label: label, value: fmtInt(get), adjust: stepInt(get, step)}
}

func choiceField(label string, get func(*poster.Config) *string, options []string) tuneField {
	return tuneField{label: label, value: fmtString(get), adjust: cycle(get, options)}
}

func tuneFields() []tuneField {
	modes := make([]string, len(palette.Modes))
	for i, m := range palette.Modes {
		modes[i] = m.String()
	}
	backgrounds := append(slices.Clone(palette.BackgroundNames), "gray:0.5", "#1d3557")

	return []tuneField{
		intField("Layers", func(c *poster.Config) *int { return &c.Layers }, 1),
		floatField("Wobble min", func(c *poster.Config) *float64 { return &c.WobbleMin }, 0.05),
		floatField("Wobble max", func(c *poster.Config) *float64 { return &c.WobbleMax }, 0.05),
		choiceField("Wobble mode", func(c *poster.Config) *string { return &c.WobbleMode }, []string{"relative", "absolute"}),
		floatField("Radius min", func(c *poster.Config) *float64 { return &c.RadiusMin }, 0.02),
		floatField("Radius max", func(c *poster.Config) *float64 { return &c.RadiusMax }, 0.02),
		floatField("Alpha min", func(c *poster.Config) *float64 { return &c.AlphaMin }, 0.05),
		floatField("Alpha max", func(c *poster.Config) *float64 { return &c.AlphaMax }, 0.05),
		intField("Points", func(c *poster.Config) *int { return &c.Points }, 20),
		choiceField("Palette", func(c *poster.Config) *string { return &c.Palette }, modes),
		choiceField("Source", func(c *poster.Config) *string { return &c.PaletteSource }, []string{"sampled", "swatch"}),
		intField("Colours", func(c *poster.Config) *int { return &c.PaletteSize }, 1),
		floatField("Hue", func(c *poster.Config) *float64 { return &c.BaseHue }, 0.05),
		choiceField("Background", func(c *poster.Config) *string { return &c.Background }, backgrounds),
		{
			label:  "Tag palette",
			value:  func(c *poster.Config) string { return fmt.Sprint(c.TagPalette) },
			adjust: func(c *poster.Config, _ int) { c.TagPalette = !c.TagPalette },
		},
	}
}

// tuneModel is the bubbletea model for the interactive poster form.
type tuneModel struct {
	cfg     poster.Config
	fields  []tuneField
	cursor  int
	preset  int
	custom  poster.Config // parameters restored when cycling back to custom
	preview string
	status  string
	err     error
	export  bool
	quit    bool
	newSeed func() int64
}

// newTuneModel starts from cfg. The poster is always seeded so every
// state shown on screen can be exported exactly.
func newTuneModel(cfg poster.Config) tuneModel {
	m := tuneModel{
		cfg:     cfg,
		fields:  tuneFields(),
		newSeed: func() int64 { return rand.Int64N(1_000_000) },
	}
	if m.cfg.Seed == nil {
		m.cfg = m.cfg.WithSeed(m.newSeed())
	}
	m.refresh()
	return m
}

func (m tuneModel) Init() tea.Cmd {
	return nil
}

func (m tuneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.quit = true
		return m, tea.Quit
	case "enter", "e":
		m.export = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
	case "left", "h":
		m.adjust(-1)
	case "right", "l":
		m.adjust(1)
	case "r":
		m.cfg = m.cfg.WithSeed(m.newSeed())
		m.refresh()
	case "p":
		m.cyclePreset()
	}
	return m, nil
}

// adjust steps the selected field and keeps the change only if the
// resulting config is valid. An edited poster no longer matches a preset.
func (m *tuneModel) adjust(dir int) {
	next := m.cfg
	m.fields[m.cursor].adjust(&next, dir)
	if m.apply(next) {
		m.preset = 0
	}
}

func (m *tuneModel) apply(next poster.Config) bool {
	if err := next.Validate(); err != nil {
		m.status = perrors.UserMessage(err)
		return false
	}
	m.cfg = next
	m.refresh()
	return true
}

// cyclePreset moves to the next preset. Presets are applied to the
// parameters last edited under custom, which come back unchanged when the
// cycle returns to custom. The seed is kept throughout.
func (m *tuneModel) cyclePreset() {
	if m.preset == 0 {
		m.custom = m.cfg
	}
	idx := (m.preset + 1) % len(poster.Presets)
	next := m.custom.WithSeed(*m.cfg.Seed)
	poster.Presets[idx].Apply(&next)
	if m.apply(next) {
		m.preset = idx
		m.status = "preset " + poster.Presets[idx].Name
	}
}

// refresh recomposes the preview.
func (m *tuneModel) refresh() {
	c, err := poster.Compose(m.cfg)
	if err != nil {
		m.err = err
		return
	}
	img, err := sink.RenderImage(c, sink.WithScale(previewScale(c)))
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.preview = blockPreview(img, previewCols)
}

// previewScale keeps the raster close to the preview size so the
// downsample stays cheap.
func previewScale(c *poster.Canvas) float64 {
	w, _ := c.PixelSize()
	return math.Min(1, float64(previewCols*4)/float64(max(w, 1)))
}

// blockPreview resamples img to cols cells wide and draws it with upper
// half blocks: foreground is the top pixel, background the bottom one.
func blockPreview(img image.Image, cols int) string {
	b := img.Bounds()
	rows := max(1, int(math.Round(float64(cols)*float64(b.Dy())/float64(b.Dx())/2)))
	small := imaging.Resize(img, cols, rows*2, imaging.Box)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := hexAt(small, x, 2*y)
			bottom := hexAt(small, x, 2*y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexAt(img *image.NRGBA, x, y int) string {
	c := img.NRGBAAt(x, y)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (m tuneModel) View() string {
	var form strings.Builder
	form.WriteString(StyleTitle.Render("Tune Poster"))
	form.WriteString("\n")
	form.WriteString(tuneDimStyle.Render(fmt.Sprintf("seed %d · preset %s", *m.cfg.Seed, poster.Presets[m.preset].Name)))
	form.WriteString("\n\n")

	for i, f := range m.fields {
		cursor, style := "  ", tuneNormalStyle
		if i == m.cursor {
			cursor, style = "▸ ", tuneSelectedStyle
		}
		form.WriteString(cursor + tuneLabelStyle.Render(f.label) + style.Render(f.value(&m.cfg)) + "\n")
	}

	form.WriteString("\n")
	switch {
	case m.err != nil:
		form.WriteString(tuneErrorStyle.Render(m.err.Error()))
	case m.status != "":
		form.WriteString(StyleWarning.Render(m.status))
	}
	form.WriteString("\n")
	form.WriteString(tuneDimStyle.Render("↑/↓ field  ←/→ adjust  r reroll  p preset  ⏎ export  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, form.String(), "  ", tunePreviewStyle.Render(m.preview))
}

// tuneCommand creates the interactive tuning command.
func (c *CLI) tuneCommand() *cobra.Command {
	pf := newPosterFlags()
	opts := renderOpts{formats: pipeline.FormatPNG, scale: 1}

	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Adjust a poster interactively with a live terminal preview",
		Long: `Tune opens a form with every poster parameter and a live preview.
Press enter to export the poster on screen with the --format and --output flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := posterConfig(ctx, cmd, pf)
			if err != nil {
				return err
			}
			if pf.preset != "" {
				if err := poster.ApplyPreset(&cfg, pf.preset); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runTune(ctx, cfg, formats, opts)
		},
	}

	pf.register(cmd.Flags())
	pf.registerCompletions(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or base path for the export")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "export format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "cache location (see render --help)")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runTune(ctx context.Context, cfg poster.Config, formats []string, opts renderOpts) error {
	p := tea.NewProgram(newTuneModel(cfg), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tune: %w", err)
	}
	m := final.(tuneModel)
	if !m.export {
		printInfo("Nothing exported")
		return nil
	}
	return c.runRender(ctx, pipeline.Options{Config: m.cfg, Formats: formats, Scale: opts.scale}, opts)
}
