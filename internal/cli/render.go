package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

// renderOpts holds the output flags for the render command. Poster
// parameters live in posterFlags.
type renderOpts struct {
	output     string // output file (single format), base path, or "-" for stdout
	formats    string // comma-separated output formats
	scale      float64
	embedFonts bool
	points     bool
	noCache    bool
	refresh    bool
	cache      string
}

// renderCommand creates the render command for composing and exporting posters.
func (c *CLI) renderCommand() *cobra.Command {
	pf := newPosterFlags()
	opts := renderOpts{formats: pipeline.FormatPNG, scale: 1}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a poster to SVG, PNG, PDF or JSON",
		Long: `Render composes a poster from the given parameters and writes one file per format.

Without --seed every run draws a new poster. With --seed the same
parameters always produce the same file, and results are cached.`,
		Example: `  blobposter render --seed 42 -f svg,png
  blobposter render --preset vivid --palette mono --hue 0.1 -o vivid.png
  blobposter render --config poster.toml --layers 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := posterConfig(ctx, cmd, pf)
			if err != nil {
				return err
			}
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			return c.runRender(ctx, pipeline.Options{
				Config:     cfg,
				Preset:     pf.preset,
				Formats:    formats,
				Scale:      opts.scale,
				EmbedFonts: opts.embedFonts,
				Points:     opts.points,
				Refresh:    opts.refresh,
			}, opts)
		},
	}

	pf.register(cmd.Flags())
	pf.registerCompletions(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout (default poster_<timestamp>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", opts.formats, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor relative to --dpi")
	cmd.Flags().BoolVar(&opts.embedFonts, "embed-fonts", false, "inline fonts in SVG output")
	cmd.Flags().BoolVar(&opts.points, "json-points", false, "include blob vertices in JSON output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "cache location: directory, redis:// URL, memory or off (default $BLOBPOSTER_CACHE or XDG cache dir)")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts renderOpts) error {
	if opts.output == "-" && len(popts.Formats) != 1 {
		return fmt.Errorf("--output - needs exactly one format, got %d", len(popts.Formats))
	}

	runner, err := c.newRunner(ctx, opts.cache, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinner(os.Stderr, "Drawing poster")
	restore := observability.SetPipelineHooks(observability.MultiPipeline(spin, observability.Pipeline()))
	spin.run(ctx)
	result, err := runner.Execute(ctx, popts)
	spin.Stop()
	restore()
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err := os.Stdout.Write(result.Artifacts[popts.Formats[0]])
		return err
	}

	paths := outputPaths(opts.output, popts.Formats, time.Now())
	for _, format := range popts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	c.Logger.Info("rendered", "files", len(paths),
		"compose", result.Stats.ComposeTime.Round(time.Millisecond),
		"render", result.Stats.RenderTime.Round(time.Millisecond))
	printSuccess("Poster ready")
	printStats(result.Stats, result.Config.Seed, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	if result.Config.Seed != nil {
		printNextStep("Reproduce", fmt.Sprintf("%s render --seed %d", appName, *result.Config.Seed))
	}
	return nil
}

// outputPaths maps each format to a file path. A single format with an
// explicit output path uses it as-is; otherwise the output (minus any known
// extension) is a base path and each format gets its own extension. An empty
// output yields poster_<timestamp>.
func outputPaths(output string, formats []string, now time.Time) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, now)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath strips a known format extension from output, or builds the
// default timestamped name.
func basePath(output string, now time.Time) string {
	if output == "" {
		return "poster_" + now.Format("20060102_150405")
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile creates parent directories and writes data to path.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return writeAndClose(f, data)
}

func writeAndClose(w io.WriteCloser, data []byte) error {
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
