package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/buildinfo"
	"github.com/matzehuels/blobposter/pkg/cache"
	"github.com/matzehuels/blobposter/pkg/observability"
	"github.com/matzehuels/blobposter/pkg/pipeline"
)

const (
	// appName is the application name used for directories and display.
	appName = "blobposter"

	// envCache overrides the default cache location.
	envCache = "BLOBPOSTER_CACHE"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. Debug level also reports callers.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.Logger.SetReportCaller(level <= log.DebugLevel)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Blobposter renders generative posters of wobbly blobs",
		Long:         `Blobposter composes posters from randomly placed, wobbly blob shapes filled from a generated colour palette, and exports them as SVG, PNG, PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.registerHooks()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.tuneCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// registerHooks routes pipeline, cache and HTTP events to the logger. They
// log at debug level, so they show up with --verbose.
func (c *CLI) registerHooks() {
	hooks := observability.NewLogHooks(c.Logger)
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
}

// newRunner creates a pipeline runner backed by the cache at location.
func (c *CLI) newRunner(ctx context.Context, location string, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, location, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache opens the cache backend. An empty location falls back to
// $BLOBPOSTER_CACHE, then to the XDG cache directory.
func (c *CLI) newCache(ctx context.Context, location string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if location == "" {
		location = os.Getenv(envCache)
	}
	if location == "" {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		location = dir
	}
	store, err := cache.Open(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	c.Logger.Debug("cache opened", "location", location)
	return store, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/blobposter/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
