package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/internal/server"
	"github.com/matzehuels/blobposter/pkg/cache"
)

type serveOpts struct {
	addr    string
	cache   string
	exports string
	prefix  string
	noCache bool
}

// serveCommand creates the serve command for the web form and API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", exports: "memory"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the poster form and HTTP API",
		Long: `Serve starts an HTTP server with a form for tuning and downloading posters,
a PNG preview endpoint and a JSON API.

Seeded renders are cached in --cache. Exports created with POST /api/posters
are kept for 15 minutes in --exports; point both at the same redis:// URL when
running several replicas. Deployments sharing one Redis database keep their
keys apart with --cache-prefix.`,
		Example: `  blobposter serve
  blobposter serve --addr 127.0.0.1:9000 --cache redis://localhost:6379/0 --exports redis://localhost:6379/1
  blobposter serve --cache redis://localhost:6379/0 --exports redis://localhost:6379/0 --cache-prefix staging:`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cache, "cache", "", "render cache: directory, redis:// URL, memory or off (default $BLOBPOSTER_CACHE or XDG cache dir)")
	cmd.Flags().StringVar(&opts.exports, "exports", opts.exports, "export store: memory or redis:// URL")
	cmd.Flags().StringVar(&opts.prefix, "cache-prefix", "", "prefix for render cache and export keys")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, opts.cache, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Keyer = serveKeyer(opts.prefix)

	exports, err := c.newCache(ctx, opts.exports, false)
	if err != nil {
		return err
	}
	defer exports.Close()

	printSuccess("Serving posters")
	printKeyValue("Form", StyleLink.Render(serverURL(opts.addr)))
	printKeyValue("Exports", opts.exports)
	printNewline()
	printDetail("Press Ctrl+C to stop")
	return server.New(runner, exports, c.Logger).ListenAndServe(ctx, opts.addr)
}

// serveKeyer scopes cache and export keys under prefix, if any.
func serveKeyer(prefix string) cache.Keyer {
	if prefix == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), prefix)
}

// serverURL turns a listen address into a browsable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/"
}
