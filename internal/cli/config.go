package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/poster"
)

// defaultConfigFile is written by "config init" when no path is given.
const defaultConfigFile = "poster.toml"

// configCommand creates the config command for inspecting poster parameters.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create poster configuration files",
	}

	cmd.AddCommand(c.configShowCommand())
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configShowCommand prints the effective config after layering the
// --config file, preset and flags.
func (c *CLI) configShowCommand() *cobra.Command {
	pf := newPosterFlags()

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Example: `  blobposter config show --preset vivid
  blobposter config show --config poster.toml --layers 40`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := posterConfig(cmd.Context(), cmd, pf)
			if err != nil {
				return err
			}
			if err := poster.ApplyPreset(&cfg, pf.preset); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return encodeConfig(cmd.OutOrStdout(), cfg)
		},
	}

	pf.register(cmd.Flags())
	pf.registerCompletions(cmd)
	return cmd
}

// configInitCommand writes the default config to a file.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a TOML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := writeDefaultConfig(path, force); err != nil {
				return err
			}
			printSuccess("Wrote %s", path)
			printNextStep("Render it", "blobposter render --config "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func encodeConfig(w io.Writer, cfg poster.Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	var buf bytes.Buffer
	buf.WriteString("# blobposter configuration. Command-line flags override these values.\n")
	buf.WriteString("# Set seed = <integer> to make every render reproducible.\n\n")
	if err := encodeConfig(&buf, poster.DefaultConfig()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
