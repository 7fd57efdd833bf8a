package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobposter/pkg/poster"
)

// presetsCommand lists the named presets.
func (c *CLI) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), presetsTable(poster.Presets))
			return nil
		},
	}
}

func presetsTable(presets []poster.Preset) string {
	rows := make([][]string, len(presets))
	for i, p := range presets {
		rows[i] = []string{p.Name, orDash(p.Layers), wobbleSpan(p), stringOrDash(p.Palette), p.Description}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(colorBlue).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Preset", "Layers", "Wobble", "Palette", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return nameStyle.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		String()
}

func wobbleSpan(p poster.Preset) string {
	if p.WobbleMin == 0 && p.WobbleMax == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f-%.2f", p.WobbleMin, p.WobbleMax)
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprint(n)
}

func stringOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
