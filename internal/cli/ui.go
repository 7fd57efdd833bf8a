package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/blobposter/pkg/pipeline"
)

// Terminal colours (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

// uiOut receives all user-facing output. Logs go to the logger instead.
var uiOut io.Writer = os.Stdout

func say(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(uiOut, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	say(styleIconSuccess, "✓", fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	say(styleIconWarning, "!", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	say(styleIconInfo, "›", fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists a written file.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

func printStats(stats pipeline.Stats, seed *int64, cached bool) {
	fmt.Fprintln(uiOut, statsLine(stats, seed, cached))
}

// statsLine summarises a render, e.g. "12 blobs · 2400 points · seed 42 · cached".
func statsLine(stats pipeline.Stats, seed *int64, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d blobs", stats.Shapes),
		fmt.Sprintf("%d points", stats.Points),
		"unseeded",
	}
	if seed != nil {
		parts[2] = fmt.Sprintf("seed %d", *seed)
	}
	sep := StyleDim.Render(" · ")

	status := styleFresh.Render("fresh")
	if cached {
		status = styleCached.Render("cached")
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · ")) + sep + status
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(uiOut)
}
