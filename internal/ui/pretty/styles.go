// Package pretty renders rule sets, style findings and diffs for the
// terminal using Lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette shared by every colored style.
const (
	colorRed     = lipgloss.Color("9")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("11")
	colorBlue    = lipgloss.Color("12")
	colorMagenta = lipgloss.Color("13")
	colorCyan    = lipgloss.Color("14")
	colorGray    = lipgloss.Color("8")
	colorSilver  = lipgloss.Color("7")
)

// Styles holds one renderer per kind of output element.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Findings
	FilePath   lipgloss.Style
	Location   lipgloss.Style
	Field      lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style

	// Rule state in tables and listings
	RuleID     lipgloss.Style
	Alias      lipgloss.Style
	Enabled    lipgloss.Style
	Excluded   lipgloss.Style
	Configured lipgloss.Style
	Tag        lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// --diff output
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Help screens
	Command lipgloss.Style
	Heading lipgloss.Style
	Flag    lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns colored styles, or styles that render text unchanged
// when colorEnabled is false.
func NewStyles(colorEnabled bool) *Styles {
	plain := lipgloss.NewStyle()
	fg := func(color lipgloss.Color) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return plain.Foreground(color)
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return style.Bold(true)
	}
	italic := func(style lipgloss.Style) lipgloss.Style {
		if !colorEnabled {
			return plain
		}
		return style.Italic(true)
	}

	return &Styles{
		Error:   bold(fg(colorRed)),
		Warning: bold(fg(colorYellow)),
		Info:    bold(fg(colorBlue)),

		FilePath:   bold(plain),
		Location:   fg(colorGray),
		Field:      fg(colorCyan),
		Message:    plain,
		Suggestion: italic(fg(colorGreen)),

		RuleID:     bold(fg(colorCyan)),
		Alias:      fg(colorSilver),
		Enabled:    fg(colorGreen),
		Excluded:   fg(colorRed),
		Configured: fg(colorMagenta),
		Tag:        fg(colorGray),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader:    bold(fg(colorSilver)),
		TableSeparator: fg(colorGray),
		TableLegend:    italic(fg(colorGray)),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		Command: bold(fg(colorCyan)),
		Heading: bold(fg(colorYellow)),
		Flag:    fg(colorBlue),

		Dim:  fg(colorGray),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// for writer. Auto enables color only on a terminal and honours NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
