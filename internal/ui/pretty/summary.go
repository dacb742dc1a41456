package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
)

const summaryDividerWidth = 40

// Stats counts the state of a rule set and its validation findings.
type Stats struct {
	Rules      int
	Enabled    int
	Excluded   int
	Configured int
	Errors     int
	Warnings   int
}

// NewStats collects statistics from a rule set and an optional validation result.
func NewStats(rs *ruleset.RuleSet, result *configloader.ValidationResult) Stats {
	var stats Stats
	if rs != nil {
		stats.Rules = len(rs.Entries())
		stats.Enabled = len(rs.EnabledIDs())
		stats.Excluded = len(rs.Excluded())
		stats.Configured = len(rs.Configured())
	}
	if result != nil {
		stats.Errors = len(result.Errors)
		stats.Warnings = len(result.Warnings)
	}
	return stats
}

// FormatSummaryOneLine formats statistics as a single line.
// Example: "37 of 39 rules enabled, 2 configured, 1 warning".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	parts := []string{
		fmt.Sprintf("%s of %d rules enabled", s.Enabled.Render(strconv.Itoa(stats.Enabled)), stats.Rules),
	}
	if stats.Configured > 0 {
		parts = append(parts, s.Configured.Render(fmt.Sprintf("%d configured", stats.Configured)))
	}
	if stats.Errors > 0 {
		parts = append(parts, s.Error.Render(plural(stats.Errors, "error")))
	}
	if stats.Warnings > 0 {
		parts = append(parts, s.Warning.Render(plural(stats.Warnings, "warning")))
	}
	if stats.Errors == 0 && stats.Warnings == 0 {
		parts = append(parts, s.Success.Render("no issues"))
	}
	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats statistics as a summary block.
func (s *Styles) FormatSummary(source string, stats Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if source != "" {
		builder.WriteString("  Style:             " + s.FilePath.Render(source) + "\n")
	}
	builder.WriteString("  Rules:             " + s.SummaryValue.Render(strconv.Itoa(stats.Rules)) + "\n")
	builder.WriteString("    Enabled:         " + s.Enabled.Render(strconv.Itoa(stats.Enabled)) + "\n")
	builder.WriteString("    Excluded:        " + s.Excluded.Render(strconv.Itoa(stats.Excluded)) + "\n")
	builder.WriteString("    Configured:      " + s.Configured.Render(strconv.Itoa(stats.Configured)) + "\n")

	if stats.Errors > 0 || stats.Warnings > 0 {
		builder.WriteString("\n")
		if stats.Errors > 0 {
			builder.WriteString("  Errors:            " + s.Error.Render(strconv.Itoa(stats.Errors)) + "\n")
		}
		if stats.Warnings > 0 {
			builder.WriteString("  Warnings:          " + s.Warning.Render(strconv.Itoa(stats.Warnings)) + "\n")
		}
	}

	builder.WriteString("\n")
	switch {
	case stats.Errors > 0:
		builder.WriteString(s.Failure.Render("Style is invalid"))
	case stats.Warnings > 0:
		builder.WriteString(s.Warning.Render("Style is valid with warnings"))
	default:
		builder.WriteString(s.Success.Render("Style is valid"))
	}
	builder.WriteString("\n")

	return builder.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
