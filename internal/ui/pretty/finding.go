package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

// FormatFinding formats a single validation finding for terminal output.
func (s *Styles) FormatFinding(sev config.Severity, finding configloader.ValidationError) string {
	var builder strings.Builder

	builder.WriteString("  ")
	if loc := s.formatLocation(finding); loc != "" {
		builder.WriteString(loc + "  ")
	}
	builder.WriteString(s.FormatSeverity(sev) + "  ")
	if finding.Field != "" {
		builder.WriteString(s.Field.Render(finding.Field) + "  ")
	}

	message, suggestion, _ := strings.Cut(finding.Message, "; did you mean ")
	builder.WriteString(s.Message.Render(message))
	builder.WriteString("\n")

	if suggestion != "" {
		builder.WriteString("    " + s.Dim.Render("Did you mean:") + " " +
			s.Suggestion.Render(strings.TrimSuffix(suggestion, "?")) + "\n")
	}

	return builder.String()
}

// FormatFindings formats every error and warning in result, errors first.
func (s *Styles) FormatFindings(result *configloader.ValidationResult) string {
	if result == nil {
		return ""
	}
	var builder strings.Builder
	for _, finding := range result.Errors {
		builder.WriteString(s.FormatFinding(config.SeverityError, finding))
	}
	for _, finding := range result.Warnings {
		builder.WriteString(s.FormatFinding(config.SeverityWarning, finding))
	}
	return builder.String()
}

func (s *Styles) formatLocation(finding configloader.ValidationError) string {
	if finding.FilePath == "" {
		return ""
	}
	loc := s.FilePath.Render(finding.FilePath)
	if finding.Line > 0 {
		loc += s.Location.Render(fmt.Sprintf(":%d:%d", finding.Line, max(finding.Column, 1)))
	}
	return loc
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a style file header for grouped output.
func (s *Styles) FormatFileHeader(path string, findingCount int) string {
	header := s.FilePath.Render(path)
	switch findingCount {
	case 0:
	case 1:
		header += s.Dim.Render(" (1 finding)")
	default:
		header += s.Dim.Render(fmt.Sprintf(" (%d findings)", findingCount))
	}
	return header
}
