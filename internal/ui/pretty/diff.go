package pretty

import (
	"strings"

	"github.com/yaklabco/mdlstyle/internal/diff"
)

// FormatDiff renders d like diff.Diff.String, coloring each line by kind.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if d == nil {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render("--- "+d.Path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ "+d.Path) + "\n")
	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")
		for _, line := range hunk.Lines {
			style := s.DiffContext
			switch line.Kind {
			case diff.Add:
				style = s.DiffAdd
			case diff.Remove:
				style = s.DiffRemove
			case diff.Context:
			}
			builder.WriteString(style.Render(line.Kind.Prefix()+line.Content) + "\n")
			if line.MissingNewline {
				builder.WriteString(s.Dim.Render(diff.NoNewlineMarker) + "\n")
			}
		}
	}
	return builder.String()
}
