// Package diff renders line-based unified diffs between an existing file
// and the content a command would write in its place.
package diff

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// NoNewlineMarker follows a line that ends its file without a newline.
const NoNewlineMarker = `\ No newline at end of file`

// Kind classifies a diff line.
type Kind int

const (
	Context Kind = iota
	Add
	Remove
)

// Line is one line of a hunk, without its prefix or line ending.
type Line struct {
	Kind    Kind
	Content string

	// MissingNewline is set on the last line of a side that does not end
	// in a newline.
	MissingNewline bool
}

// Hunk is a contiguous group of changes with surrounding context.
// Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Diff is the difference between two versions of a file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Compute compares before and after line by line. It returns nil when
// they are equal. A change to the trailing newline alone is a difference.
func Compute(path string, before, after []byte) (*Diff, error) {
	if string(before) == string(after) {
		return nil, nil
	}

	edits := udiff.Strings(string(before), string(after))
	unified, err := udiff.ToUnifiedDiff(path, path, string(before), edits, contextLines)
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}
	if len(unified.Hunks) == 0 {
		return nil, nil
	}

	result := &Diff{Path: path}
	for _, source := range unified.Hunks {
		hunk := Hunk{OldStart: source.FromLine, NewStart: source.ToLine}
		for _, sourceLine := range source.Lines {
			line := Line{
				Kind:           kindOf(sourceLine.Kind),
				Content:        strings.TrimSuffix(sourceLine.Content, "\n"),
				MissingNewline: !strings.HasSuffix(sourceLine.Content, "\n"),
			}
			switch line.Kind {
			case Add:
				hunk.NewCount++
				result.Additions++
			case Remove:
				hunk.OldCount++
				result.Deletions++
			case Context:
				hunk.OldCount++
				hunk.NewCount++
			}
			hunk.Lines = append(hunk.Lines, line)
		}
		// Unified format reports an empty side as starting one line earlier.
		if hunk.OldCount == 0 {
			hunk.OldStart--
		}
		if hunk.NewCount == 0 {
			hunk.NewStart--
		}
		result.Hunks = append(result.Hunks, hunk)
	}
	return result, nil
}

func kindOf(kind udiff.OpKind) Kind {
	switch kind {
	case udiff.Insert:
		return Add
	case udiff.Delete:
		return Remove
	default:
		return Context
	}
}

// String renders d in unified format. A nil diff renders as "".
func (d *Diff) String() string {
	if d == nil {
		return ""
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- %s\n+++ %s\n", d.Path, d.Path)
	for _, hunk := range d.Hunks {
		builder.WriteString(hunk.Header() + "\n")
		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.Prefix() + line.Content + "\n")
			if line.MissingNewline {
				builder.WriteString(NoNewlineMarker + "\n")
			}
		}
	}
	return builder.String()
}

// Header returns the hunk's "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Prefix returns the unified diff marker for the kind.
func (k Kind) Prefix() string {
	switch k {
	case Add:
		return "+"
	case Remove:
		return "-"
	default:
		return " "
	}
}
