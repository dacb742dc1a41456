package pretty_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/internal/diff"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
)

func TestNewStyles_NoColorIsIdentity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for name, style := range map[string]interface{ Render(...string) string }{
		"Error":       styles.Error,
		"Suggestion":  styles.Suggestion,
		"RuleID":      styles.RuleID,
		"TableLegend": styles.TableLegend,
		"DiffAdd":     styles.DiffAdd,
		"Heading":     styles.Heading,
		"Bold":        styles.Bold,
	} {
		assert.Equal(t, " MD013 line-length", style.Render(" MD013 line-length"), name)
	}
}

func TestNewStyles_ColorKeepsText(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	for name, rendered := range map[string]string{
		"Error":       styles.Error.Render("x"),
		"Warning":     styles.Warning.Render("x"),
		"Field":       styles.Field.Render("x"),
		"Configured":  styles.Configured.Render("x"),
		"Success":     styles.Success.Render("x"),
		"DiffHunk":    styles.DiffHunk.Render("x"),
		"DiffRemove":  styles.DiffRemove.Render("x"),
		"DiffContext": styles.DiffContext.Render("x"),
		"Command":     styles.Command.Render("x"),
		"Dim":         styles.Dim.Render("x"),
	} {
		assert.Contains(t, rendered, "x", name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		mode   string
		writer io.Writer
		want   bool
	}{
		{"always", &buf, true},
		{"never", os.Stdout, false},
		{"auto", &buf, false},
		{"", &buf, false},
		{"bogus", &buf, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, tt.writer), "mode %q", tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "explicit mode wins over NO_COLOR")
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	changes, err := diff.Compute(".mdl_style.rb",
		[]byte("all\nexclude_rule 'MD033'\n"),
		[]byte("all\nexclude_rule 'MD007'\nexclude_rule 'MD033'\n"))
	require.NoError(t, err)

	styles := pretty.NewStyles(false)
	assert.Equal(t, changes.String(), styles.FormatDiff(changes))
	assert.Empty(t, styles.FormatDiff(nil))

	colored := pretty.NewStyles(true).FormatDiff(changes)
	assert.Contains(t, colored, "+exclude_rule 'MD007'")
	assert.Contains(t, colored, "@@ -1,2 +1,3 @@")

	changes, err = diff.Compute("a.rb", []byte("all"), []byte("all\n"))
	require.NoError(t, err)
	assert.Equal(t, changes.String(), styles.FormatDiff(changes))
}
