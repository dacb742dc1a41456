package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func TestNewStats(t *testing.T) {
	s := style.New().All().ExcludeRule("MD033").Rule("MD013", style.Opt("line_length", 100))
	rs, err := ruleset.Evaluate(s, rules.DefaultRegistry)
	require.NoError(t, err)

	stats := pretty.NewStats(rs, &configloader.ValidationResult{
		Warnings: []configloader.ValidationError{{Message: "w"}},
	})

	assert.Equal(t, pretty.Stats{
		Rules:      39,
		Enabled:    38,
		Excluded:   1,
		Configured: 1,
		Warnings:   1,
	}, stats)
	assert.Equal(t, pretty.Stats{}, pretty.NewStats(nil, nil))
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats pretty.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: pretty.Stats{Rules: 39, Enabled: 37},
			want:  "37 of 39 rules enabled, no issues\n",
		},
		{
			name:  "configured with findings",
			stats: pretty.Stats{Rules: 39, Enabled: 37, Configured: 2, Errors: 1, Warnings: 2},
			want:  "37 of 39 rules enabled, 2 configured, 1 error, 2 warnings\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSummary(".mdl_style.rb", pretty.Stats{Rules: 39, Enabled: 37, Excluded: 2, Configured: 2})
	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Style:             .mdl_style.rb")
	assert.Contains(t, result, "Enabled:         37")
	assert.Contains(t, result, "Excluded:        2")
	assert.Contains(t, result, "Style is valid\n")
	assert.NotContains(t, result, "Warnings:")

	result = styles.FormatSummary("", pretty.Stats{Warnings: 1})
	assert.NotContains(t, result, "Style:")
	assert.Contains(t, result, "Style is valid with warnings")

	result = styles.FormatSummary("", pretty.Stats{Errors: 2, Warnings: 1})
	assert.Contains(t, result, "Errors:            2")
	assert.Contains(t, result, "Style is invalid")
}
