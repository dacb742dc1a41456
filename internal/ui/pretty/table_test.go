package pretty_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

func tableRuleSet(t *testing.T) *ruleset.RuleSet {
	t.Helper()

	s := style.New().
		Rule("MD013", style.Opt("line_length", 100), style.Opt("tables", false)).
		Rule("MD001").
		ExcludeRule("MD033")
	rs, err := ruleset.Evaluate(s, rules.DefaultRegistry)
	require.NoError(t, err)
	return rs
}

func TestRowsFromRuleSet(t *testing.T) {
	rs := tableRuleSet(t)

	rows := pretty.RowsFromRuleSet(rs, false)
	require.Len(t, rows, 2)
	assert.Equal(t, "MD001", rows[0].RuleID)
	assert.Equal(t, pretty.TableRow{
		RuleID:     "MD013",
		Alias:      "line-length",
		Enabled:    true,
		Configured: true,
		Tags:       "line_length",
		Params:     "line_length=100 tables=false",
	}, rows[1])

	assert.Len(t, pretty.RowsFromRuleSet(rs, true), 39)
	assert.Nil(t, pretty.RowsFromRuleSet(nil, true))
}

func TestFormatTable(t *testing.T) {
	styles := pretty.NewStyles(false)
	formatter := pretty.NewTableFormatter(styles, false, 120)

	rows := []pretty.TableRow{
		{RuleID: "MD033", Alias: "no-inline-html", Tags: "html"},
		{RuleID: "MD013", Alias: "line-length", Enabled: true, Configured: true, Tags: "line_length", Params: "line_length=100"},
	}

	output := formatter.FormatTable(rows)
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	require.Len(t, lines, 7)

	assert.Contains(t, lines[0], "RULE")
	assert.Contains(t, lines[0], "PARAMS")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
	assert.Contains(t, lines[2], "MD013*")
	assert.Contains(t, lines[2], "on")
	assert.Contains(t, lines[2], "line_length=100")
	assert.True(t, strings.HasPrefix(lines[3], "---"))
	assert.Contains(t, lines[4], "MD033")
	assert.Contains(t, lines[4], "off")
	assert.Contains(t, lines[6], "Legend: on = enabled | off = excluded | * = configured")

	assert.Empty(t, formatter.FormatTable(nil))
}

func TestFormatTable_TruncatesParams(t *testing.T) {
	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 60)

	output := formatter.FormatTable([]pretty.TableRow{{
		RuleID:  "MD013",
		Alias:   "line-length",
		Enabled: true,
		Tags:    "line_length",
		Params:  strings.Repeat("x", 80),
	}})

	assert.Contains(t, output, "...")
	assert.NotContains(t, output, strings.Repeat("x", 80))
}

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, 100, pretty.TerminalWidth(&buf))
}
