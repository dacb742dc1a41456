package pretty

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Table formatting constants.
const (
	stateEnabled     = "on"
	stateExcluded    = "off"
	configuredSymbol = "*"
	tablePadding     = 2
	tableColumnCount = 5 // RULE, ALIAS, STATE, TAGS, PARAMS
	stateColumnWidth = 4
	minRuleWidth     = 5
	minAliasWidth    = 12
	minTagsWidth     = 12
	minParamsWidth   = 20
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow represents a single rule in the rule table.
type TableRow struct {
	RuleID     string
	Alias      string
	Enabled    bool
	Configured bool
	Tags       string
	Params     string
}

// RowsFromRuleSet builds table rows from rs. Disabled rules are included
// only when all is true.
func RowsFromRuleSet(rs *ruleset.RuleSet, all bool) []TableRow {
	if rs == nil {
		return nil
	}
	var rows []TableRow
	for _, entry := range rs.Entries() {
		if !entry.Enabled && !all {
			continue
		}
		rows = append(rows, TableRow{
			RuleID:     entry.Rule.ID,
			Alias:      entry.Rule.Alias,
			Enabled:    entry.Enabled,
			Configured: entry.Configured(),
			Tags:       strings.Join(entry.Rule.Tags, ","),
			Params:     formatParams(entry.Params),
		})
	}
	return rows
}

func formatParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = key + "=" + style.FormatValue(params[key])
	}
	return strings.Join(parts, " ")
}

// TableFormatter formats rule rows as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// TerminalWidth returns the width of writer's terminal, or a default when
// writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

type columnWidths struct {
	rule   int
	alias  int
	tags   int
	params int
}

// FormatTable formats rows as a styled table. Enabled and excluded rules
// are grouped, with a light separator between the groups.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths) + "\n")
	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")

	var enabled, excluded []TableRow
	for _, row := range rows {
		if row.Enabled {
			enabled = append(enabled, row)
		} else {
			excluded = append(excluded, row)
		}
	}

	for _, row := range enabled {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}
	if len(enabled) > 0 && len(excluded) > 0 {
		builder.WriteString(t.formatSeparator(widths, lightSeparator) + "\n")
	}
	for _, row := range excluded {
		builder.WriteString(t.formatRow(row, widths) + "\n")
	}

	builder.WriteString(t.formatSeparator(widths, heavySeparator) + "\n")
	builder.WriteString(t.formatLegend() + "\n")

	return builder.String()
}

func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		rule:   minRuleWidth,
		alias:  minAliasWidth,
		tags:   minTagsWidth,
		params: minParamsWidth,
	}

	for _, row := range rows {
		widths.rule = max(widths.rule, len(row.RuleID)+len(configuredSymbol))
		widths.alias = max(widths.alias, len(row.Alias))
		widths.tags = max(widths.tags, len(row.Tags))
		widths.params = max(widths.params, len(row.Params))
	}

	// Shrink params first, then tags.
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.params = max(minParamsWidth, widths.params-excess)
	}
	if excess := t.totalWidth(widths) - t.termWidth; excess > 0 {
		widths.tags = max(minTagsWidth, widths.tags-excess)
	}

	return widths
}

func (t *TableFormatter) totalWidth(widths columnWidths) int {
	return widths.rule + widths.alias + stateColumnWidth + widths.tags + widths.params +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.rule, "RULE",
		widths.alias, "ALIAS",
		stateColumnWidth, "ON",
		widths.tags, "TAGS",
		widths.params, "PARAMS",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths, char string) string {
	return t.styles.TableSeparator.Render(strings.Repeat(char, t.totalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	ruleID := row.RuleID
	if row.Configured {
		ruleID += configuredSymbol
	}

	state, stateStyle := stateExcluded, t.styles.Excluded
	if row.Enabled {
		state, stateStyle = stateEnabled, t.styles.Enabled
	}

	// Pad before styling so ANSI sequences do not skew the columns.
	return " " + strings.Join([]string{
		t.styles.RuleID.Render(pad(ruleID, widths.rule)),
		t.styles.Alias.Render(pad(truncateString(row.Alias, widths.alias), widths.alias)),
		stateStyle.Render(pad(state, stateColumnWidth)),
		t.styles.Tag.Render(pad(truncateString(row.Tags, widths.tags), widths.tags)),
		t.paramsStyle(row).Render(truncateString(row.Params, widths.params)),
	}, "  ")
}

func (t *TableFormatter) paramsStyle(row TableRow) lipgloss.Style {
	if row.Configured {
		return t.styles.Configured
	}
	return lipgloss.NewStyle()
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(
			fmt.Sprintf(" Legend: %s = enabled | %s = excluded | %s = configured",
				stateEnabled, stateExcluded, configuredSymbol),
		)
	}

	return t.styles.TableLegend.Render(" Legend: ") +
		t.styles.Enabled.Render(stateEnabled) + t.styles.TableLegend.Render(" = enabled  ") +
		t.styles.Excluded.Render(stateExcluded) + t.styles.TableLegend.Render(" = excluded  ") +
		t.styles.Configured.Render(configuredSymbol) + t.styles.TableLegend.Render(" = configured")
}

func pad(str string, width int) string {
	if len(str) >= width {
		return str
	}
	return str + strings.Repeat(" ", width-len(str))
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
