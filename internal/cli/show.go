package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type showFlags struct {
	format     string
	all        bool
	ruleFormat string
}

// showDocument is the json and yaml form of a resolved rule set.
type showDocument struct {
	Source         string      `json:"source" yaml:"source"`
	SourceKind     string      `json:"source_kind" yaml:"source_kind"`
	DefaultEnabled bool        `json:"default_enabled" yaml:"default_enabled"`
	Filter         *showFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	Rules          []showRule  `json:"rules" yaml:"rules"`
}

type showFilter struct {
	Rules []string `json:"rules,omitempty" yaml:"rules,omitempty"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

type showRule struct {
	ID      string         `json:"id" yaml:"id"`
	Rule    string         `json:"rule" yaml:"rule"`
	Enabled bool           `json:"enabled" yaml:"enabled"`
	Tags    []string       `json:"tags" yaml:"tags,flow"`
	Params  map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

func newShowCommand(globals *globalOptions) *cobra.Command {
	flags := &showFlags{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved rule set",
		Long: `Resolve the style for the current directory and show which rules are
enabled and how they are configured.

The style is taken from --style, MDLSTYLE_STYLE, the style named in .mdlrc,
the nearest .mdl_style.rb, or the embedded default, in that order.

Examples:
  mdlstyle show                       Table of enabled rules
  mdlstyle show --all                 Include excluded rules
  mdlstyle show --format json         Machine-readable output
  mdlstyle show --tags headers        Only rules tagged headers`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShow(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatTable, "output format: table, json, yaml")
	cmd.Flags().BoolVarP(&flags.all, "all", "a", false, "include excluded rules")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatName),
		"rule identifier format in json and yaml: name, id, or combined")

	return cmd
}

func runShow(cmd *cobra.Command, globals *globalOptions, flags *showFlags) error {
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !ruleFormat.IsValid() {
		return usageErrorf("invalid rule format %q: must be name, id, or combined", flags.ruleFormat)
	}

	result, err := globals.load(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case formatTable:
		return writeShowTable(out, globals.color, result, flags.all)
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newShowDocument(result, flags.all, ruleFormat)); err != nil {
			return fmt.Errorf("encode rule set: %w", err)
		}
		return nil
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(config.YAMLIndent())
		if err := enc.Encode(newShowDocument(result, flags.all, ruleFormat)); err != nil {
			return fmt.Errorf("encode rule set: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("close encoder: %w", err)
		}
		return nil
	default:
		return usageErrorf("invalid format %q: must be table, json, or yaml", flags.format)
	}
}

func writeShowTable(out io.Writer, colorMode string, result *configloader.LoadResult, all bool) error {
	colorEnabled := pretty.IsColorEnabled(colorMode, out)
	styles := pretty.NewStyles(colorEnabled)
	table := pretty.NewTableFormatter(styles, colorEnabled, pretty.TerminalWidth(out))

	header := styles.Bold.Render("Style: ") + styles.FilePath.Render(result.Source) +
		styles.Dim.Render(" ("+result.SourceKind.String()+")")
	if _, err := fmt.Fprintln(out, header); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	body := table.FormatTable(pretty.RowsFromRuleSet(result.RuleSet, all))
	summary := styles.FormatSummaryOneLine(pretty.NewStats(result.RuleSet, nil))
	if _, err := io.WriteString(out, body+summary); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func newShowDocument(result *configloader.LoadResult, all bool, format config.RuleFormat) showDocument {
	doc := showDocument{
		Source:         result.Source,
		SourceKind:     result.SourceKind.String(),
		DefaultEnabled: result.RuleSet.DefaultEnabled,
		Rules:          showRules(result.RuleSet, all, format),
	}
	if !result.Filter.IsEmpty() {
		doc.Filter = &showFilter{Rules: result.Filter.Rules, Tags: result.Filter.Tags}
	}
	return doc
}

func showRules(rs *ruleset.RuleSet, all bool, format config.RuleFormat) []showRule {
	rulesOut := make([]showRule, 0)
	for _, entry := range rs.Entries() {
		if !entry.Enabled && !all {
			continue
		}
		rulesOut = append(rulesOut, showRule{
			ID:      entry.Rule.ID,
			Rule:    format.Key(entry.Rule.ID, entry.Rule.Alias),
			Enabled: entry.Enabled,
			Tags:    entry.Rule.Tags,
			Params:  style.PlainMap(entry.Params),
		})
	}
	return rulesOut
}
