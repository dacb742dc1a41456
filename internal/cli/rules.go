package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/rules"
)

type rulesFlags struct {
	tag        string
	ruleFormat string
	format     string
}

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Aliases     []string       `json:"aliases"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
	Defaults    map[string]any `json:"defaults,omitempty"`
}

func newRulesCommand(globals *globalOptions) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules a style can refer to",
		Long: `List every rule mdl knows about with its ID, alias, tags and
description. Rules marked with * accept parameters; use
'mdlstyle schema <rule>' to see them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.tag, "tag", "", "only list rules with this tag")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatCombined),
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, globals *globalOptions, flags *rulesFlags) error {
	reg := rules.DefaultRegistry

	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !ruleFormat.IsValid() {
		return usageErrorf("invalid rule format %q: must be name, id, or combined", flags.ruleFormat)
	}

	selected := reg.Rules()
	if flags.tag != "" {
		tag, ok := reg.ResolveTag(flags.tag)
		if !ok {
			return fmt.Errorf("%w: %s", rules.ErrUnknownTag, flags.tag)
		}
		filtered := selected[:0]
		for _, rule := range selected {
			if rule.HasTag(tag) {
				filtered = append(filtered, rule)
			}
		}
		selected = filtered
	}

	out := cmd.OutOrStdout()
	switch flags.format {
	case formatJSON:
		return outputRulesJSON(out, reg, selected, ruleFormat)
	case formatText:
		styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
		return outputRulesText(out, styles, selected, ruleFormat)
	default:
		return usageErrorf("invalid format %q: must be text or json", flags.format)
	}
}

func outputRulesText(out io.Writer, styles *pretty.Styles, list []rules.Rule, format config.RuleFormat) error {
	width := 0
	names := make([]string, len(list))
	for i, rule := range list {
		names[i] = format.Key(rule.ID, rule.Alias)
		if rule.HasParams() {
			names[i] += "*"
		}
		width = max(width, len(names[i]))
	}

	var builder strings.Builder
	for i, rule := range list {
		builder.WriteString(styles.RuleID.Render(names[i]))
		builder.WriteString(strings.Repeat(" ", width-len(names[i])+2))
		builder.WriteString(rule.Description)
		builder.WriteString(" " + styles.Tag.Render("["+strings.Join(rule.Tags, ", ")+"]"))
		builder.WriteString("\n")
	}

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func outputRulesJSON(out io.Writer, reg *rules.Registry, list []rules.Rule, format config.RuleFormat) error {
	infos := make([]ruleInfo, 0, len(list))
	for _, rule := range list {
		infos = append(infos, ruleInfo{
			ID:          rule.ID,
			Name:        format.Key(rule.ID, rule.Alias),
			Aliases:     reg.AliasesFor(rule.ID),
			Description: rule.Description,
			Tags:        rule.Tags,
			Defaults:    rule.Defaults,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
