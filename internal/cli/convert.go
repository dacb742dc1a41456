package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/config"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Conversion targets.
const (
	targetMdl          = "mdl"
	targetGomdlint     = "gomdlint"
	targetMarkdownlint = "markdownlint"
)

type convertFlags struct {
	to         string
	output     string
	force      bool
	diff       bool
	ruleFormat string
}

func newConvertCommand(globals *globalOptions) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a style to another configuration format",
		Long: `Convert a style to another format. The resolved rule set is converted,
so --rules and --tags filters are applied first.

Targets:
  mdl            canonical .mdl_style.rb: all, exclusions, then configured rules
  gomdlint       .gomdlint.yml
  markdownlint   .markdownlint.json

Output goes to stdout unless --output is set. With --diff the changes to
the output file are printed and nothing is written.

Examples:
  mdlstyle convert --to markdownlint -o .markdownlint.json
  mdlstyle convert custom.rb --to gomdlint --rule-format name
  mdlstyle convert --style all --tags ~headers --to mdl
  mdlstyle convert --to mdl -o .mdl_style.rb --diff`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, globals, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.to, "to", targetMarkdownlint, "target format: mdl, gomdlint, markdownlint")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing output file, keeping a .bak copy")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show changes to the output file instead of writing it")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", string(config.RuleFormatID),
		"rule keys in gomdlint output: name, id, or combined")

	return cmd
}

func runConvert(cmd *cobra.Command, globals *globalOptions, flags *convertFlags, args []string) error {
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !ruleFormat.IsValid() {
		return usageErrorf("invalid rule format %q: must be name, id, or combined", flags.ruleFormat)
	}

	var rs *ruleset.RuleSet
	var source string
	if len(args) == 1 {
		_, evaluated, err := globals.evaluateFile(cmd, args[0])
		if err != nil {
			return err
		}
		rs, source = evaluated, args[0]
	} else {
		result, err := globals.load(cmd)
		if err != nil {
			return err
		}
		rs, source = result.RuleSet, result.Source
	}

	content, err := convertRuleSet(rs, flags.to, ruleFormat, source)
	if err != nil {
		return err
	}

	output := outputOptions{path: flags.output, force: flags.force, diff: flags.diff}
	if err := writeOutput(cmd, output, content); err != nil {
		return err
	}
	if !output.toStdout() && !output.diff {
		logging.FromContext(cmd.Context()).Info("converted style",
			logging.FieldInput, source,
			logging.FieldOutput, flags.output,
			logging.FieldFormat, flags.to)
	}
	return nil
}

func convertRuleSet(rs *ruleset.RuleSet, target string, ruleFormat config.RuleFormat, source string) ([]byte, error) {
	header := "Converted from: " + filepath.Base(source)

	switch target {
	case targetMdl:
		return style.FormatWithHeader(rs.Style(), "markdownlint (mdl) style\n"+header), nil
	case targetGomdlint:
		content, err := config.FromRuleSetWithFormat(rs, ruleFormat).ToYAMLWithHeader("# gomdlint configuration\n# " + header)
		if err != nil {
			return nil, fmt.Errorf("serialize gomdlint config: %w", err)
		}
		return content, nil
	case targetMarkdownlint:
		content, err := config.Markdownlint(rs)
		if err != nil {
			return nil, fmt.Errorf("serialize markdownlint config: %w", err)
		}
		return content, nil
	default:
		return nil, usageErrorf("invalid target %q: must be mdl, gomdlint, or markdownlint", target)
	}
}
