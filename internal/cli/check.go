package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle"
	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/internal/watch"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type checkFlags struct {
	watch   bool
	strict  bool
	verbose bool
	format  string
}

// checkReport is the json form of a check.
type checkReport struct {
	Path     string         `json:"path"`
	Valid    bool           `json:"valid"`
	Errors   []checkFinding `json:"errors"`
	Warnings []checkFinding `json:"warnings"`
}

type checkFinding struct {
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func newCheckCommand(globals *globalOptions) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Check a style file for errors",
		Long: `Check a style file for syntax errors, unknown rules and tags, and rule
parameters that do not match what the rule accepts.

Unknown rules and tags are warnings; mdl ignores them. Syntax errors and
invalid parameters are errors. Without a file argument the style is
resolved the same way as for 'mdlstyle show'.

Examples:
  mdlstyle check                      Check the resolved style
  mdlstyle check .mdl_style.rb        Check a specific file
  mdlstyle check --strict             Fail on warnings too
  mdlstyle check --format json        Machine-readable findings
  mdlstyle check --watch              Re-check whenever the file changes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := globals.style
			if len(args) == 1 {
				target = args[0]
			}
			return runCheck(cmd, globals, flags, target)
		},
	}

	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-check the file whenever it changes")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a full summary")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, json")

	return cmd
}

func runCheck(cmd *cobra.Command, globals *globalOptions, flags *checkFlags, target string) error {
	if target == "" {
		result, err := globals.resolve(cmd, false)
		if err != nil && !isStyleError(err) {
			return err
		}
		if result != nil {
			target = result.Source
		} else {
			target = failedStylePath(err)
		}
	}

	if name, builtin := configloader.BuiltinName(target); builtin {
		target = "builtin:" + name
	}

	if flags.watch && isBuiltinSource(target) {
		return usageErrorf("--watch needs a style file, not %s", target)
	}
	if flags.format != formatText && flags.format != formatJSON {
		return usageErrorf("invalid format %q: must be text or json", flags.format)
	}

	out := cmd.OutOrStdout()
	colorEnabled := pretty.IsColorEnabled(globals.color, out)
	styles := pretty.NewStyles(colorEnabled)

	validation, err := checkStyle(out, styles, target, flags)
	if err != nil {
		return err
	}

	if !flags.watch {
		return checkOutcome(validation, flags.strict)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx = logging.WithFields(ctx, logging.FieldPath, target)

	logging.FromContext(ctx).Info("watching for changes")
	return watch.File(ctx, target, watch.DefaultDebounce, func() {
		if _, err := fmt.Fprintln(out); err != nil {
			return
		}
		if _, err := checkStyle(out, styles, target, flags); err != nil {
			logging.FromContext(ctx).Error("check failed", logging.FieldError, err)
		}
	})
}

// checkStyle validates target and prints the findings. Parse errors are
// reported as findings, not returned.
func checkStyle(out io.Writer, styles *pretty.Styles, target string, flags *checkFlags) (*configloader.ValidationResult, error) {
	var rs *ruleset.RuleSet
	var validation *configloader.ValidationResult

	s, err := readStyle(target)
	var parseErr *style.ParseError
	switch {
	case errors.As(err, &parseErr):
		validation = &configloader.ValidationResult{
			Errors: []configloader.ValidationError{{
				Message:  parseErr.Msg,
				FilePath: parseErr.Pos.Path,
				Line:     parseErr.Pos.Line,
				Column:   parseErr.Pos.Column,
			}},
		}
	case err != nil:
		return nil, err
	default:
		validation = configloader.ValidateWithFile(s, nil, target)
		rs, _ = ruleset.EvaluateLenient(s, nil)
	}

	if flags.format == formatJSON {
		return validation, writeCheckJSON(out, target, validation)
	}
	return validation, printCheck(out, styles, target, rs, validation, flags.verbose)
}

func writeCheckJSON(out io.Writer, target string, validation *configloader.ValidationResult) error {
	convert := func(findings []configloader.ValidationError) []checkFinding {
		converted := make([]checkFinding, 0, len(findings))
		for _, f := range findings {
			converted = append(converted, checkFinding{
				Line:    f.Line,
				Column:  f.Column,
				Field:   f.Field,
				Message: f.Message,
			})
		}
		return converted
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	err := enc.Encode(checkReport{
		Path:     target,
		Valid:    validation.Valid(),
		Errors:   convert(validation.Errors),
		Warnings: convert(validation.Warnings),
	})
	if err != nil {
		return fmt.Errorf("encode check report: %w", err)
	}
	return nil
}

func printCheck(
	out io.Writer,
	styles *pretty.Styles,
	target string,
	rs *ruleset.RuleSet,
	validation *configloader.ValidationResult,
	verbose bool,
) error {
	var builder strings.Builder

	builder.WriteString(styles.FormatFileHeader(target, len(validation.Errors)+len(validation.Warnings)))
	builder.WriteString("\n")
	builder.WriteString(styles.FormatFindings(validation))

	stats := pretty.NewStats(rs, validation)
	if verbose {
		builder.WriteString(styles.FormatSummary(target, stats))
	} else {
		builder.WriteString(styles.FormatSummaryOneLine(stats))
	}

	if _, err := io.WriteString(out, builder.String()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func checkOutcome(validation *configloader.ValidationResult, strict bool) error {
	switch ExitCodeFromValidation(validation, strict) {
	case ExitStyleErrors:
		return ErrStyleInvalid
	case ExitStyleWarnings:
		return ErrStyleWarnings
	default:
		return nil
	}
}

func isBuiltinSource(target string) bool {
	_, builtin := configloader.BuiltinName(target)
	return builtin || target == "embedded"
}

// readStyle parses a style file or loads a built-in style by its source name.
func readStyle(target string) (*style.Style, error) {
	if target == "embedded" {
		return mdlstyle.Default()
	}
	if name, ok := configloader.BuiltinName(target); ok {
		s, _, err := mdlstyle.Builtin(name)
		return s, err
	}
	return style.ParseFile(target)
}

// isStyleError reports whether err means the style file itself is broken,
// which check reports as findings rather than failing.
func isStyleError(err error) bool {
	var parseErr *style.ParseError
	return errors.As(err, &parseErr)
}

func failedStylePath(err error) string {
	var parseErr *style.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Pos.Path
	}
	return ""
}
