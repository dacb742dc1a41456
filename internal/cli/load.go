package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/diff"
	"github.com/yaklabco/mdlstyle/internal/fsutil"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// load resolves the style for the current directory using the global flags
// and logs any loader warnings.
func (g *globalOptions) load(cmd *cobra.Command) (*configloader.LoadResult, error) {
	return g.resolve(cmd, true)
}

// resolve is load with warning output optional, for commands that report
// the same findings themselves.
func (g *globalOptions) resolve(cmd *cobra.Command, logWarnings bool) (*configloader.LoadResult, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: g.style,
		Rules:        g.rules,
		Tags:         g.tags,
		PromptOut:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}

	for _, warning := range result.Warnings {
		if logWarnings {
			logger.Warn(warning)
		} else {
			logger.Debug(warning)
		}
	}
	logger.Debug("style loaded",
		logging.FieldStyle, result.Source,
		logging.FieldSource, result.SourceKind.String(),
		logging.FieldEnabled, len(result.RuleSet.EnabledIDs()))

	return result, nil
}

// evaluateFile parses and evaluates a style file named on the command
// line, then applies the global rule and tag filters.
func (g *globalOptions) evaluateFile(cmd *cobra.Command, path string) (*style.Style, *ruleset.RuleSet, error) {
	logger := logging.FromContext(cmd.Context())

	s, err := style.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}

	rs, warnings := ruleset.EvaluateLenient(s, nil)
	for _, warning := range warnings {
		logger.Warn(warning.String())
	}

	filter := ruleset.Filter{
		Rules: ruleset.ParseFilter(g.rules),
		Tags:  ruleset.ParseFilter(g.tags),
	}
	if filter.IsEmpty() {
		return s, rs, nil
	}
	filtered, err := rs.Apply(filter)
	if err != nil {
		return nil, nil, fmt.Errorf("apply filter: %w", err)
	}
	return s, filtered, nil
}

// outputOptions controls where a command writes generated content.
type outputOptions struct {
	// path is the target file; "" or "-" means stdout.
	path string

	// force replaces an existing file, keeping a backup of it.
	force bool

	// diff prints the change to path instead of writing it.
	diff bool
}

func (o outputOptions) toStdout() bool {
	return o.path == "" || o.path == "-"
}

// writeOutput writes content as described by opts. Files are written
// atomically and an existing file is only replaced when force is set.
func writeOutput(cmd *cobra.Command, opts outputOptions, content []byte) error {
	if opts.toStdout() {
		if opts.diff {
			return usageErrorf("--diff needs an output file")
		}
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if opts.diff {
		return writeDiff(cmd, opts.path, content)
	}

	if _, err := os.Stat(opts.path); err == nil {
		if !opts.force {
			return usageErrorf("file %q already exists; use --force to overwrite", opts.path)
		}
		backupPath, err := fsutil.Backup(ctx, opts.path)
		if err != nil {
			return err
		}
		logger.Warn("overwriting existing file", logging.FieldPath, opts.path, logging.FieldBackup, backupPath)
	}

	if err := fsutil.WriteAtomic(ctx, opts.path, content); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// writeDiff prints the unified diff between path and content.
func writeDiff(cmd *cobra.Command, path string, content []byte) error {
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}

	changes, err := diff.Compute(path, existing, content)
	if err != nil {
		return err
	}
	if changes == nil {
		logging.FromContext(cmd.Context()).Info("no changes", logging.FieldPath, path)
		return nil
	}
	out := cmd.OutOrStdout()
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))
	if _, err := io.WriteString(out, styles.FormatDiff(changes)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
