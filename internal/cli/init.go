package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	diff    bool
	full    bool
	minimal bool
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new .mdl_style.rb",
		Long: `Create a new .mdl_style.rb in the current directory.

By default the file holds mdlstyle's recommended style. --minimal writes a
short template that enables every rule, and --full documents every rule
with its default parameters.

Examples:
  mdlstyle init                     Write the recommended style
  mdlstyle init --full              Document every rule
  mdlstyle init -o docs/style.rb    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing style file, keeping a .bak copy")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show changes to the style file instead of writing it")
	cmd.Flags().BoolVar(&flags.full, "full", false, "document every rule with its defaults")
	cmd.Flags().BoolVar(&flags.minimal, "minimal", false, "write a minimal template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", mdlstyle.DefaultStyleName, "output file path, - for stdout")
	cmd.MarkFlagsMutuallyExclusive("full", "minimal")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	var content []byte
	switch {
	case flags.full:
		content = config.GenerateTemplate(config.TemplateOptions{Full: true})
	case flags.minimal:
		content = config.GenerateTemplate(config.TemplateOptions{})
	default:
		content = mdlstyle.DefaultSource()
	}

	output := outputOptions{path: flags.output, force: flags.force, diff: flags.diff}
	if !output.toStdout() {
		absPath, err := filepath.Abs(flags.output)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}
		output.path = absPath
	}

	if err := writeOutput(cmd, output, content); err != nil {
		return err
	}
	if output.toStdout() || output.diff {
		return nil
	}

	logger.Info("created style file", logging.FieldPath, flags.output)
	logger.Info("run 'mdlstyle rules' to see all available rules")

	return nil
}
