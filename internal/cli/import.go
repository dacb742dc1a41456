package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle"
	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

type importFlags struct {
	force  bool
	diff   bool
	output string
}

func newImportCommand() *cobra.Command {
	flags := &importFlags{}

	cmd := &cobra.Command{
		Use:   "import [input]",
		Short: "Convert a markdownlint configuration to an mdl style",
		Long: `Convert an existing markdownlint configuration file (.markdownlint.json,
.markdownlint.yaml, etc.) to an mdl style file (.mdl_style.rb).

If no input file is specified, the command looks for a markdownlint
configuration file in the current directory.

Rules that only markdownlint implements, and options mdl does not accept,
are skipped with a warning. JavaScript configuration files
(.markdownlint.cjs, .markdownlint.mjs) cannot be converted.

Examples:
  mdlstyle import                         Auto-detect and convert
  mdlstyle import .markdownlint.yaml      Convert a specific file
  mdlstyle import -o -                    Print the style instead of writing it`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runImport(cmd, flags, input)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite existing output file, keeping a .bak copy")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "show changes to the output file instead of writing it")
	cmd.Flags().StringVarP(&flags.output, "output", "o", mdlstyle.DefaultStyleName, "output file path, - for stdout")

	return cmd
}

func runImport(cmd *cobra.Command, flags *importFlags, inputPath string) error {
	logger := logging.FromContext(cmd.Context())

	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindMarkdownlintConfig(cwd)
		if inputPath == "" {
			return errors.New("no markdownlint configuration file found in current directory")
		}

		logger.Info("found markdownlint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	if !configloader.CanImport(inputPath) {
		return usageErrorf("%s", configloader.ImportRefusal(inputPath))
	}
	logger.Debug("importing", logging.FieldInput, inputPath,
		logging.FieldFormat, configloader.DetectConfigFormat(inputPath))

	result, err := configloader.ImportMarkdownlintConfig(inputPath)
	if err != nil {
		return fmt.Errorf("convert configuration: %w", err)
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	content := style.FormatWithHeader(result.Style, configloader.ImportHeader(inputPath))
	output := outputOptions{path: flags.output, force: flags.force, diff: flags.diff}
	if err := writeOutput(cmd, output, content); err != nil {
		return err
	}

	if output.toStdout() || output.diff {
		return nil
	}

	logger.Info("import complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(result.Warnings) > 0 {
		logger.Warn("review warnings above and verify the imported style")
	}
	logger.Info("you can now delete the old markdownlint configuration file")

	return nil
}
