// Package cli provides the Cobra command structure for mdlstyle.
package cli

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/configloader"
	"github.com/yaklabco/mdlstyle/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	debug bool
	style string
	rules string
	tags  string
	color string
}

// NewRootCommand creates the root mdlstyle command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "mdlstyle",
		Short: "Inspect, check and convert markdownlint (mdl) style files",
		Long: `mdlstyle reads the .mdl_style.rb style files used by the markdownlint
(mdl) Ruby gem and resolves which rules are enabled and how they are
configured.

It can check a style for unknown rules and invalid parameters, convert it
to gomdlint or markdownlint (Node) configuration, import an existing
.markdownlint.json, and list the rule catalog and parameter schemas.` + envHelp(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetContext(logging.WithLogger(cmd.Context(), globals.logger(cmd)))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&globals.debug, "debug", false, "enable debug logging")
	flags.StringVarP(&globals.style, "style", "s", "",
		"style file path or built-in name (all, default, mdlstyle)")
	flags.StringVarP(&globals.rules, "rules", "r", "",
		"only these rules, comma separated; prefix with ~ to exclude")
	flags.StringVarP(&globals.tags, "tags", "t", "",
		"only rules with these tags, comma separated; prefix with ~ to exclude")
	flags.StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newShowCommand(globals))
	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newConvertCommand(globals))
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newRulesCommand(globals))
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	NewHelpFormatter(func() string { return globals.color }).ApplyToCommand(rootCmd)

	return rootCmd
}

// logger builds the command logger. --debug wins over MDLSTYLE_LOG_LEVEL.
func (g *globalOptions) logger(cmd *cobra.Command) *log.Logger {
	level := logging.DefaultLevel
	if env, err := configloader.LoadEnv(); err == nil && env.LogLevel != "" {
		level = env.LogLevel
	}
	if g.debug {
		level = "debug"
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level)
}

func envHelp() string {
	vars := configloader.ListEnvVars()

	var builder strings.Builder
	builder.WriteString("\n\nEnvironment:\n")
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		fmt.Fprintf(&builder, "  %-20s %s\n", name, vars[name])
	}
	return strings.TrimRight(builder.String(), "\n")
}
