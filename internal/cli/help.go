package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdlstyle/internal/ui/pretty"
)

// flagLinePattern splits a pflag usage line into indent, flag names and
// value type, and description. The description follows a gap of two or
// more spaces.
var flagLinePattern = regexp.MustCompile(`^(\s*)(\S.*?)\s{2,}(\S.*)$`) //nolint:gochecknoglobals // Compiled once.

// helpTemplates holds the usage and help screens. "help" adds the command
// description in front of "usage".
const helpTemplates = `{{define "usage" -}}
{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .Aliases}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}
{{- range .Commands}}{{if or .IsAvailableCommand (eq .Name "help")}}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.{{end}}
{{end}}

{{- define "help" -}}
{{ with or .Long .Short }}{{ trimLines . }}

{{ end }}{{ template "usage" . }}
{{- end}}`

// HelpFormatter renders Cobra help and usage screens with pretty styles.
type HelpFormatter struct {
	colorMode func() string
}

// NewHelpFormatter returns a formatter that reads the color mode each time
// a screen is rendered, after flags have been parsed.
func NewHelpFormatter(colorMode func() string) *HelpFormatter {
	return &HelpFormatter{colorMode: colorMode}
}

// ApplyToCommand installs the styled screens on cmd. Subcommands inherit
// them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command.OutOrStdout(), "usage", command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command.OutOrStdout(), "help", command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(out io.Writer, name string, command *cobra.Command) error {
	styles := pretty.NewStyles(pretty.IsColorEnabled(h.colorMode(), out))

	tmpl, err := template.New("mdlstyle").Funcs(template.FuncMap{
		"heading":    styles.Heading.Render,
		"command":    styles.Command.Render,
		"subcommand": styles.Enabled.Render,
		"dim":        styles.Dim.Render,
		"flags":      func(set flagUsager) string { return styleFlags(styles, set) },
		"pad":        func(s string, width int) string { return fmt.Sprintf("%-*s", width, s) },
		"join":       strings.Join,
		"trimLines":  trimLines,
	}).Parse(helpTemplates)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if err := tmpl.ExecuteTemplate(out, name, command); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

type flagUsager interface {
	FlagUsages() string
}

// styleFlags colors flag names and value types in pflag's usage block.
func styleFlags(styles *pretty.Styles, set flagUsager) string {
	lines := strings.Split(strings.TrimSuffix(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		match := flagLinePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		tokens := strings.Fields(match[2])
		for j, token := range tokens {
			name, comma := strings.CutSuffix(token, ",")
			if strings.HasPrefix(name, "-") {
				tokens[j] = styles.Flag.Render(name)
			} else {
				tokens[j] = styles.Dim.Render(name)
			}
			if comma {
				tokens[j] += ","
			}
		}
		lines[i] = match[1] + strings.Join(tokens, " ") + "   " + match[3]
	}
	return strings.Join(lines, "\n")
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
