package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls style template generation.
type TemplateOptions struct {
	// Full documents every rule with its default parameters.
	// If false, generates a minimal template.
	Full bool

	// IncludeRules limits a full template to these rule IDs or aliases.
	// If empty, all rules are included.
	IncludeRules []string

	// Registry supplies rule metadata. Defaults to rules.DefaultRegistry.
	Registry *rules.Registry
}

// GenerateTemplate creates a commented .mdl_style.rb template.
func GenerateTemplate(opts TemplateOptions) []byte {
	if opts.Registry == nil {
		opts.Registry = rules.DefaultRegistry
	}
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate()
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Enable every rule, then adjust.
all

# exclude_rule 'MD033'
# exclude_tag :headers
# rule 'MD013', :line_length => 100, :tables => false
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`
#
# This template lists every rule with its default parameters.
# Uncomment and modify lines as needed.

all
`)

	catalog := opts.Registry.Rules()
	if len(opts.IncludeRules) > 0 {
		include := make(map[string]bool, len(opts.IncludeRules))
		for _, key := range opts.IncludeRules {
			if id, _, ok := opts.Registry.Resolve(key); ok {
				include[id] = true
			}
		}
		catalog = slices.DeleteFunc(catalog, func(r rules.Rule) bool {
			return !include[r.ID]
		})
	}

	for _, rule := range catalog {
		fmt.Fprintf(&buf, "\n# %s %s\n", rule.ID, rule.Alias)
		fmt.Fprintf(&buf, "# %s\n", wrapComment(rule.Description, commentWrapWidth))
		if len(rule.Tags) > 0 {
			fmt.Fprintf(&buf, "# Tags: %s\n", strings.Join(rule.Tags, ", "))
		}
		buf.WriteString("# " + defaultRuleLine(rule) + "\n")
	}

	return buf.Bytes()
}

// defaultRuleLine renders a rule directive carrying the rule's defaults.
func defaultRuleLine(rule rules.Rule) string {
	params := make([]style.Option, 0, len(rule.Defaults))
	for _, name := range rule.ParamNames() {
		params = append(params, style.Opt(name, rule.Defaults[name]))
	}
	return strings.TrimSuffix(string(style.Format(style.New().Rule(rule.ID, params...))), "\n")
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n# ")
}

// DefaultTemplateHeader returns the default header for generated files.
func DefaultTemplateHeader() string {
	return `# markdownlint (mdl) style
# See: https://github.com/markdownlint/markdownlint/blob/main/docs/creating_styles.md`
}
