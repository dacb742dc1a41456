package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// optionMapping rewrites one mdl parameter into a target tool's option.
type optionMapping struct {
	name   string
	negate bool
}

// gomdlintOptions maps mdl parameter names to gomdlint option names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var gomdlintOptions = map[string]map[string]optionMapping{
	"MD013": {"line_length": {name: "max"}},
}

// markdownlintOptions maps mdl parameter names to markdownlint option names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownlintOptions = map[string]map[string]optionMapping{
	"MD013": {
		"ignore_code_blocks": {name: "code_blocks", negate: true},
	},
	"MD010": {
		"ignore_code_blocks": {name: "code_blocks", negate: true},
	},
	"MD024": {"allow_different_nesting": {name: "siblings_only"}},
}

// FromRuleSet builds a gomdlint configuration from an evaluated style.
// Disabled rules get `enabled: false` and configured rules carry their
// parameters with symbols written as strings.
func FromRuleSet(rs *ruleset.RuleSet) *Config {
	return FromRuleSetWithFormat(rs, RuleFormatID)
}

// FromRuleSetWithFormat is FromRuleSet with rule keys written in format.
func FromRuleSetWithFormat(rs *ruleset.RuleSet, format RuleFormat) *Config {
	cfg := NewConfig()
	cfg.RuleFormat = format
	if rs == nil {
		return cfg
	}

	for _, entry := range rs.Entries() {
		var ruleCfg RuleConfig
		if !entry.Enabled {
			disabled := false
			ruleCfg.Enabled = &disabled
		}
		if entry.Configured() {
			ruleCfg.Options = translateOptions(entry.Params, gomdlintOptions[entry.Rule.ID])
		}
		if ruleCfg.Enabled == nil && ruleCfg.Options == nil {
			continue
		}
		cfg.Rules[format.Key(entry.Rule.ID, entry.Rule.Alias)] = ruleCfg
	}

	return cfg
}

// Markdownlint renders an evaluated style as a .markdownlint.json document.
// Keys are sorted.
func Markdownlint(rs *ruleset.RuleSet) ([]byte, error) {
	doc := map[string]any{
		"default": rs.DefaultEnabled,
	}

	for _, entry := range rs.Entries() {
		switch {
		case !entry.Enabled:
			doc[entry.Rule.ID] = false
		case entry.Configured():
			doc[entry.Rule.ID] = markdownlintRuleOptions(entry)
		case !rs.DefaultEnabled:
			doc[entry.Rule.ID] = true
		}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode markdownlint config: %w", err)
	}
	return buf.Bytes(), nil
}

func markdownlintRuleOptions(entry ruleset.Entry) map[string]any {
	options := translateOptions(entry.Params, markdownlintOptions[entry.Rule.ID])

	// markdownlint takes a list of element names.
	if allowed, ok := options["allowed_elements"].(string); ok {
		var names []any
		for _, name := range strings.Split(allowed, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		options["allowed_elements"] = names
	}
	return options
}

// translateOptions renames parameters for a target tool. A parameter set
// under the target's own name wins over a renamed one.
func translateOptions(params map[string]any, mapping map[string]optionMapping) map[string]any {
	plain := style.PlainMap(params)
	options := make(map[string]any, len(plain))
	for key, value := range plain {
		if _, ok := mapping[key]; !ok {
			options[key] = value
		}
	}
	for key, rename := range mapping {
		value, ok := plain[key]
		if !ok {
			continue
		}
		if _, exists := options[rename.name]; exists {
			continue
		}
		if b, isBool := value.(bool); isBool && rename.negate {
			value = !b
		}
		options[rename.name] = value
	}
	return options
}
