package configloader

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ImportResult is a markdownlint config translated into a style.
type ImportResult struct {
	Style *style.Style

	// Warnings lists settings that had no mdl equivalent.
	Warnings []string

	// SourcePath is the markdownlint config that was read.
	SourcePath string
}

// optionRename maps a markdownlint option onto an mdl parameter.
type optionRename struct {
	name   string
	negate bool
}

// importOptionRenames maps markdownlint option names to mdl parameter names
// where the two differ.
//
//nolint:gochecknoglobals // Read-only lookup table.
var importOptionRenames = map[string]map[string]optionRename{
	"MD010": {"code_blocks": {name: "ignore_code_blocks", negate: true}},
	"MD024": {"siblings_only": {name: "allow_different_nesting"}},
}

// ImportMarkdownlintConfig converts a markdownlint config file to a style.
// `default` maps to `all`, tags to tag directives and rules to rule
// directives. Rules and options mdl does not support produce warnings.
func ImportMarkdownlintConfig(path string) (*ImportResult, error) {
	return ImportMarkdownlintConfigWith(path, rules.DefaultRegistry)
}

// ImportMarkdownlintConfigWith is ImportMarkdownlintConfig against reg.
func ImportMarkdownlintConfigWith(path string, reg *rules.Registry) (*ImportResult, error) {
	if reason := ImportRefusal(path); reason != "" {
		return nil, errors.New(reason)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdownlint config: %w", err)
	}

	var raw map[string]any
	switch DetectConfigFormat(path) {
	case FormatJSON:
		err = decodeJSONC(content, &raw)
	default:
		err = yaml.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	result := &ImportResult{SourcePath: path}
	result.Style = convertMarkdownlint(raw, reg, result)
	result.Style.Path = path
	return result, nil
}

type importedRule struct {
	id      string
	enabled bool
	params  []style.Option
}

// convertMarkdownlint builds a style from a decoded markdownlint config.
func convertMarkdownlint(raw map[string]any, reg *rules.Registry, result *ImportResult) *style.Style {
	defaultEnabled := processSpecialKeys(raw, result)

	out := style.New()
	if defaultEnabled {
		out.All()
	}

	var tagDirectives []style.Directive
	var imported []importedRule

	keys := slices.Sorted(maps.Keys(raw))
	for _, key := range keys {
		value := raw[key]

		if id, _, ok := reg.Resolve(key); ok {
			imported = append(imported, importRule(id, value, reg, result))
			continue
		}

		if tag, ok := reg.ResolveTag(key); ok {
			kind := style.KindTag
			if !valueToBool(value) {
				kind = style.KindExcludeTag
			}
			tagDirectives = append(tagDirectives, style.Directive{Kind: kind, Target: tag})
			continue
		}

		if id, ok := markdownlintOnlyRule(key); ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s (%s) has no mdl equivalent; skipping", id, markdownlintOnlyRules[id]))
			continue
		}
		if markdownlintOnlyTags[strings.ToLower(key)] {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("tag %q has no mdl equivalent; skipping", key))
			continue
		}

		result.Warnings = append(result.Warnings, fmt.Sprintf("unknown key %q; skipping", key))
	}

	out.Directives = append(out.Directives, tagDirectives...)

	slices.SortFunc(imported, func(a, b importedRule) int { return cmp.Compare(a.id, b.id) })
	enablesTags := slices.ContainsFunc(tagDirectives, func(d style.Directive) bool {
		return d.Kind == style.KindTag
	})
	excludedByTag := make(map[string]bool)
	for _, directive := range tagDirectives {
		if directive.Kind != style.KindExcludeTag {
			continue
		}
		for _, id := range reg.RulesWithTag(directive.Target) {
			excludedByTag[id] = true
		}
	}
	for _, rule := range imported {
		switch {
		case rule.enabled && defaultEnabled && len(rule.params) == 0 && !excludedByTag[rule.id]:
			// Already on through `all`.
		case rule.enabled:
			out.Rule(rule.id, rule.params...)
		case defaultEnabled || enablesTags:
			out.ExcludeRule(rule.id)
		}
	}

	return out
}

// importRule converts one rule value. Options mdl does not accept are dropped
// with a warning.
func importRule(id string, value any, reg *rules.Registry, result *ImportResult) importedRule {
	rule := importedRule{id: id, enabled: valueToBool(value)}

	options, ok := value.(map[string]any)
	if !ok || len(options) == 0 {
		return rule
	}

	renames := importOptionRenames[id]
	for _, name := range slices.Sorted(maps.Keys(options)) {
		optValue := normalizeNumber(options[name])
		paramName := name
		if rename, ok := renames[name]; ok {
			paramName = rename.name
			if b, isBool := optValue.(bool); isBool && rename.negate {
				optValue = !b
			}
		}
		if id == "MD033" && paramName == "allowed_elements" {
			optValue = joinElements(optValue)
		}

		if err := reg.ValidateParams(id, map[string]any{paramName: optValue}); err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s option %q is not supported by mdl; skipping", id, name))
			continue
		}
		rule.params = append(rule.params, style.Opt(paramName, optValue))
	}

	slices.SortFunc(rule.params, func(a, b style.Option) int { return cmp.Compare(a.Key, b.Key) })
	return rule
}

// normalizeNumber turns integral JSON numbers into ints.
func normalizeNumber(value any) any {
	f, ok := value.(float64)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return value
	}
	return int(f)
}

// joinElements turns a markdownlint element list into mdl's comma-separated string.
func joinElements(value any) any {
	items, ok := value.([]any)
	if !ok {
		return value
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	return strings.Join(names, ",")
}

// processSpecialKeys handles markdownlint special configuration keys and
// reports whether rules are enabled by default.
func processSpecialKeys(raw map[string]any, result *ImportResult) bool {
	defaultEnabled := true
	if value, ok := raw["default"]; ok {
		defaultEnabled = valueToBool(value)
		delete(raw, "default")
	}

	if extends, ok := raw["extends"].(string); ok {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("'extends: %q' is not supported; you may need to merge configs manually", extends))
	}
	delete(raw, "extends")

	delete(raw, "$schema")

	return defaultEnabled
}

// valueToBool converts a markdownlint rule value to whether the rule is on.
func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	case string:
		return v != "off"
	default:
		return true
	}
}

// ImportHeader is the comment written at the top of an imported style.
func ImportHeader(sourcePath string) string {
	return fmt.Sprintf(`markdownlint (mdl) style
Imported from: %s
`, filepath.Base(sourcePath))
}

// CanImport reports whether path is a config format mdlstyle can read.
// JavaScript configs need Node to evaluate.
func CanImport(path string) bool {
	return !IsJavaScriptConfig(path)
}

// ImportRefusal explains why path cannot be imported, or returns "".
func ImportRefusal(path string) string {
	if CanImport(path) {
		return ""
	}
	return fmt.Sprintf("%s is a JavaScript config and cannot be imported; "+
		"write a style by hand or start from 'mdlstyle init'", filepath.Base(path))
}
