package configloader

import "github.com/yaklabco/mdlstyle/pkg/ruleset"

// mergeFilters picks the rule and tag specs from the highest-precedence
// source that sets them. Rules and tags are resolved independently, so a
// CLI --tags does not discard rules named in .mdlrc.
func mergeFilters(sources ...ruleset.Filter) ruleset.Filter {
	var result ruleset.Filter
	for _, source := range sources {
		if result.Rules == nil && len(source.Rules) > 0 {
			result.Rules = source.Rules
		}
		if result.Tags == nil && len(source.Tags) > 0 {
			result.Tags = source.Tags
		}
	}
	return result
}

// firstNonEmpty returns the first non-empty value and its index, or -1.
func firstNonEmpty(values ...string) (string, int) {
	for i, value := range values {
		if value != "" {
			return value, i
		}
	}
	return "", -1
}
