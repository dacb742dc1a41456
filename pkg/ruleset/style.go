package ruleset

import (
	"maps"
	"slices"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

// Style renders rs as a canonical style. When DefaultEnabled is set the
// result is `all` followed by exclusions; otherwise it lists one `rule`
// per enabled rule. Parameters are written sorted by key. A configured
// rule that is disabled is written as `rule` then `exclude_rule`, so its
// parameters survive.
func (rs *RuleSet) Style() *style.Style {
	s := style.New()
	if rs.DefaultEnabled {
		s.All()
	}

	for _, entry := range rs.Entries() {
		id := entry.Rule.ID
		switch {
		case entry.Configured():
			s.Rule(id, sortedOptions(entry.Params)...)
			if !entry.Enabled {
				s.ExcludeRule(id)
			}
		case entry.Enabled && !rs.DefaultEnabled:
			s.Rule(id)
		case !entry.Enabled && rs.DefaultEnabled:
			s.ExcludeRule(id)
		}
	}

	return s
}

func sortedOptions(params map[string]any) []style.Option {
	options := make([]style.Option, 0, len(params))
	for _, key := range slices.Sorted(maps.Keys(params)) {
		options = append(options, style.Opt(key, params[key]))
	}
	return options
}
