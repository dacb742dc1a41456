package ruleset

import (
	"fmt"
	"maps"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/rules"
)

// Filter narrows a rule set the way mdl's --rules and --tags options do.
// Specs prefixed with "~" exclude.
type Filter struct {
	Rules []string
	Tags  []string
}

// IsEmpty reports whether the filter has no specs.
func (f Filter) IsEmpty() bool {
	return len(f.Rules) == 0 && len(f.Tags) == 0
}

// ParseFilter splits a comma-separated list of specs, dropping blanks.
func ParseFilter(value string) []string {
	var specs []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" || part == "~" {
			continue
		}
		specs = append(specs, part)
	}
	return specs
}

// Apply returns a copy of rs narrowed by f. Positive rule specs narrow
// the set first, then positive tag specs narrow what remains, so the two
// intersect. Exclusions are applied last. Rules disabled by the style are
// never re-enabled.
func (rs *RuleSet) Apply(f Filter) (*RuleSet, error) {
	exclude := make(map[string]bool)

	var byRule map[string]bool
	for _, spec := range f.Rules {
		target, negated := splitSpec(spec)
		id, _, ok := rs.registry.Resolve(target)
		if !ok {
			return nil, fmt.Errorf("%w: %s", rules.ErrUnknownRule, target)
		}
		if negated {
			exclude[id] = true
			continue
		}
		if byRule == nil {
			byRule = make(map[string]bool)
		}
		byRule[id] = true
	}

	var byTag map[string]bool
	for _, spec := range f.Tags {
		target, negated := splitSpec(spec)
		ids := rs.registry.RulesWithTag(target)
		if ids == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTag, target)
		}
		if !negated && byTag == nil {
			byTag = make(map[string]bool)
		}
		for _, id := range ids {
			if negated {
				exclude[id] = true
			} else {
				byTag[id] = true
			}
		}
	}

	out := rs.clone()
	for id, entry := range out.entries {
		switch {
		case byRule != nil && !byRule[id],
			byTag != nil && !byTag[id],
			exclude[id]:
			entry.Enabled = false
		}
	}
	return out, nil
}

func splitSpec(spec string) (string, bool) {
	spec = strings.TrimSpace(spec)
	if rest, ok := strings.CutPrefix(spec, "~"); ok {
		return strings.TrimSpace(rest), true
	}
	return spec, false
}

func (rs *RuleSet) clone() *RuleSet {
	out := &RuleSet{
		DefaultEnabled: rs.DefaultEnabled,
		registry:       rs.registry,
		entries:        make(map[string]*Entry, len(rs.entries)),
	}
	for id, entry := range rs.entries {
		copied := *entry
		copied.Params = maps.Clone(entry.Params)
		out.entries[id] = &copied
	}
	return out
}
