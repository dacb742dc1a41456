// Package ruleset applies a style to the rule catalog, producing the set
// of enabled rules and their parameters the way mdl consumes a style file:
// directives are evaluated in order and later ones win.
package ruleset

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ErrUnknownTag is returned when a tag directive names no known tag.
var ErrUnknownTag = rules.ErrUnknownTag

// Entry is the resolved state of one rule.
type Entry struct {
	Rule rules.Rule

	// Enabled reports whether the linter should run the rule.
	Enabled bool

	// Params holds parameters set by the style. Values are kept as parsed.
	Params map[string]any

	// Source is the position of the last directive that touched the rule.
	Source style.Pos
}

// Configured reports whether the style set any parameters for the rule.
func (e Entry) Configured() bool {
	return len(e.Params) > 0
}

// EffectiveParams returns the rule defaults overlaid with the configured
// parameters.
func (e Entry) EffectiveParams() map[string]any {
	if len(e.Rule.Defaults) == 0 && len(e.Params) == 0 {
		return nil
	}
	params := make(map[string]any, len(e.Rule.Defaults)+len(e.Params))
	maps.Copy(params, e.Rule.Defaults)
	maps.Copy(params, e.Params)
	return params
}

// RuleSet is the result of evaluating a style.
type RuleSet struct {
	// DefaultEnabled is true when the style enables every rule via `all`.
	DefaultEnabled bool

	registry *rules.Registry
	entries  map[string]*Entry
}

// Warning describes a directive that was skipped during lenient evaluation.
type Warning struct {
	Pos     style.Pos
	Message string
	Err     error
}

// String formats the warning with its position.
func (w Warning) String() string {
	if w.Pos.IsValid() {
		return w.Pos.String() + ": " + w.Message
	}
	return w.Message
}

// Evaluate applies s to reg. Unknown rules and tags are errors.
func Evaluate(s *style.Style, reg *rules.Registry) (*RuleSet, error) {
	rs, warnings := evaluate(s, reg)
	if len(warnings) > 0 {
		first := warnings[0]
		if !first.Pos.IsValid() {
			return nil, first.Err
		}
		return nil, fmt.Errorf("%s: %w", first.Pos, first.Err)
	}
	return rs, nil
}

// EvaluateLenient applies s to reg, skipping directives that name unknown
// rules or tags and reporting them as warnings.
func EvaluateLenient(s *style.Style, reg *rules.Registry) (*RuleSet, []Warning) {
	return evaluate(s, reg)
}

func evaluate(s *style.Style, reg *rules.Registry) (*RuleSet, []Warning) {
	if reg == nil {
		reg = rules.DefaultRegistry
	}
	rs := &RuleSet{
		registry: reg,
		entries:  make(map[string]*Entry),
	}
	for _, rule := range reg.Rules() {
		rs.entries[rule.ID] = &Entry{Rule: rule}
	}
	if s == nil {
		return rs, nil
	}

	var warnings []Warning
	for _, directive := range s.Directives {
		switch directive.Kind {
		case style.KindAll:
			rs.DefaultEnabled = true
			for _, entry := range rs.entries {
				entry.Enabled = true
				entry.Source = directive.Pos
			}

		case style.KindRule, style.KindExcludeRule:
			id, _, ok := reg.Resolve(directive.Target)
			if !ok {
				warnings = append(warnings, Warning{
					Pos:     directive.Pos,
					Message: fmt.Sprintf("unknown rule %q", directive.Target),
					Err:     fmt.Errorf("%w: %s", rules.ErrUnknownRule, directive.Target),
				})
				continue
			}
			entry := rs.entries[id]
			entry.Enabled = directive.Kind == style.KindRule
			entry.Source = directive.Pos
			if params := directive.ParamMap(); len(params) > 0 {
				if entry.Params == nil {
					entry.Params = make(map[string]any, len(params))
				}
				maps.Copy(entry.Params, params)
			}

		case style.KindTag, style.KindExcludeTag:
			ids := reg.RulesWithTag(directive.Target)
			if ids == nil {
				warnings = append(warnings, Warning{
					Pos:     directive.Pos,
					Message: fmt.Sprintf("unknown tag %q", directive.Target),
					Err:     fmt.Errorf("%w: %s", ErrUnknownTag, directive.Target),
				})
				continue
			}
			for _, id := range ids {
				entry := rs.entries[id]
				entry.Enabled = directive.Kind == style.KindTag
				entry.Source = directive.Pos
			}
		}
	}

	return rs, warnings
}

func (rs *RuleSet) lookup(key string) (*Entry, bool) {
	id, _, ok := rs.registry.Resolve(key)
	if !ok {
		return nil, false
	}
	entry, ok := rs.entries[id]
	return entry, ok
}

// Entry returns the resolved entry for a rule ID or alias.
func (rs *RuleSet) Entry(key string) (Entry, bool) {
	entry, ok := rs.lookup(key)
	if !ok {
		return Entry{}, false
	}
	return *entry, true
}

// Enabled reports whether the rule identified by key is enabled.
// Unknown rules are never enabled.
func (rs *RuleSet) Enabled(key string) bool {
	entry, ok := rs.lookup(key)
	return ok && entry.Enabled
}

// Params returns a copy of the parameters the style set for a rule.
func (rs *RuleSet) Params(key string) map[string]any {
	entry, ok := rs.lookup(key)
	if !ok || len(entry.Params) == 0 {
		return nil
	}
	return maps.Clone(entry.Params)
}

// Param returns a single configured parameter.
func (rs *RuleSet) Param(key, name string) (any, bool) {
	entry, ok := rs.lookup(key)
	if !ok {
		return nil, false
	}
	value, ok := entry.Params[name]
	return value, ok
}

// Entries returns every entry sorted by rule ID.
func (rs *RuleSet) Entries() []Entry {
	result := make([]Entry, 0, len(rs.entries))
	for _, entry := range rs.entries {
		result = append(result, *entry)
	}
	slices.SortFunc(result, func(a, b Entry) int {
		return cmp.Compare(a.Rule.ID, b.Rule.ID)
	})
	return result
}

// EnabledIDs returns the IDs of enabled rules in sorted order.
func (rs *RuleSet) EnabledIDs() []string {
	return rs.ids(func(e *Entry) bool { return e.Enabled })
}

// Excluded returns the IDs of disabled rules in sorted order.
func (rs *RuleSet) Excluded() []string {
	return rs.ids(func(e *Entry) bool { return !e.Enabled })
}

// Configured returns the IDs of rules with parameters in sorted order.
func (rs *RuleSet) Configured() []string {
	return rs.ids(func(e *Entry) bool { return e.Configured() })
}

func (rs *RuleSet) ids(keep func(*Entry) bool) []string {
	var result []string
	for id, entry := range rs.entries {
		if keep(entry) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// Registry returns the registry the rule set was evaluated against.
func (rs *RuleSet) Registry() *rules.Registry {
	return rs.registry
}

// IsUnknown reports whether err came from a directive naming an unknown rule or tag.
func IsUnknown(err error) bool {
	return errors.Is(err, rules.ErrUnknownRule) || errors.Is(err, ErrUnknownTag)
}
