// Package rules describes the rules a style file may refer to: their IDs,
// aliases, tags, and the parameters each one accepts.
package rules

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrUnknownRule is returned when a rule ID or alias is not registered.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrUnknownTag is returned when a tag has no registered rules.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrInvalidParams is returned when a rule's parameters fail validation.
	ErrInvalidParams = errors.New("invalid rule parameters")
)

// Rule is the catalog entry for a single lint rule.
type Rule struct {
	// ID is the canonical identifier, e.g. "MD013".
	ID string

	// Alias is the human-readable name, e.g. "line-length".
	Alias string

	// Description is a one-line summary of what the rule checks.
	Description string

	// Tags group rules so they can be enabled or excluded together.
	Tags []string

	// Params is a pointer to a zero value of the struct describing the
	// accepted parameters, or nil for rules without parameters.
	Params any

	// Defaults holds the parameter values the linter uses when a style
	// does not set them.
	Defaults map[string]any
}

// HasParams reports whether the rule accepts any parameters.
func (r Rule) HasParams() bool {
	return r.Params != nil
}

// HasTag reports whether the rule carries the given tag.
func (r Rule) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// ParamNames returns the rule's parameter names in sorted order.
func (r Rule) ParamNames() []string {
	return slices.Sorted(maps.Keys(r.Defaults))
}
