package rules

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"
)

// Registry holds the known rules and resolves IDs, aliases and tags.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Rule
	aliases map[string]string   // lowercased alias -> canonical ID
	tags    map[string][]string // tag -> rule IDs
	schemas map[string]*jsv.Schema
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		aliases: make(map[string]string),
		tags:    make(map[string][]string),
		schemas: make(map[string]*jsv.Schema),
	}
}

// Register adds rule under its ID, alias and tags, replacing any rule
// already registered with that ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID]; ok {
		for _, tag := range old.Tags {
			r.tags[tag] = slices.DeleteFunc(r.tags[tag], func(id string) bool { return id == old.ID })
			if len(r.tags[tag]) == 0 {
				delete(r.tags, tag)
			}
		}
	}

	r.byID[rule.ID] = rule
	delete(r.schemas, rule.ID)
	if rule.Alias != "" {
		r.aliases[strings.ToLower(rule.Alias)] = rule.ID
	}
	for _, tag := range rule.Tags {
		r.tags[tag] = append(r.tags[tag], rule.ID)
		slices.Sort(r.tags[tag])
	}
}

// RegisterAlias makes alias resolve to ruleID. Aliases are case-insensitive.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(alias)] = ruleID
}

// Get is Resolve without the canonical ID.
func (r *Registry) Get(key string) (Rule, bool) {
	_, rule, ok := r.Resolve(key)
	return rule, ok
}

// Resolve returns the canonical ID and rule for a given key.
// The key can be a rule ID in any case, an mdl alias, or a markdownlint alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key = strings.TrimSpace(key)
	if rule, ok := r.byID[strings.ToUpper(key)]; ok {
		return rule.ID, rule, true
	}
	if id, ok := r.aliases[strings.ToLower(key)]; ok {
		if rule, ok := r.byID[id]; ok {
			return rule.ID, rule, true
		}
	}
	return "", Rule{}, false
}

// Rules returns every registered rule ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.SortedFunc(maps.Values(r.byID), func(a, b Rule) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// IDs returns the registered rule IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.byID))
}

// Tags returns every tag carried by a registered rule, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.tags))
}

// ResolveTag normalizes a tag name, accepting a leading colon and the
// markdownlint spelling of tags that mdl names differently.
func (r *Registry) ResolveTag(tag string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), ":"))
	if alias, ok := tagAliases[tag]; ok {
		tag = alias
	}
	_, ok := r.tags[tag]
	return tag, ok
}

// IsTag reports whether tag names a group of registered rules.
func (r *Registry) IsTag(tag string) bool {
	_, ok := r.ResolveTag(tag)
	return ok
}

// RulesWithTag returns the sorted IDs of rules carrying tag.
// Returns nil if the tag is not recognized.
func (r *Registry) RulesWithTag(tag string) []string {
	name, ok := r.ResolveTag(tag)
	if !ok {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.tags[name])
}

// AliasesFor returns every alias registered for a rule ID, sorted.
func (r *Registry) AliasesFor(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var aliases []string
	for alias, id := range r.aliases {
		if id == ruleID {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)
	return aliases
}

// NewDefaultRegistry returns a registry holding the built-in catalog and
// the markdownlint aliases.
func NewDefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, rule := range Builtin() {
		registry.Register(rule)
	}
	for _, entry := range markdownlintNames {
		registry.RegisterAlias(entry.name, entry.id)
	}
	return registry
}

// DefaultRegistry is the registry of built-in mdl rules.
//
//nolint:gochecknoglobals // Global registry is intentional, mirroring the built-in rule set.
var DefaultRegistry = NewDefaultRegistry()
