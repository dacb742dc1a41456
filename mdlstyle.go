// Package mdlstyle embeds the project's markdownlint (mdl) style and exposes
// it parsed and evaluated against the built-in rule catalog.
package mdlstyle

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/ruleset"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// DefaultStyleName is the file name mdl looks for.
const DefaultStyleName = ".mdl_style.rb"

//go:embed .mdl_style.rb
var defaultSource []byte

// builtinStyles are the styles a `.mdlrc` may name instead of a path.
//
//nolint:gochecknoglobals // Read-only lookup table.
var builtinStyles = map[string][]byte{
	"all":      []byte("all\n"),
	"default":  []byte("all\n"),
	"mdlstyle": defaultSource,
}

// DefaultSource returns a copy of the embedded style file.
func DefaultSource() []byte {
	return slices.Clone(defaultSource)
}

// Default parses the embedded style.
func Default() (*style.Style, error) {
	s, err := style.Parse(DefaultStyleName, defaultSource)
	if err != nil {
		return nil, fmt.Errorf("parse embedded style: %w", err)
	}
	return s, nil
}

// DefaultRuleSet evaluates the embedded style against the default registry.
func DefaultRuleSet() (*ruleset.RuleSet, error) {
	s, err := Default()
	if err != nil {
		return nil, err
	}
	rs, err := ruleset.Evaluate(s, rules.DefaultRegistry)
	if err != nil {
		return nil, fmt.Errorf("evaluate embedded style: %w", err)
	}
	return rs, nil
}

// BuiltinNames returns the names accepted by Builtin, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtinStyles))
}

// Builtin parses the named built-in style. The second result is false
// when no style has that name.
func Builtin(name string) (*style.Style, bool, error) {
	src, ok := builtinStyles[name]
	if !ok {
		return nil, false, nil
	}
	s, err := style.Parse("builtin:"+name, src)
	if err != nil {
		return nil, true, fmt.Errorf("parse builtin style %s: %w", name, err)
	}
	return s, true, nil
}
