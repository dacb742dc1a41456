// Package style parses and writes mdl style files.
//
// A style file is a list of directives evaluated top to bottom:
//
//	all
//	exclude_rule 'MD007'
//	rule 'MD013', :line_length => 80, :ignore_code_blocks => true
//	tag :headers
//	exclude_tag :html
//
// The package only deals with syntax and structure. Resolving directives
// into the set of enabled rules lives in package ruleset.
package style

import (
	"fmt"
	"os"
	"strings"
)

// Kind identifies a style directive.
type Kind int

const (
	KindAll Kind = iota + 1
	KindRule
	KindExcludeRule
	KindTag
	KindExcludeTag
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = map[Kind]string{
	KindAll:         "all",
	KindRule:        "rule",
	KindExcludeRule: "exclude_rule",
	KindTag:         "tag",
	KindExcludeTag:  "exclude_tag",
}

// String returns the directive keyword.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a directive keyword to its Kind.
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}
	return 0, false
}

// Directive is a single interpreted style statement.
type Directive struct {
	Kind Kind

	// Target is the rule ID for rule directives and the tag name for tag
	// directives. Empty for KindAll.
	Target string

	// Params holds rule parameters in source order. Only KindRule carries params.
	Params []Option

	Pos Pos
}

// Param returns the value of the named parameter.
func (d Directive) Param(key string) (any, bool) {
	for _, opt := range d.Params {
		if opt.Key == key {
			return opt.Value, true
		}
	}
	return nil, false
}

// ParamMap returns the directive's parameters as a map. Values are returned
// as parsed, so symbols remain Symbol.
func (d Directive) ParamMap() map[string]any {
	if len(d.Params) == 0 {
		return nil
	}
	params := make(map[string]any, len(d.Params))
	for _, opt := range d.Params {
		params[opt.Key] = opt.Value
	}
	return params
}

// Style is a parsed style file.
type Style struct {
	// Path is the file the style was read from, if any.
	Path string

	Directives []Directive
}

// New returns an empty style. Combine with the builder methods:
//
//	style.New().All().ExcludeRule("MD033").Rule("MD029", style.Opt("style", style.Symbol("ordered")))
func New() *Style {
	return &Style{}
}

// All appends an `all` directive.
func (s *Style) All() *Style {
	s.Directives = append(s.Directives, Directive{Kind: KindAll})
	return s
}

// Rule appends a `rule` directive.
func (s *Style) Rule(id string, params ...Option) *Style {
	s.Directives = append(s.Directives, Directive{Kind: KindRule, Target: id, Params: params})
	return s
}

// ExcludeRule appends an `exclude_rule` directive.
func (s *Style) ExcludeRule(id string) *Style {
	s.Directives = append(s.Directives, Directive{Kind: KindExcludeRule, Target: id})
	return s
}

// Tag appends a `tag` directive.
func (s *Style) Tag(tag string) *Style {
	s.Directives = append(s.Directives, Directive{Kind: KindTag, Target: tag})
	return s
}

// ExcludeTag appends an `exclude_tag` directive.
func (s *Style) ExcludeTag(tag string) *Style {
	s.Directives = append(s.Directives, Directive{Kind: KindExcludeTag, Target: tag})
	return s
}

// HasAll reports whether the style contains an `all` directive.
func (s *Style) HasAll() bool {
	for _, d := range s.Directives {
		if d.Kind == KindAll {
			return true
		}
	}
	return false
}

// Parse parses style source. path is used for error positions.
func Parse(path string, src []byte) (*Style, error) {
	stmts, err := ParseStatements(path, src)
	if err != nil {
		return nil, err
	}

	style := &Style{Path: path, Directives: make([]Directive, 0, len(stmts))}
	for _, stmt := range stmts {
		directive, err := directiveFromStatement(stmt)
		if err != nil {
			return nil, err
		}
		style.Directives = append(style.Directives, directive)
	}
	return style, nil
}

// ParseFile reads and parses the style file at path.
func ParseFile(path string) (*Style, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read style file: %w", err)
	}
	return Parse(path, src)
}

func directiveFromStatement(stmt Statement) (Directive, error) {
	kind, ok := ParseKind(stmt.Name)
	if !ok {
		return Directive{}, directiveError(stmt.Pos, fmt.Sprintf("unknown directive %q", stmt.Name))
	}
	directive := Directive{Kind: kind, Pos: stmt.Pos}

	if kind == KindAll {
		if len(stmt.Args) > 0 || len(stmt.Options) > 0 {
			return Directive{}, directiveError(stmt.Pos, "all takes no arguments")
		}
		return directive, nil
	}

	if len(stmt.Args) != 1 {
		return Directive{}, directiveError(stmt.Pos,
			fmt.Sprintf("%s takes exactly one target, got %d", kind, len(stmt.Args)))
	}
	target, ok := targetName(stmt.Args[0])
	if !ok {
		return Directive{}, directiveError(stmt.Pos,
			fmt.Sprintf("%s target must be a string or symbol", kind))
	}
	directive.Target = target

	if len(stmt.Options) > 0 && kind != KindRule {
		return Directive{}, directiveError(stmt.Options[0].Pos, fmt.Sprintf("%s takes no options", kind))
	}

	seen := make(map[string]bool, len(stmt.Options))
	for _, opt := range stmt.Options {
		if seen[opt.Key] {
			return Directive{}, directiveError(opt.Pos, fmt.Sprintf("duplicate option %q", opt.Key))
		}
		seen[opt.Key] = true
	}
	directive.Params = stmt.Options

	return directive, nil
}

func targetName(arg any) (string, bool) {
	var name string
	switch typed := arg.(type) {
	case string:
		name = typed
	case Symbol:
		name = string(typed)
	default:
		return "", false
	}
	name = strings.TrimSpace(name)
	return name, name != ""
}
