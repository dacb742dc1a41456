package style

import (
	"encoding/json"
	"fmt"
)

// Symbol is a symbol literal such as :ordered.
// Symbols and strings are interchangeable to the consuming linter, but the
// distinction is kept so a style file can be written back unchanged.
type Symbol string

// String returns the symbol in source form.
func (s Symbol) String() string {
	return ":" + string(s)
}

// MarshalJSON encodes the symbol as a plain JSON string.
func (s Symbol) MarshalJSON() ([]byte, error) {
	b, err := json.Marshal(string(s))
	if err != nil {
		return nil, fmt.Errorf("marshal symbol: %w", err)
	}
	return b, nil
}

// MarshalYAML encodes the symbol as a plain YAML string.
func (s Symbol) MarshalYAML() (any, error) {
	return string(s), nil
}

// Pos is a position in a style file. Line and Column are 1-based.
type Pos struct {
	Path   string
	Line   int
	Column int
}

// String formats the position as path:line:col, dropping the path when unknown.
func (p Pos) String() string {
	if p.Path == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Path, p.Line, p.Column)
}

// IsValid reports whether the position refers to a real location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Option is a key/value pair attached to a statement, written
// `:key => value` or `key: value` in source.
type Option struct {
	Key   string
	Value any
	Pos   Pos
}

// Opt is shorthand for building an Option without position information.
func Opt(key string, value any) Option {
	return Option{Key: key, Value: value}
}

// Plain converts a parsed value into its JSON-compatible form.
// Symbols become strings and slices are converted element by element.
func Plain(value any) any {
	switch typed := value.(type) {
	case Symbol:
		return string(typed)
	case []any:
		out := make([]any, len(typed))
		for i, elem := range typed {
			out[i] = Plain(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, elem := range typed {
			out[key] = Plain(elem)
		}
		return out
	default:
		return value
	}
}

// PlainMap applies Plain to every value of params.
func PlainMap(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for key, value := range params {
		out[key] = Plain(value)
	}
	return out
}
