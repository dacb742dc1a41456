package configloader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdlstyle/pkg/rules"
	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ValidationError represents a style validation finding.
type ValidationError struct {
	// Field names the directive target (e.g., "rule MD013").
	Field string

	// Value is the offending value.
	Value any

	// Message describes the finding.
	Message string

	// FilePath is the style file containing the finding (if known).
	FilePath string

	// Line and Column locate the directive (if known).
	Line   int
	Column int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		switch {
		case e.Line > 0 && e.Column > 0:
			parts = append(parts, fmt.Sprintf("%s:%d:%d", e.FilePath, e.Line, e.Column))
		case e.Line > 0:
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		default:
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are findings that make the style unusable.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func finding(d style.Directive, value any, message string) ValidationError {
	field := d.Kind.String()
	if d.Target != "" {
		field += " " + d.Target
	}
	return ValidationError{
		Field:    field,
		Value:    value,
		Message:  message,
		FilePath: d.Pos.Path,
		Line:     d.Pos.Line,
		Column:   d.Pos.Column,
	}
}

// Validate checks a style against reg. Unknown rules and tags are warnings
// with suggestions; invalid rule parameters are errors.
func Validate(s *style.Style, reg *rules.Registry) *ValidationResult {
	result := &ValidationResult{}
	if s == nil {
		return result
	}
	if reg == nil {
		reg = rules.DefaultRegistry
	}

	configuredAt := make(map[string]style.Pos)
	enablesAny := false

	for _, directive := range s.Directives {
		switch directive.Kind {
		case style.KindAll:
			enablesAny = true

		case style.KindRule, style.KindExcludeRule:
			id, _, ok := reg.Resolve(directive.Target)
			if !ok {
				result.Warnings = append(result.Warnings,
					finding(directive, directive.Target, unknownMessage("rule", directive.Target, reg)))
				continue
			}

			if directive.Kind == style.KindExcludeRule {
				if pos, configured := configuredAt[id]; configured {
					result.Warnings = append(result.Warnings, finding(directive, id,
						fmt.Sprintf("%s is configured at line %d but excluded here; its parameters have no effect",
							id, pos.Line)))
				}
				continue
			}

			enablesAny = true
			params := directive.ParamMap()
			if len(params) == 0 {
				continue
			}
			if err := reg.ValidateParams(id, params); err != nil {
				result.Errors = append(result.Errors, finding(directive, params, paramsMessage(err)))
				continue
			}
			configuredAt[id] = directive.Pos

		case style.KindTag, style.KindExcludeTag:
			if _, ok := reg.ResolveTag(directive.Target); !ok {
				result.Warnings = append(result.Warnings,
					finding(directive, directive.Target, unknownMessage("tag", directive.Target, reg)))
				continue
			}
			if directive.Kind == style.KindTag {
				enablesAny = true
			}
		}
	}

	if !enablesAny {
		result.Warnings = append(result.Warnings, ValidationError{
			FilePath: s.Path,
			Message:  "style enables no rules; add `all` or a rule or tag directive",
		})
	}

	return result
}

// ValidateWithFile validates a style and includes filePath in findings
// that lack one.
func ValidateWithFile(s *style.Style, reg *rules.Registry, filePath string) *ValidationResult {
	result := Validate(s, reg)

	for i := range result.Errors {
		if result.Errors[i].FilePath == "" {
			result.Errors[i].FilePath = filePath
		}
	}
	for i := range result.Warnings {
		if result.Warnings[i].FilePath == "" {
			result.Warnings[i].FilePath = filePath
		}
	}

	return result
}

func unknownMessage(kind, target string, reg *rules.Registry) string {
	msg := fmt.Sprintf("unknown %s %q", kind, target)
	if suggestions := reg.Suggest(target); len(suggestions) > 0 {
		msg += "; did you mean " + strings.Join(suggestions, ", ") + "?"
	}
	return msg
}

// paramsMessage strips the sentinel prefix from a parameter validation error.
func paramsMessage(err error) string {
	msg := err.Error()
	if errors.Is(err, rules.ErrInvalidParams) {
		msg = strings.TrimPrefix(msg, rules.ErrInvalidParams.Error()+": ")
	}
	return "invalid parameters: " + msg
}
