package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsv "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/yaklabco/mdlstyle/pkg/style"
)

// ValidateParams checks a rule's parameters against its schema.
// Symbol values are validated as strings.
func (r *Registry) ValidateParams(key string, params map[string]any) error {
	rule, ok := r.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRule, key)
	}
	if rule.Params == nil && len(params) > 0 {
		return fmt.Errorf("%w: %s takes no parameters", ErrInvalidParams, rule.ID)
	}

	schema, err := r.compiled(rule)
	if err != nil {
		return err
	}

	if params == nil {
		params = map[string]any{}
	}
	doc, err := toJSONValue(style.PlainMap(params))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidParams, rule.ID, err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrInvalidParams, rule.ID, describeValidation(err))
	}
	return nil
}

// compiled returns the cached compiled schema for rule, compiling it on first use.
func (r *Registry) compiled(rule Rule) (*jsv.Schema, error) {
	r.mu.RLock()
	schema, ok := r.schemas[rule.ID]
	r.mu.RUnlock()
	if ok {
		return schema, nil
	}

	data, err := reflectSchema(rule)
	if err != nil {
		return nil, err
	}
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema for %s: %w", rule.ID, err)
	}

	url := SchemaURL(rule.ID)
	compiler := jsv.NewCompiler()
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema resource for %s: %w", rule.ID, err)
	}
	schema, err = compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", rule.ID, err)
	}

	r.mu.Lock()
	r.schemas[rule.ID] = schema
	r.mu.Unlock()

	return schema, nil
}

// toJSONValue converts a Go value into the form the validator expects,
// with numbers as json.Number.
func toJSONValue(value any) (any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode parameters: %w", err)
	}
	doc, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	return doc, nil
}

// describeValidation flattens a validation error into a single line,
// dropping the schema URL header.
func describeValidation(err error) string {
	var validationErr *jsv.ValidationError
	if !errors.As(err, &validationErr) {
		return err.Error()
	}

	lines := strings.Split(strings.TrimSpace(validationErr.Error()), "\n")
	if len(lines) > 1 {
		lines = lines[1:]
	}
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "at '': ")
		lines[i] = line
	}
	return strings.Join(lines, "; ")
}
