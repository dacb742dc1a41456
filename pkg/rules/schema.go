package rules

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// schemaBaseURL prefixes the $id of every generated parameter schema.
const schemaBaseURL = "https://github.com/yaklabco/mdlstyle/schema/rules/"

// SchemaURL returns the $id used for a rule's parameter schema.
func SchemaURL(ruleID string) string {
	return schemaBaseURL + ruleID + ".json"
}

// Schema returns the JSON Schema describing the parameters a rule accepts.
// Unknown parameter names are rejected by the schema.
func (r *Registry) Schema(key string) ([]byte, error) {
	rule, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, key)
	}
	return reflectSchema(rule)
}

func reflectSchema(rule Rule) ([]byte, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	var jss *jsonschema.Schema
	if rule.Params != nil {
		jss = reflector.Reflect(rule.Params)
	} else {
		jss = &jsonschema.Schema{
			Version:              jsonschema.Version,
			Type:                 "object",
			AdditionalProperties: jsonschema.FalseSchema,
		}
	}

	jss.ID = jsonschema.ID(SchemaURL(rule.ID))
	jss.Title = rule.ID + " " + rule.Alias
	jss.Description = rule.Description

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", rule.ID, err)
	}
	return data, nil
}
