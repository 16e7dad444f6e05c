package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator wraps JSON Schema compilation and validation for tool
// arguments.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles a validator from a JSON-schema-shaped map.
func NewSchemaValidator(schemaMap map[string]any) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	schemaJSON, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &SchemaValidator{schema: schema}, nil
}

// ValidateRaw validates raw JSON arguments against the compiled schema.
// Absent arguments are treated as an empty object so required-property
// failures read naturally ("missing properties: 'text'").
func (v *SchemaValidator) ValidateRaw(arguments []byte) error {
	var value any = map[string]any{}
	if len(arguments) > 0 && !bytes.Equal(bytes.TrimSpace(arguments), []byte("null")) {
		if err := json.Unmarshal(arguments, &value); err != nil {
			return fmt.Errorf("arguments are not valid JSON: %w", err)
		}
	}

	if err := v.schema.Validate(value); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := ve
			for len(leaf.Causes) > 0 {
				leaf = leaf.Causes[0]
			}
			return fmt.Errorf("invalid arguments: %s", leaf.Message)
		}
		return fmt.Errorf("invalid arguments: %s", err)
	}
	return nil
}
