// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package projector

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	certsSchemaFile   = "schemas/certs.json"
	keyIDsSchemaFile  = "schemas/key_ids.json"
	revokedSchemaFile = "schemas/revoked.json"
)

// loadSchemaDocument reads an embedded schema as a generic document so it
// can be completed with configured field names before compiling.
func loadSchemaDocument(name string) (map[string]any, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	return doc, nil
}

func compileSchema(doc map[string]any) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// certsSchema requires every record to carry a string key identifier
// under keyIDField.
func certsSchema(keyIDField string) (*gojsonschema.Schema, error) {
	doc, err := loadSchemaDocument(certsSchemaFile)
	if err != nil {
		return nil, err
	}

	items, ok := doc["items"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema %s: items is not an object", certsSchemaFile)
	}
	items["required"] = []any{keyIDField}
	items["properties"] = map[string]any{
		keyIDField: map[string]any{"type": "string"},
	}

	return compileSchema(doc)
}

func staticSchema(name string) (*gojsonschema.Schema, error) {
	doc, err := loadSchemaDocument(name)
	if err != nil {
		return nil, err
	}
	return compileSchema(doc)
}

// validateField checks the value stored under field against schema.
func validateField(schema *gojsonschema.Schema, payload map[string]any, field string) error {
	value, ok := payload[field]
	if !ok {
		return fmt.Errorf("%w: field %q is missing", ErrPayloadShape, field)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return fmt.Errorf("%w: field %q: %w", ErrPayloadShape, field, err)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("%w: field %q: %s", ErrPayloadShape, field, strings.Join(violations, "; "))
}
