// ABOUTME: Tool argument validation and parsing utilities
// ABOUTME: Validates required parameters and deserialises raw JSON into maps

package agent

import (
	"encoding/json"
	"fmt"
)

// ValidateToolArgs checks that the provided args satisfy the tool's JSON Schema.
// Currently validates required fields and primitive property types; returns
// an error naming the first offending parameter.
func ValidateToolArgs(spec ToolSpec, args map[string]any) error {
	if spec.Parameters == nil {
		return nil
	}

	var schema struct {
		Required   []string `json:"required"`
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(spec.Parameters, &schema); err != nil {
		return fmt.Errorf("parsing tool %s schema: %w", spec.Name, err)
	}

	for _, req := range schema.Required {
		if _, ok := args[req]; !ok {
			return fmt.Errorf("missing required parameter %q for tool %s", req, spec.Name)
		}
	}

	for name, v := range args {
		prop, ok := schema.Properties[name]
		if !ok || prop.Type == "" || v == nil {
			continue
		}
		if !matchesType(prop.Type, v) {
			return fmt.Errorf("parameter %q for tool %s must be of type %s, got %T", name, spec.Name, prop.Type, v)
		}
	}

	return nil
}

// matchesType reports whether a JSON-decoded value has the schema type.
func matchesType(typ string, v any) bool {
	switch typ {
	case "string":
		_, ok := v.(string)
		return ok
	case "boolean":
		_, ok := v.(bool)
		return ok
	case "integer":
		f, ok := v.(float64)
		return ok && f == float64(int64(f))
	case "number":
		_, ok := v.(float64)
		return ok
	case "object":
		_, ok := v.(map[string]any)
		return ok
	case "array":
		_, ok := v.([]any)
		return ok
	}
	return true
}

// ParseToolArgs deserialises raw JSON into a string-keyed map.
// Returns an empty map (not nil) when raw is empty or null.
func ParseToolArgs(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return make(map[string]any), nil
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("parsing tool arguments: %w", err)
	}

	return args, nil
}
