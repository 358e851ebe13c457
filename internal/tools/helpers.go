// ABOUTME: Shared helpers for tool parameter extraction and error responses
// ABOUTME: Type-safe accessors over JSON-decoded argument maps

package tools

import (
	"fmt"

	"github.com/mauromedda/pi-glob/internal/types"
)

// requireStringParam extracts a required string parameter from the args map.
func requireStringParam(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// stringParam extracts an optional string parameter with a default value.
// A present value of the wrong type is an error rather than silently ignored.
func stringParam(params map[string]any, key, defaultVal string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return defaultVal, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q must be a string, got %T", key, v)
	}
	return s, nil
}

// errResponse builds a tagged error response, classifying err.
func errResponse(id string, kind types.ToolKind, err error) types.Response {
	return types.ErrorResponse(id, kind, errorCode(err), err.Error())
}
