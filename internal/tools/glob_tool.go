// ABOUTME: Glob tool: exposes the glob executor through the agent.Tool contract
// ABOUTME: Parses model arguments into a typed action and maps failures to tagged errors

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mauromedda/pi-glob/internal/agent"
	"github.com/mauromedda/pi-glob/internal/types"
)

const globDescription = `Fast file pattern matching tool that works with any codebase size.

Usage:
- Supports glob patterns like "**/*.js" or "src/**/*.ts"
- Returns matching file paths relative to the search directory, newest first
- Use this tool when you need to find files by name patterns

Pattern syntax:
- * matches any characters within one path segment, ? matches one character
- ** as a whole segment matches zero or more directories
- [abc], [a-z], [!a-z] match one character from (or not from) a set
- {a,b} matches either alternative; \ escapes the next character

Results are capped; when "truncated" is true, narrow the pattern or path.`

var globParameters = json.RawMessage(`{
	"type": "object",
	"required": ["pattern"],
	"properties": {
		"pattern": {"type": "string", "description": "Glob pattern matched against paths relative to the search directory"},
		"path":    {"type": "string", "description": "Directory to search (default: workspace root)"}
	}
}`)

// GlobTool adapts a GlobExecutor to the agent.Tool interface.
type GlobTool struct {
	exec *GlobExecutor
}

// NewGlobTool wraps exec.
func NewGlobTool(exec *GlobExecutor) *GlobTool {
	return &GlobTool{exec: exec}
}

// Spec implements agent.Tool.
func (t *GlobTool) Spec() agent.ToolSpec {
	return agent.ToolSpec{
		Kind:        types.KindGlob,
		Name:        "glob",
		Label:       "Glob",
		Description: globDescription,
		Parameters:  globParameters,
		ReadOnly:    true,
	}
}

// ParseRequest implements agent.Tool.
func (t *GlobTool) ParseRequest(id string, args map[string]any) (types.Request, error) {
	if err := agent.ValidateToolArgs(t.Spec(), args); err != nil {
		return types.Request{}, err
	}
	pattern, err := requireStringParam(args, "pattern")
	if err != nil {
		return types.Request{}, err
	}
	path, err := stringParam(args, "path", "")
	if err != nil {
		return types.Request{}, err
	}
	return types.NewGlobRequest(id, types.GlobAction{Pattern: pattern, Path: path}), nil
}

// Invoke implements agent.Tool.
func (t *GlobTool) Invoke(ctx context.Context, req types.Request) types.Response {
	if req.Kind != types.KindGlob || req.Glob == nil {
		return types.ErrorResponse(req.ID, req.Kind, types.CodeInvalidRequest,
			fmt.Sprintf("glob tool cannot handle a %q request", req.Kind))
	}

	obs, err := t.exec.Execute(ctx, *req.Glob)
	if err != nil {
		return errResponse(req.ID, types.KindGlob, err)
	}
	return types.Response{ID: req.ID, Kind: types.KindGlob, Glob: &obs}
}
