// ABOUTME: Tests for the glob tool adapter: spec metadata, argument parsing, error mapping
// ABOUTME: Every invocation must yield either an observation or a tagged error

package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mauromedda/pi-glob/internal/types"
)

func TestGlobTool_Spec(t *testing.T) {
	t.Parallel()

	spec := NewGlobTool(newTestExecutor(t.TempDir(), 0)).Spec()
	if spec.Name != "glob" || spec.Kind != types.KindGlob || !spec.ReadOnly {
		t.Errorf("spec = %+v", spec)
	}
	var schema map[string]any
	if err := json.Unmarshal(spec.Parameters, &schema); err != nil {
		t.Fatalf("parameters are not valid JSON: %v", err)
	}
	if schema["type"] != "object" {
		t.Errorf("schema type = %v", schema["type"])
	}
}

func TestGlobTool_ParseRequest(t *testing.T) {
	t.Parallel()

	tool := NewGlobTool(newTestExecutor(t.TempDir(), 0))

	req, err := tool.ParseRequest("c1", map[string]any{"pattern": "**/*.go", "path": "src"})
	if err != nil {
		t.Fatal(err)
	}
	if req.ID != "c1" || req.Kind != types.KindGlob || req.Glob.Pattern != "**/*.go" || req.Glob.Path != "src" {
		t.Errorf("request = %+v / %+v", req, req.Glob)
	}

	req, err = tool.ParseRequest("c2", map[string]any{"pattern": "*", "path": nil})
	if err != nil || req.Glob.Path != "" {
		t.Errorf("null path: %+v, %v", req.Glob, err)
	}

	for name, args := range map[string]map[string]any{
		"missing pattern": {"path": "x"},
		"numeric pattern": {"pattern": 3.0},
		"numeric path":    {"pattern": "*", "path": 1.0},
	} {
		if _, err := tool.ParseRequest("bad", args); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGlobTool_Invoke(t *testing.T) {
	t.Parallel()

	ws := setupTree(t, map[string]int{"a/b.log": 1, "a/c.log": 2})
	tool := NewGlobTool(newTestExecutor(ws, 0))

	tests := []struct {
		name     string
		req      types.Request
		wantCode types.ErrorCode
	}{
		{"observation", types.NewGlobRequest("r1", types.GlobAction{Pattern: "**/*.log"}), ""},
		{"invalid pattern", types.NewGlobRequest("r2", types.GlobAction{Pattern: "a[b"}), types.CodeInvalidPattern},
		{"path not found", types.NewGlobRequest("r3", types.GlobAction{Pattern: "*", Path: "zzz"}), types.CodePathNotFound},
		{"missing payload", types.Request{ID: "r4", Kind: types.KindGlob}, types.CodeInvalidRequest},
		{"wrong kind", types.Request{ID: "r5", Kind: "grep"}, types.CodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			resp := tool.Invoke(context.Background(), tt.req)
			if resp.ID != tt.req.ID {
				t.Errorf("ID = %q, want %q", resp.ID, tt.req.ID)
			}
			if (resp.Glob == nil) == (resp.Error == nil) {
				t.Fatalf("response must carry exactly one of observation or error: %+v", resp)
			}
			if tt.wantCode == "" {
				if resp.Error != nil {
					t.Fatalf("unexpected error: %v", resp.Error)
				}
				if len(resp.Glob.Matches) != 2 || resp.Glob.Matches[0] != "a/c.log" {
					t.Errorf("Matches = %v", resp.Glob.Matches)
				}
				return
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestGlobTool_InvokeCancelled(t *testing.T) {
	t.Parallel()

	tool := NewGlobTool(newTestExecutor(t.TempDir(), 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := tool.Invoke(ctx, types.NewGlobRequest("c", types.GlobAction{Pattern: "*"}))
	if resp.Error == nil || resp.Error.Code != types.CodeCancelled {
		t.Errorf("response = %+v, want cancelled", resp)
	}
}
