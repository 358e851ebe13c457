// ABOUTME: Tool registry: stores tools, routes requests by kind or name, emits tool events
// ABOUTME: Unknown tool names get fuzzy "did you mean" suggestions

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/mauromedda/pi-glob/internal/agent"
	"github.com/mauromedda/pi-glob/internal/config"
	"github.com/mauromedda/pi-glob/internal/log"
	"github.com/mauromedda/pi-glob/internal/types"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Registry manages the collection of available tools. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]agent.Tool
	log   *log.Logger

	// OnEvent, when set, receives start/end/error events for every call.
	// Set it before dispatching.
	OnEvent agent.EventFunc
}

// NewRegistry creates a Registry with the built-in tools configured from cfg.
// A nil cfg uses config.Defaults().
func NewRegistry(cfg *config.Settings, logger *log.Logger) *Registry {
	if cfg == nil {
		cfg = config.Defaults()
	}
	r := &Registry{
		tools: make(map[string]agent.Tool),
		log:   logger,
	}
	r.Register(NewGlobTool(NewGlobExecutor(GlobOptionsFrom(cfg), logger)))
	return r
}

// GlobOptionsFrom maps settings onto executor options.
func GlobOptionsFrom(cfg *config.Settings) GlobOptions {
	return GlobOptions{
		Workspace:      cfg.Workspace,
		MaxResults:     cfg.MaxResults,
		Workers:        cfg.Workers,
		FollowSymlinks: cfg.FollowSymlinks,
		SkipDirs:       cfg.SkipDirs,
		Timeout:        cfg.Timeout,
	}
}

// Register adds a tool, replacing any existing tool with the same name.
func (r *Registry) Register(tool agent.Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[tool.Spec().Name] = tool
}

// Get returns a tool by name, or nil if not found.
func (r *Registry) Get(name string) agent.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tools[name]
}

// All returns every registered tool sorted by name.
func (r *Registry) All() []agent.Tool {
	r.mu.RLock()
	out := make([]agent.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b agent.Tool) int {
		return strings.Compare(a.Spec().Name, b.Spec().Name)
	})
	return out
}

// Specs returns the spec of every registered tool sorted by name.
func (r *Registry) Specs() []agent.ToolSpec {
	all := r.All()
	out := make([]agent.ToolSpec, len(all))
	for i, t := range all {
		out[i] = t.Spec()
	}
	return out
}

// Remove deletes a tool by name.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// byKind returns the tool serving kind, or nil.
func (r *Registry) byKind(kind types.ToolKind) agent.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.tools {
		if t.Spec().Kind == kind {
			return t
		}
	}
	return nil
}

// Dispatch routes a typed request to the tool serving its kind. The returned
// response always carries either an observation or a tagged error.
func (r *Registry) Dispatch(ctx context.Context, req types.Request) types.Response {
	tool := r.byKind(req.Kind)
	if tool != nil || req.Kind == "" {
		if err := req.Validate(); err != nil {
			return r.fail(req.ID, "", types.ErrorResponse(req.ID, req.Kind, types.CodeInvalidRequest, err.Error()))
		}
	}
	if tool == nil {
		return r.fail(req.ID, "", types.ErrorResponse(req.ID, req.Kind, types.CodeUnknownTool,
			fmt.Sprintf("no tool registered for kind %q", req.Kind)))
	}
	return r.invoke(ctx, tool, req)
}

// Call is the model-facing entry point: a tool name plus raw JSON arguments.
func (r *Registry) Call(ctx context.Context, name, id string, raw json.RawMessage) types.Response {
	tool := r.Get(name)
	if tool == nil {
		msg := fmt.Sprintf("unknown tool %q", name)
		if s := r.suggest(name); len(s) > 0 {
			msg += "; did you mean " + strings.Join(s, ", ") + "?"
		}
		return r.fail(id, name, types.ErrorResponse(id, "", types.CodeUnknownTool, msg))
	}

	spec := tool.Spec()
	args, err := agent.ParseToolArgs(raw)
	if err != nil {
		return r.fail(id, name, types.ErrorResponse(id, spec.Kind, types.CodeInvalidRequest, err.Error()))
	}
	req, err := tool.ParseRequest(id, args)
	if err != nil {
		return r.fail(id, name, types.ErrorResponse(id, spec.Kind, types.CodeInvalidRequest, err.Error()))
	}
	return r.invoke(ctx, tool, req)
}

func (r *Registry) invoke(ctx context.Context, tool agent.Tool, req types.Request) types.Response {
	name := tool.Spec().Name
	r.emit(agent.Event{Type: agent.EventToolStart, ToolID: req.ID, ToolName: name})

	start := time.Now()
	resp := tool.Invoke(ctx, req)
	elapsed := time.Since(start)

	if resp.Error != nil {
		r.log.Debug("tool %s (%s) failed after %s: %s", name, req.ID, elapsed.Round(time.Millisecond), resp.Error)
	}
	r.emit(agent.Event{Type: agent.EventToolEnd, ToolID: req.ID, ToolName: name, Response: &resp, Duration: elapsed})
	return resp
}

// fail emits an error event for a request that never reached a tool.
func (r *Registry) fail(id, name string, resp types.Response) types.Response {
	r.log.Warn("tool call %s rejected: %s", id, resp.Error)
	r.emit(agent.Event{Type: agent.EventError, ToolID: id, ToolName: name, Response: &resp})
	return resp
}

func (r *Registry) emit(ev agent.Event) {
	if r.OnEvent != nil {
		r.OnEvent(ev)
	}
}

// suggest returns registered names that fuzzily match name, best first.
func (r *Registry) suggest(name string) []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.tools))
	for n := range r.tools {
		names = append(names, n)
	}
	r.mu.RUnlock()
	slices.Sort(names)

	var out []string
	for _, m := range fuzzy.Find(name, names) {
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
