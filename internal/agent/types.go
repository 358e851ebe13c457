// ABOUTME: Tool capability contract: ToolSpec, the Tool interface, and tool lifecycle events
// ABOUTME: Runtime-agnostic; a conversation driver consumes tools only through these types

package agent

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mauromedda/pi-glob/internal/types"
)

// ToolSpec describes a tool to the model and to the dispatcher.
type ToolSpec struct {
	Kind        types.ToolKind
	Name        string
	Label       string
	Description string
	Parameters  json.RawMessage // JSON Schema of the arguments object
	ReadOnly    bool
}

// Tool is a capability the agent can invoke. Implementations must be safe
// for concurrent use and keep no per-call state between invocations.
type Tool interface {
	// Spec returns the static description of the tool.
	Spec() ToolSpec
	// ParseRequest builds a typed request from model-provided arguments.
	ParseRequest(id string, args map[string]any) (types.Request, error)
	// Invoke runs the request. Failures are reported inside the Response,
	// never as a Go error, so every call yields something serializable.
	Invoke(ctx context.Context, req types.Request) types.Response
}

// EventType identifies the kind of tool event.
type EventType int

const (
	EventToolStart EventType = iota // Tool execution began
	EventToolEnd                    // Tool execution completed (possibly with a tool error)
	EventError                      // Request could not be routed or parsed
)

func (t EventType) String() string {
	switch t {
	case EventToolStart:
		return "tool_start"
	case EventToolEnd:
		return "tool_end"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is emitted once per lifecycle step of a tool call.
type Event struct {
	Type     EventType
	ToolID   string
	ToolName string
	Response *types.Response // set on EventToolEnd and EventError
	Duration time.Duration   // set on EventToolEnd
}

// EventFunc receives tool events. It is called synchronously on the
// dispatching goroutine.
type EventFunc func(Event)
