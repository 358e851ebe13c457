// ABOUTME: Headless print mode: run a single tool request and render its response
// ABOUTME: Optional tool-event trace on stderr for verbose runs

package print

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mauromedda/pi-glob/internal/agent"
	"github.com/mauromedda/pi-glob/internal/render"
	"github.com/mauromedda/pi-glob/internal/types"
)

// Dispatcher executes one typed tool request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req types.Request) types.Response
}

// Config configures print mode execution.
type Config struct {
	Renderer *render.Renderer
	Out      io.Writer
}

// Run dispatches req, renders the response to cfg.Out, and returns it so the
// caller can pick an exit status. The error is non-nil only when rendering
// fails; tool failures travel inside the response.
func Run(ctx context.Context, d Dispatcher, cfg Config, req types.Request) (types.Response, error) {
	resp := d.Dispatch(ctx, req)
	if err := cfg.Renderer.Render(cfg.Out, resp); err != nil {
		return resp, fmt.Errorf("rendering response: %w", err)
	}
	return resp, nil
}

// EventPrinter returns an agent.EventFunc that traces tool events to w.
func EventPrinter(w io.Writer) agent.EventFunc {
	return func(ev agent.Event) {
		switch ev.Type {
		case agent.EventToolStart:
			fmt.Fprintf(w, "[tool: %s] %s started\n", ev.ToolName, ev.ToolID)
		case agent.EventToolEnd:
			status := "ok"
			if ev.Response != nil && ev.Response.Error != nil {
				status = string(ev.Response.Error.Code)
			}
			fmt.Fprintf(w, "[tool: %s] %s %s in %s\n", ev.ToolName, ev.ToolID, status, ev.Duration.Round(time.Millisecond))
		case agent.EventError:
			msg := "rejected"
			if ev.Response != nil && ev.Response.Error != nil {
				msg = ev.Response.Error.Error()
			}
			fmt.Fprintf(w, "[tool: %s] %s %s\n", ev.ToolName, ev.ToolID, msg)
		}
	}
}
