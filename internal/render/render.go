// ABOUTME: Output rendering of tool responses as styled text, JSON, or YAML
// ABOUTME: Text mode truncates long paths from the left to fit the terminal width

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"gopkg.in/yaml.v3"

	"github.com/mauromedda/pi-glob/internal/types"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, or yaml)", s)
}

// Options configures a Renderer.
type Options struct {
	Format Format
	// Color enables ANSI styling in text mode.
	Color bool
	// Width truncates text-mode paths to this many cells. Zero disables.
	Width int
}

type styles struct {
	header lipgloss.Style
	path   lipgloss.Style
	note   lipgloss.Style
	err    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{header: plain, path: plain, note: plain, err: plain}
	}
	return styles{
		header: lipgloss.NewStyle().Bold(true),
		path:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		note:   lipgloss.NewStyle().Faint(true),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Renderer writes responses in one format. Safe for concurrent use as long
// as callers serialize writes to the same writer.
type Renderer struct {
	format Format
	width  int
	st     styles
}

// New creates a Renderer. An empty Format means text.
func New(opts Options) (*Renderer, error) {
	f := opts.Format
	if f == "" {
		f = FormatText
	}
	if _, err := ParseFormat(string(f)); err != nil {
		return nil, err
	}
	return &Renderer{format: f, width: opts.Width, st: newStyles(opts.Color)}, nil
}

// Render writes resp to w followed by a newline.
func (r *Renderer) Render(w io.Writer, resp types.Response) error {
	switch r.format {
	case FormatJSON:
		data, err := types.EncodeResponse(resp)
		if err != nil {
			return fmt.Errorf("encoding response: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case FormatYAML:
		return r.renderYAML(w, resp)
	}
	return r.renderText(w, resp)
}

// yamlResponse mirrors the JSON envelope field names.
type yamlResponse struct {
	ID          string                 `yaml:"id,omitempty"`
	Kind        types.ToolKind         `yaml:"kind,omitempty"`
	Observation *types.GlobObservation `yaml:"observation,omitempty"`
	Error       *types.ToolError       `yaml:"error,omitempty"`
}

func (r *Renderer) renderYAML(w io.Writer, resp types.Response) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlResponse{ID: resp.ID, Kind: resp.Kind, Observation: resp.Glob, Error: resp.Error}); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return enc.Close()
}

func (r *Renderer) renderText(w io.Writer, resp types.Response) error {
	var b strings.Builder

	switch {
	case resp.Error != nil:
		fmt.Fprintf(&b, "%s %s\n", r.st.err.Render("error ["+string(resp.Error.Code)+"]:"), resp.Error.Message)
	case resp.Glob != nil:
		obs := resp.Glob
		noun := "files"
		if obs.TotalConsidered == 1 {
			noun = "file"
		}
		header := fmt.Sprintf("%d %s matching %q in %s", obs.TotalConsidered, noun, obs.Pattern, obs.SearchPath)
		b.WriteString(r.st.header.Render(header))
		b.WriteByte('\n')
		for _, m := range obs.Matches {
			b.WriteString(r.st.path.Render(TruncateLeft(m, r.width)))
			b.WriteByte('\n')
		}
		if obs.Truncated {
			b.WriteString(r.st.note.Render(fmt.Sprintf("(showing the %d most recent of %d; narrow the pattern or path)", len(obs.Matches), obs.TotalConsidered)))
			b.WriteByte('\n')
		}
		if obs.Skipped > 0 {
			b.WriteString(r.st.note.Render(fmt.Sprintf("(%d unreadable entries skipped)", obs.Skipped)))
			b.WriteByte('\n')
		}
	default:
		b.WriteString(r.st.err.Render("error:") + " empty response\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ellipsis prefixes paths shortened by TruncateLeft.
const ellipsis = "…"

// TruncateLeft shortens s to at most maxWidth display cells by dropping
// grapheme clusters from the start, keeping the file name visible. A
// maxWidth below 1 returns s unchanged.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth < 1 || runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}

	budget := maxWidth - runewidth.StringWidth(ellipsis)
	used := 0
	i := len(clusters)
	for i > 0 {
		cw := runewidth.StringWidth(clusters[i-1])
		if used+cw > budget {
			break
		}
		used += cw
		i--
	}
	return ellipsis + strings.Join(clusters[i:], "")
}
