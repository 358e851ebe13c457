// ABOUTME: Wire payloads for tool calls: kind discriminant, glob action/observation, tagged errors
// ABOUTME: Closed set of kinds enumerated at compile time; payload codecs are easyjson-generated

//go:generate easyjson tool.go

package types

// ToolKind discriminates the request/response variants.
type ToolKind string

// KindGlob is the file glob search tool.
const KindGlob ToolKind = "glob"

// Kinds returns every known tool kind.
func Kinds() []ToolKind {
	return []ToolKind{KindGlob}
}

// Valid reports whether k is a known kind.
func (k ToolKind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// GlobAction asks for files matching Pattern under Path.
// An empty Path means the workspace root.
//
//easyjson:json
type GlobAction struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
}

// GlobObservation is the result of a glob search.
//
//easyjson:json
type GlobObservation struct {
	Pattern    string   `json:"pattern" yaml:"pattern"`
	SearchPath string   `json:"search_path" yaml:"search_path"`
	Matches    []string `json:"matches" yaml:"matches"` // newest first
	Truncated  bool     `json:"truncated" yaml:"truncated"`
	// TotalConsidered counts every match before truncation.
	TotalConsidered int `json:"total_considered" yaml:"total_considered"`
	// Skipped counts entries that could not be read during the walk.
	Skipped int `json:"skipped" yaml:"skipped"`
}

// ErrorCode tags a tool failure.
type ErrorCode string

const (
	CodeInvalidPattern ErrorCode = "invalid_pattern"
	CodePathNotFound   ErrorCode = "path_not_found"
	CodeCancelled      ErrorCode = "cancelled"
	CodeInvalidRequest ErrorCode = "invalid_request"
	CodeUnknownTool    ErrorCode = "unknown_tool"
	CodeInternal       ErrorCode = "internal"
)

// ToolError is a tagged failure returned instead of an observation.
//
//easyjson:json
type ToolError struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Message string    `json:"message" yaml:"message"`
}

func (e *ToolError) Error() string {
	return string(e.Code) + ": " + e.Message
}
