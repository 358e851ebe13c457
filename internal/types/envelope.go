// ABOUTME: Request/Response envelopes: {"id","kind","action"} and {"id","kind","observation"|"error"}
// ABOUTME: Hand-written easyjson codecs dispatch the payload on the kind discriminant

package types

import (
	"errors"
	"fmt"

	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

// Request is one tool invocation. Exactly one payload matching Kind is set.
type Request struct {
	ID   string
	Kind ToolKind
	Glob *GlobAction
}

// Response answers a Request. Exactly one of the payload matching Kind or
// Error is set.
type Response struct {
	ID    string
	Kind  ToolKind
	Glob  *GlobObservation
	Error *ToolError
}

// NewGlobRequest builds a glob Request.
func NewGlobRequest(id string, action GlobAction) Request {
	return Request{ID: id, Kind: KindGlob, Glob: &action}
}

// ErrorResponse builds a Response carrying a ToolError.
func ErrorResponse(id string, kind ToolKind, code ErrorCode, msg string) Response {
	return Response{ID: id, Kind: kind, Error: &ToolError{Code: code, Message: msg}}
}

// Validate checks that the payload matches the kind.
func (r Request) Validate() error {
	switch r.Kind {
	case KindGlob:
		if r.Glob == nil {
			return errors.New("glob request without action")
		}
		return nil
	case "":
		return errors.New("request without kind")
	}
	return fmt.Errorf("unknown tool kind %q", r.Kind)
}

// DecodeRequest parses and validates a JSON request envelope. On failure the
// returned request still carries whatever id and kind could be read, so the
// caller can address its error response.
func DecodeRequest(data []byte) (Request, error) {
	var r Request
	if err := easyjson.Unmarshal(data, &r); err != nil {
		return Request{ID: r.ID, Kind: r.Kind}, fmt.Errorf("decoding request: %w", err)
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("decoding request: %w", err)
	}
	return r, nil
}

// EncodeResponse serializes a response envelope.
func EncodeResponse(r Response) ([]byte, error) {
	return easyjson.Marshal(r)
}

// EncodeRequest serializes a request envelope.
func EncodeRequest(r Request) ([]byte, error) {
	return easyjson.Marshal(r)
}

// DecodeResponse parses a JSON response envelope.
func DecodeResponse(data []byte) (Response, error) {
	var r Response
	if err := easyjson.Unmarshal(data, &r); err != nil {
		return Response{}, fmt.Errorf("decoding response: %w", err)
	}
	return r, nil
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r Request) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.String(r.ID)
	w.RawString(`,"kind":`)
	w.String(string(r.Kind))
	if r.Glob != nil {
		w.RawString(`,"action":`)
		r.Glob.MarshalEasyJSON(w)
	}
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (r Request) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(r)
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler. The action payload may
// precede the kind, so it is captured raw and decoded afterwards.
func (r *Request) UnmarshalEasyJSON(l *jlexer.Lexer) {
	var action []byte
	decodeEnvelope(l, &r.ID, &r.Kind, map[string]*[]byte{"action": &action})
	if action == nil || !l.Ok() {
		return
	}
	switch r.Kind {
	case KindGlob:
		var a GlobAction
		if err := easyjson.Unmarshal(action, &a); err != nil {
			l.AddError(err)
			return
		}
		r.Glob = &a
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Request) UnmarshalJSON(data []byte) error {
	return easyjson.Unmarshal(data, r)
}

// MarshalEasyJSON implements easyjson.Marshaler.
func (r Response) MarshalEasyJSON(w *jwriter.Writer) {
	w.RawString(`{"id":`)
	w.String(r.ID)
	w.RawString(`,"kind":`)
	w.String(string(r.Kind))
	switch {
	case r.Error != nil:
		w.RawString(`,"error":`)
		r.Error.MarshalEasyJSON(w)
	case r.Glob != nil:
		w.RawString(`,"observation":`)
		r.Glob.MarshalEasyJSON(w)
	}
	w.RawByte('}')
}

// MarshalJSON implements json.Marshaler.
func (r Response) MarshalJSON() ([]byte, error) {
	return easyjson.Marshal(r)
}

// UnmarshalEasyJSON implements easyjson.Unmarshaler.
func (r *Response) UnmarshalEasyJSON(l *jlexer.Lexer) {
	var obs, toolErr []byte
	decodeEnvelope(l, &r.ID, &r.Kind, map[string]*[]byte{
		"observation": &obs,
		"error":       &toolErr,
	})
	if !l.Ok() {
		return
	}
	if toolErr != nil {
		var e ToolError
		if err := easyjson.Unmarshal(toolErr, &e); err != nil {
			l.AddError(err)
			return
		}
		r.Error = &e
	}
	if obs != nil && r.Kind == KindGlob {
		var o GlobObservation
		if err := easyjson.Unmarshal(obs, &o); err != nil {
			l.AddError(err)
			return
		}
		r.Glob = &o
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Response) UnmarshalJSON(data []byte) error {
	return easyjson.Unmarshal(data, r)
}

// decodeEnvelope reads an object, filling id and kind and capturing the raw
// value of every key listed in payloads. Unknown keys are skipped.
func decodeEnvelope(in *jlexer.Lexer, id *string, kind *ToolKind, payloads map[string]*[]byte) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "id":
			*id = in.String()
		case "kind":
			*kind = ToolKind(in.String())
		default:
			if dst, ok := payloads[key]; ok {
				raw := in.Raw()
				*dst = append([]byte(nil), raw...)
			} else {
				in.SkipRecursive()
			}
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}
