// ABOUTME: Tool-layer sentinel errors and their mapping to wire error codes
// ABOUTME: Classification uses errors.Is so wrapped causes keep their context

package tools

import (
	"context"
	"errors"

	"github.com/mauromedda/pi-glob/internal/glob"
	"github.com/mauromedda/pi-glob/internal/types"
)

var (
	// ErrPathNotFound means the search base does not exist or is not a directory.
	ErrPathNotFound = errors.New("path not found")
	// ErrCancelled means the search was stopped by its context. The context
	// error is wrapped alongside it.
	ErrCancelled = errors.New("search cancelled")
)

// errorCode maps an executor error to its wire code.
func errorCode(err error) types.ErrorCode {
	switch {
	case errors.Is(err, glob.ErrInvalidPattern):
		return types.CodeInvalidPattern
	case errors.Is(err, ErrPathNotFound):
		return types.CodePathNotFound
	case errors.Is(err, ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return types.CodeCancelled
	}
	return types.CodeInternal
}
