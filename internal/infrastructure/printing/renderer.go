// Package printing renders purchase receipts to PDF using headless Chrome.
package printing

import (
	"context"
	"fmt"
)

// PDFRenderer converts an HTML document into PDF bytes.
type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Render error codes
const (
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
)

// RenderError describes a failed render attempt.
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a RenderError.
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}
