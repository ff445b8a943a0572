package printing

import "fmt"

// Render error codes
const (
	ErrCodeInvalidTemplate = "INVALID_TEMPLATE"
	ErrCodeRenderFailed    = "RENDER_FAILED"
)

// RenderError describes a template rendering failure
type RenderError struct {
	Code    string
	Message string
	Err     error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a render error with an optional cause
func NewRenderError(code, message string, err error) *RenderError {
	return &RenderError{Code: code, Message: message, Err: err}
}
