package tplcmp

import (
	"errors"
	"fmt"
)

// Sentinel errors for render operations.
var (
	ErrUnknownComponent     = errors.New("tplcmp: unknown component")
	ErrUnknownTag           = errors.New("tplcmp: no handler registered for tag")
	ErrFillOutsideComponent = errors.New("tplcmp: fill tag outside a component body")
)

// SyntaxError reports a malformed template at compile time: bad argument
// lists, unterminated tags, positional-after-keyword. Syntax errors are
// always fatal and carry the source position of the offending token.
type SyntaxError struct {
	Msg string
	Pos Position
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("tplcmp: syntax error at %s: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos Position, format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// CompositionError reports a structural failure while resolving fills to
// slots: a doubly-filled slot, conflicting default content, an unfilled
// required slot. Composition errors are fatal to the render call and are
// never silently dropped.
type CompositionError struct {
	Component string // component being rendered, if known
	Slot      string // slot or fill name involved, if any
	Msg       string
}

func (e *CompositionError) Error() string {
	s := "tplcmp: " + e.Msg
	if e.Component != "" {
		s += fmt.Sprintf(" (component %q)", e.Component)
	}
	return s
}

func compositionErrorf(component, slot, format string, args ...any) *CompositionError {
	return &CompositionError{
		Component: component,
		Slot:      slot,
		Msg:       fmt.Sprintf(format, args...),
	}
}

// ValidationError reports component inputs that do not match the declared
// props shape. Field names the offending input.
type ValidationError struct {
	Component string
	Field     string
	Msg       string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tplcmp: invalid props for component %q: field %q: %s",
		e.Component, e.Field, e.Msg)
}

// HookError wraps an error raised by a user-supplied lifecycle hook or
// extension. Hook holds the extension point name ("before_render",
// "finalize", ...).
type HookError struct {
	Component string
	Hook      string
	Err       error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("tplcmp: %s hook failed for component %q: %v", e.Hook, e.Component, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// IsSyntaxError checks if err is a template syntax error.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsCompositionError checks if err is a slot/fill composition error.
func IsCompositionError(err error) bool {
	var ce *CompositionError
	return errors.As(err, &ce)
}

// IsValidationError checks if err is a props validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
