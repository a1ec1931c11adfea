package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrSyntax         = errors.New("syntax error")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnresolved     = errors.New("unresolved selector")
	ErrState          = errors.New("invalid state")
	ErrSerialization  = errors.New("serialization error")
	ErrHistory        = errors.New("history exhausted")
	ErrNotFound       = errors.New("not found")
	ErrNotInitialized = errors.New("not initialized")
)

// Pos is a 1-based source location. The zero value means "unknown". File
// is empty for unnamed input.
type Pos struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether the position is unknown.
func (p Pos) IsZero() bool {
	return p.Line == 0
}

func (p Pos) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SyntaxError indicates malformed script text.
type SyntaxError struct {
	Pos     Pos
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Pos, e.Message)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// ValidationError indicates a statically malformed command: unknown command
// or attribute, wrong arity, or a literal of the wrong type.
type ValidationError struct {
	Pos     Pos
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	if e.Pos.IsZero() {
		return msg
	}
	return fmt.Sprintf("%s: %s", e.Pos, msg)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ResolutionError indicates a selector that matched nothing, or matched more
// than the command allows.
type ResolutionError struct {
	Selector  string
	Message   string
	Ambiguous bool
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("selector %s: %s", e.Selector, e.Message)
}

func (e *ResolutionError) Unwrap() error {
	return ErrUnresolved
}

// StateError indicates an edit that would break a palette invariant.
type StateError struct {
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// SerializationError indicates a persisted palette that fails its schema or
// referential integrity checks.
type SerializationError struct {
	Path    string
	Message string
	Err     error
}

func (e *SerializationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return msg
}

func (e *SerializationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSerialization, e.Err}
	}
	return []error{ErrSerialization}
}

// HistoryError reports an undo or redo that ran out of recorded operations.
// It is informational: Performed operations were still applied.
type HistoryError struct {
	Action    string // "undo" or "redo"
	Requested int
	Performed int
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("requested %d %s operations, performed %d", e.Requested, e.Action, e.Performed)
}

func (e *HistoryError) Unwrap() error {
	return ErrHistory
}

// NotFoundError indicates a missing file-backed resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NotInitializedError indicates no swatch workspace was found.
type NotInitializedError struct {
	Path string
}

func (e *NotInitializedError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no palette in %s (run 'swatch new')", e.Path)
	}
	return "no palette found (run 'swatch new')"
}

func (e *NotInitializedError) Unwrap() error {
	return ErrNotInitialized
}

// Helper constructors for common cases

func Syntax(pos Pos, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Invalid(pos Pos, field, message string) error {
	return &ValidationError{Pos: pos, Field: field, Message: message}
}

func Unresolved(selector, message string) error {
	return &ResolutionError{Selector: selector, Message: message}
}

func Ambiguous(selector string, matched int) error {
	return &ResolutionError{
		Selector:  selector,
		Message:   fmt.Sprintf("matched %d cells, expected exactly one", matched),
		Ambiguous: true,
	}
}

func State(format string, args ...any) error {
	return &StateError{Message: fmt.Sprintf(format, args...)}
}

func NameInUse(name string) error {
	return &StateError{Message: fmt.Sprintf("name %q is already in use", name)}
}

func CellNotFound(id int) error {
	return &StateError{Message: fmt.Sprintf("no live cell with id %d", id)}
}

func GroupNotFound(name string) error {
	return &StateError{Message: fmt.Sprintf("no group named %q", name)}
}

func Corrupt(path, format string, args ...any) error {
	return &SerializationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

func FileNotFound(path string) error {
	return &NotFoundError{Resource: "file", ID: path}
}

// IsSyntax checks if an error is a syntax error.
func IsSyntax(err error) bool {
	return errors.Is(err, ErrSyntax)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsResolution checks if an error is a selector resolution error.
func IsResolution(err error) bool {
	return errors.Is(err, ErrUnresolved)
}

// IsState checks if an error is an invariant violation.
func IsState(err error) bool {
	return errors.Is(err, ErrState)
}

// IsSerialization checks if an error is a load/decode integrity error.
func IsSerialization(err error) bool {
	return errors.Is(err, ErrSerialization)
}

// IsHistory checks if an error is a short undo/redo report.
func IsHistory(err error) bool {
	return errors.Is(err, ErrHistory)
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// PosOf extracts the source position carried by err, if any.
func PosOf(err error) (Pos, bool) {
	var syn *SyntaxError
	if errors.As(err, &syn) {
		return syn.Pos, true
	}
	var val *ValidationError
	if errors.As(err, &val) && !val.Pos.IsZero() {
		return val.Pos, true
	}
	return Pos{}, false
}
