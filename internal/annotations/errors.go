package annotations

import "fmt"

// AnnotationError is returned by the attribute parser and the marker registry
type AnnotationError interface {
	error
	Location() SourceLocation
	Suggestion() string
	Code() ErrorCode
}

type ErrorCode int

const (
	SyntaxErrorCode ErrorCode = iota
	SchemaErrorCode
	RegistrationErrorCode
)

var errorCodeNames = [...]string{"SyntaxError", "SchemaError", "RegistrationError"}

func (e ErrorCode) String() string {
	if e < 0 || int(e) >= len(errorCodeNames) {
		return "UnknownError"
	}
	return errorCodeNames[e]
}

// SyntaxError is an attribute section the grammar rejected
type SyntaxError struct {
	Msg  string
	Loc  SourceLocation
	Hint string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("%s:%d:%d: syntax error: %s", e.Loc.File, e.Loc.Line, e.Loc.Column, e.Msg)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

func (e *SyntaxError) Location() SourceLocation { return e.Loc }
func (e *SyntaxError) Suggestion() string       { return e.Hint }
func (e *SyntaxError) Code() ErrorCode          { return SyntaxErrorCode }

// SchemaError rejects a MarkerSchema before it reaches the registry
type SchemaError struct {
	Msg    string
	Marker Marker
	Hint   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error for %s: %s", e.Marker, e.Msg)
}

func (e *SchemaError) Location() SourceLocation { return SourceLocation{} }
func (e *SchemaError) Suggestion() string       { return e.Hint }
func (e *SchemaError) Code() ErrorCode          { return SchemaErrorCode }

// RegistrationError is a marker or attribute name that conflicts with the registry contents.
// Name is empty when the whole marker was rejected.
type RegistrationError struct {
	Msg    string
	Marker Marker
	Name   string
}

func (e *RegistrationError) Error() string {
	target := e.Marker.String()
	if e.Name != "" {
		target = fmt.Sprintf("%q for %s", e.Name, e.Marker)
	}
	return fmt.Sprintf("cannot register %s: %s", target, e.Msg)
}

func (e *RegistrationError) Location() SourceLocation { return SourceLocation{} }
func (e *RegistrationError) Suggestion() string       { return "" }
func (e *RegistrationError) Code() ErrorCode          { return RegistrationErrorCode }
