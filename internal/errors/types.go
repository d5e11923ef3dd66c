package errors

import (
	"fmt"
	"strings"
)

// CtorError is implemented by every error ctorgen produces. Callers inspect
// the code to tell refactoring diagnostics from host failures.
type CtorError interface {
	error
	ErrorCode() ErrorCode
	Location() SourceLocation
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode classifies a CtorError
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota
	SyntaxErrorCode
	ValidationErrorCode

	// written into the document as a comment
	NoCandidatesErrorCode
	MultiplePublicConstructorsErrorCode
	DuplicateTypeErrorCode

	FileSystemErrorCode
	TemplateErrorCode
	ConfigurationErrorCode
	EditErrorCode
)

var codeNames = map[ErrorCode]string{
	SyntaxErrorCode:                     "SyntaxError",
	ValidationErrorCode:                 "ValidationError",
	NoCandidatesErrorCode:               "NoCandidates",
	MultiplePublicConstructorsErrorCode: "MultiplePublicConstructors",
	DuplicateTypeErrorCode:              "DuplicateType",
	FileSystemErrorCode:                 "FileSystemError",
	TemplateErrorCode:                   "TemplateError",
	ConfigurationErrorCode:              "ConfigurationError",
	EditErrorCode:                       "EditError",
}

func (e ErrorCode) String() string {
	if name, ok := codeNames[e]; ok {
		return name
	}
	return "UnknownError"
}

// IsDiagnostic reports whether the code is surfaced inside the document
// rather than as a failure of the run
func (e ErrorCode) IsDiagnostic() bool {
	return e >= NoCandidatesErrorCode && e <= DuplicateTypeErrorCode
}

// SourceLocation points at a position in a source file. Line and Column are 1-based, zero when unknown.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (s SourceLocation) String() string {
	switch {
	case s.File == "":
		return "unknown location"
	case s.Line == 0:
		return s.File
	case s.Column == 0:
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
}

// IsEmpty is true when no file is known
func (s SourceLocation) IsEmpty() bool {
	return s.File == ""
}

// BaseError is the CtorError used throughout the module. The With* setters
// return the receiver so errors can be built in one expression.
type BaseError struct {
	Code        ErrorCode
	Message     string
	Loc         SourceLocation
	Cause       error
	ContextData map[string]interface{}
	Hints       []string
}

func (e *BaseError) Error() string {
	var b strings.Builder
	if !e.Loc.IsEmpty() {
		b.WriteString(e.Loc.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *BaseError) ErrorCode() ErrorCode     { return e.Code }
func (e *BaseError) Location() SourceLocation { return e.Loc }
func (e *BaseError) Suggestions() []string    { return e.Hints }
func (e *BaseError) Unwrap() error            { return e.Cause }

// Context never returns nil
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return map[string]interface{}{}
	}
	return e.ContextData
}

func (e *BaseError) WithLocation(loc SourceLocation) *BaseError {
	e.Loc = loc
	return e
}

func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = map[string]interface{}{}
	}
	e.ContextData[key] = value
	return e
}

// WithHint appends suggestions shown to the user alongside the error
func (e *BaseError) WithHint(hints ...string) *BaseError {
	e.Hints = append(e.Hints, hints...)
	return e
}

func New(code ErrorCode, message string) *BaseError {
	return &BaseError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap is New with a cause attached
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return New(code, message).WithCause(cause)
}

// MultipleErrors collects failures that did not stop a run, such as source
// files that could not be parsed during a batch.
type MultipleErrors struct {
	Errors []CtorError
}

func NewMultipleErrors() *MultipleErrors {
	return &MultipleErrors{}
}

func (e *MultipleErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	}

	lines := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		lines[i] = fmt.Sprintf("  %d. %s", i+1, err)
	}
	return fmt.Sprintf("multiple errors (%d total):\n%s", len(e.Errors), strings.Join(lines, "\n"))
}

func (e *MultipleErrors) Add(err CtorError) {
	e.Errors = append(e.Errors, err)
}

func (e *MultipleErrors) IsEmpty() bool { return len(e.Errors) == 0 }
func (e *MultipleErrors) Count() int    { return len(e.Errors) }

// ErrOrNil returns e as an error, or nil when nothing was collected
func (e *MultipleErrors) ErrOrNil() error {
	if e == nil || e.IsEmpty() {
		return nil
	}
	return e
}

// Unwrap exposes every collected error to Is and As
func (e *MultipleErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}
