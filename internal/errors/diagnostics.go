package errors

import (
	"strings"
)

// DiagnosticTarget says where a diagnostic comment is anchored
type DiagnosticTarget int

const (
	// ClassDiagnostic is written after the class's opening brace
	ClassDiagnostic DiagnosticTarget = iota
	// ConstructorDiagnostic is written above the chosen constructor
	ConstructorDiagnostic
)

// DiagnosticError is a soft failure of the refactoring. It never reaches the
// host as an error; it is turned into a single explanatory comment instead.
type DiagnosticError struct {
	*BaseError
	Target    DiagnosticTarget
	Offenders []string // member names sharing a type, in declaration order
}

// NewNoCandidatesError reports a class without injectable members
func NewNoCandidatesError() *DiagnosticError {
	return &DiagnosticError{
		BaseError: New(NoCandidatesErrorCode, "no candidate members found").
			WithHint("mark members with [InjectedDependency] or declare readonly fields"),
		Target: ClassDiagnostic,
	}
}

// NewMultiplePublicConstructorsError reports an ambiguous constructor choice
func NewMultiplePublicConstructorsError() *DiagnosticError {
	return &DiagnosticError{
		BaseError: New(MultiplePublicConstructorsErrorCode, "type contains multiple public constructors").
			WithHint("mark one constructor with [DependencyInjectionConstructor]"),
		Target: ClassDiagnostic,
	}
}

// NewDuplicateTypeError reports injectables that share a type
func NewDuplicateTypeError(offenders []string, target DiagnosticTarget) *DiagnosticError {
	err := &DiagnosticError{
		BaseError: New(DuplicateTypeErrorCode, OffenderList(offenders)+" have the same type").
			WithHint("exclude all but one member with [ExcludeFromInjectedDependencies]"),
		Target:    target,
		Offenders: append([]string(nil), offenders...),
	}
	err.WithContext("offenders", err.Offenders)
	return err
}

// OffenderList joins member names the way diagnostics print them
func OffenderList(names []string) string {
	return strings.Join(names, ",")
}

// AsDiagnostic extracts a DiagnosticError from an error chain
func AsDiagnostic(err error) (*DiagnosticError, bool) {
	var diag *DiagnosticError
	if As(err, &diag) {
		return diag, true
	}
	return nil, false
}
