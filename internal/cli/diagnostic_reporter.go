package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/refactoring"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return NewDiagnosticReporterWithWriter(verbose, os.Stderr)
}

// NewDiagnosticReporterWithWriter creates a reporter writing to out
func NewDiagnosticReporterWithWriter(verbose bool, out io.Writer) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportWarning prints a one-line warning
func (r *DiagnosticReporter) ReportWarning(message string) {
	orange := color.New(color.FgYellow, color.Bold)
	orange.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
}

// ReportDiagnostic prints why a class of path could not be regenerated
func (r *DiagnosticReporter) ReportDiagnostic(path string, outcome refactoring.ClassOutcome) {
	r.ReportWarning(fmt.Sprintf("%s:%d: %s: %s", path, outcome.Line, outcome.Class, outcome.Message))
}

// ReportError provides comprehensive error reporting with user-friendly output
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Constructor Generation Failed\n")
	fmt.Fprintf(r.out, "====================================\n\n")

	var multi *errors.MultipleErrors
	if errors.As(err, &multi) {
		fmt.Fprintf(r.out, "%d files could not be processed\n\n", multi.Count())
		for _, e := range multi.Errors {
			r.reportCtorError(e, e)
		}
		return
	}

	var ctorErr errors.CtorError
	if errors.As(err, &ctorErr) {
		r.reportCtorError(ctorErr, err)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}
}

// reportCtorError reports an error with its code, location, context and suggestions
func (r *DiagnosticReporter) reportCtorError(ctorErr errors.CtorError, full error) {
	r.printErrorHeader(ctorErr.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", full.Error())

	if loc := ctorErr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc)
	}

	if ctx := ctorErr.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if suggestions := ctorErr.Suggestions(); len(suggestions) > 0 {
		r.printSuggestions(suggestions)
	}

	r.printAdditionalHelp(ctorErr.ErrorCode())

	if r.verbose {
		r.printErrorChain(ctorErr.Unwrap())
	}
}

// printErrorHeader prints a formatted error header based on the error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.SyntaxErrorCode:
		title = "Syntax Error"
	case errors.ValidationErrorCode:
		title = "Validation Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.TemplateErrorCode:
		title = "Template Error"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	case errors.EditErrorCode:
		title = "Edit Error"
	default:
		if code.IsDiagnostic() {
			title = "Refactoring Diagnostic"
		} else {
			title = "Unknown Error"
		}
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context information sorted by key
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		fmt.Fprintf(r.out, "   %s: %v\n", r.formatContextKey(key), context[key])
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey converts snake_case keys to Title Case
func (r *DiagnosticReporter) formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		lines := strings.Split(suggestion, "\n")
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, lines[0])
		for _, line := range lines[1:] {
			if strings.TrimSpace(line) != "" {
				fmt.Fprintf(r.out, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on the error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "Parsing Help:\n")
		fmt.Fprintf(r.out, "  - Make sure the file compiles; braces and parentheses must balance\n")
		fmt.Fprintf(r.out, "  - Attribute arguments must be closed on the same section\n\n")

	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "Configuration Help:\n")
		fmt.Fprintf(r.out, "  - Run with -print-config to see the effective configuration\n")
		fmt.Fprintf(r.out, "  - CTORGEN_* environment variables override %s\n\n", ".ctorgen.yaml")
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with -verbose for more detailed output\n")
}

// printErrorChain prints the wrapped causes in verbose mode
func (r *DiagnosticReporter) printErrorChain(err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(r.out, "\nError Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "  %d. %s\n", level, err.Error())
		err = errors.Unwrap(err)
		level++
	}
}
