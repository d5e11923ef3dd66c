package errors

import (
	stderrors "errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Unwrap returns the next error in err's chain, or nil
func Unwrap(err error) error {
	return stderrors.Unwrap(err)
}

// HasCode returns true if err's chain contains a CtorError with the given code
func HasCode(err error, code ErrorCode) bool {
	var ctorErr CtorError
	if !As(err, &ctorErr) {
		return false
	}
	return ctorErr.ErrorCode() == code
}

// WrapParseError wraps a failure to parse a source file
func WrapParseError(file string, loc SourceLocation, cause error) *BaseError {
	return Wrap(SyntaxErrorCode, fmt.Sprintf("failed to parse %s", file), cause).
		WithLocation(loc).
		WithContext("file", file)
}

// WrapFileSystemError wraps file system related errors
func WrapFileSystemError(operation, path string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s file '%s'", operation, path)
	return Wrap(FileSystemErrorCode, message, cause).
		WithContext("operation", operation).
		WithContext("path", path)
}

// WrapTemplateError wraps template processing errors
func WrapTemplateError(templateName, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s template '%s'", operation, templateName)
	return Wrap(TemplateErrorCode, message, cause).
		WithContext("template", templateName)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapEditError wraps a failure to commit text edits to a document
func WrapEditError(file string, cause error) *BaseError {
	return Wrap(EditErrorCode, fmt.Sprintf("failed to apply edits to %s", file), cause).
		WithContext("file", file)
}

// ValidationError creates a validation error for a single field
func ValidationError(field, expected, actual string) *BaseError {
	message := fmt.Sprintf("invalid value for '%s': expected %s, got %s", field, expected, actual)
	return New(ValidationErrorCode, message).
		WithContext("field", field)
}
