package utils

import "fmt"

// WrapProcessError wraps an error with a "failed to process" message
func WrapProcessError(item string, err error) error {
	return fmt.Errorf("failed to process %s: %w", item, err)
}

// WrapWriteError wraps an error with a "failed to write" message
func WrapWriteError(item string, err error) error {
	return fmt.Errorf("failed to write %s: %w", item, err)
}
