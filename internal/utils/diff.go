package utils

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff renders the changes between two versions of a file. It returns
// an empty string when the texts are equal.
func UnifiedDiff(path, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
}
