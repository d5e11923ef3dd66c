package cli

import (
	"regexp"
	"strings"
)

// diagnosticComment matches a comment written by a failed regeneration
var diagnosticComment = regexp.MustCompile(`//Can't regenerate constructor,[^\r\n]*(\r?\n)?`)

// Cleaner removes diagnostic comments left in documents by earlier runs
type Cleaner struct{}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// StripDiagnostics returns text without diagnostic comments and the number
// removed. A comment on a line of its own is removed with its line break; a
// comment trailing code, like the one after a class's opening brace, leaves
// the line break in place.
func (c *Cleaner) StripDiagnostics(text string) (string, int) {
	var b strings.Builder
	removed, last := 0, 0

	for _, loc := range diagnosticComment.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if loc[2] >= 0 && !ownLine(text, start) {
			end = loc[2]
		}
		if ownLine(text, start) {
			start = lineStart(text, start)
		}
		b.WriteString(text[last:start])
		last = end
		removed++
	}

	if removed == 0 {
		return text, 0
	}
	b.WriteString(text[last:])
	return b.String(), removed
}

func ownLine(text string, off int) bool {
	return strings.TrimSpace(text[lineStart(text, off):off]) == ""
}

func lineStart(text string, off int) int {
	return strings.LastIndexByte(text[:off], '\n') + 1
}
