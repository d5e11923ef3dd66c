package models

import (
	"fmt"
	"sort"
	"strings"
)

// Span is a half-open byte range [Start, End) over a document's text
type Span struct {
	Start int
	End   int
}

// NewSpan creates a span from a start offset and a length
func NewSpan(start, length int) Span {
	return Span{Start: start, End: start + length}
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true for zero-length spans
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains reports whether other lies entirely within s
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// ContainsOffset reports whether off lies within s. The end offset is inclusive
// so that a caret placed right after the last character still hits the span.
func (s Span) ContainsOffset(off int) bool {
	return off >= s.Start && off <= s.End
}

// Overlaps reports whether the two spans share at least one byte
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End)
}

// TextEdit replaces the text covered by Span with NewText
type TextEdit struct {
	Span    Span
	NewText string
}

// Insert creates an edit that inserts text at offset
func Insert(offset int, text string) TextEdit {
	return TextEdit{Span: Span{Start: offset, End: offset}, NewText: text}
}

// Replace creates an edit that replaces span with text
func Replace(span Span, text string) TextEdit {
	return TextEdit{Span: span, NewText: text}
}

// Document is an immutable snapshot of a source file
type Document struct {
	Name string // file name used for diagnostics
	Text string // full source text
}

// NewDocument creates a document snapshot
func NewDocument(name, text string) Document {
	return Document{Name: name, Text: text}
}

// Apply returns a new snapshot with the edits committed
func (d Document) Apply(edits []TextEdit) (Document, error) {
	text, err := ApplyEdits(d.Text, edits)
	if err != nil {
		return d, fmt.Errorf("%s: %w", d.Name, err)
	}
	return Document{Name: d.Name, Text: text}, nil
}

// ApplyEdits commits non-overlapping edits to text. Edits may be given in any
// order; insertions at the same offset keep their relative order.
func ApplyEdits(text string, edits []TextEdit) (string, error) {
	if len(edits) == 0 {
		return text, nil
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, edit := range sorted {
		if edit.Span.Start < 0 || edit.Span.End > len(text) || edit.Span.End < edit.Span.Start {
			return "", fmt.Errorf("edit %s is out of range for text of length %d", edit.Span, len(text))
		}
		if edit.Span.Start < pos {
			return "", fmt.Errorf("edit %s overlaps a previous edit", edit.Span)
		}
		b.WriteString(text[pos:edit.Span.Start])
		b.WriteString(edit.NewText)
		pos = edit.Span.End
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}
