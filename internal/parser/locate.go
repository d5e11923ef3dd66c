package parser

import (
	"github.com/toyz/ctorgen/internal/models"
)

// Target is the declaration found under a selection: a class, and optionally
// one of its constructors
type Target struct {
	Class       models.Class
	Constructor *models.Constructor
}

// IsConstructor returns true when the selection picked a constructor directly
func (t Target) IsConstructor() bool {
	return t.Constructor != nil
}

// Locate finds the class or constructor a selection refers to. The innermost
// class containing the selection is considered; a selection inside one of its
// constructor headers picks that constructor, one inside the class header, on
// its closing brace, or covering the whole class picks the class.
func Locate(file *models.File, span models.Span) (Target, bool) {
	cls, ok := innermostClass(file.Classes, span)
	if !ok {
		return Target{}, false
	}

	for i := range cls.Constructors {
		ctor := cls.Constructors[i]
		if covers(ctor.HeaderSpan(), span) {
			return Target{Class: cls, Constructor: &ctor}, true
		}
	}

	closing := models.Span{Start: cls.CloseBrace, End: cls.CloseBrace + 1}
	if covers(cls.HeaderSpan, span) || covers(closing, span) || span.Contains(cls.Span) {
		return Target{Class: cls}, true
	}

	return Target{}, false
}

// FindClass returns the first class, nested ones included, with the given name
func FindClass(file *models.File, name string) (models.Class, bool) {
	for _, cls := range file.AllClasses() {
		if cls.Name == name {
			return cls, true
		}
	}
	return models.Class{}, false
}

func innermostClass(classes []models.Class, span models.Span) (models.Class, bool) {
	for _, cls := range classes {
		if !covers(cls.Span, span) {
			continue
		}
		if nested, ok := innermostClass(cls.Nested, span); ok {
			return nested, true
		}
		return cls, true
	}
	return models.Class{}, false
}

// covers treats an empty selection as a caret, which may sit right after the region
func covers(region, selection models.Span) bool {
	if selection.IsEmpty() {
		return region.ContainsOffset(selection.Start)
	}
	return region.Contains(selection)
}

// Position converts a byte offset into a 1-based line and column
func Position(text string, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	line, column = 1, 1
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// Offset converts a 1-based line and column into a byte offset. Positions past
// the end of a line clamp to the line end; ok is false when the line does not exist.
func Offset(text string, line, column int) (int, bool) {
	if line < 1 || column < 1 {
		return 0, false
	}
	current, start := 1, 0
	for current < line {
		idx := indexByteFrom(text, '\n', start)
		if idx < 0 {
			return 0, false
		}
		start = idx + 1
		current++
	}
	end := indexByteFrom(text, '\n', start)
	if end < 0 {
		end = len(text)
	}
	off := start + column - 1
	if off > end {
		off = end
	}
	return off, true
}

func indexByteFrom(text string, c byte, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == c {
			return i
		}
	}
	return -1
}
