package models

import (
	"strings"
	"unicode"
)

// TypeRef is the canonical text of a type reference, generic arguments included.
// Two TypeRefs denote the same type exactly when their text is equal.
type TypeRef string

// NewTypeRef canonicalizes raw type text. Whitespace is dropped except for a
// single space between adjacent word characters and a single space after commas,
// so "IFoo< IFoo <Bar> >" and "IFoo<IFoo<Bar>>" compare equal.
func NewTypeRef(raw string) TypeRef {
	var b strings.Builder
	b.Grow(len(raw))

	var prev rune // last rune written, 0 at start
	pendingSpace := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && isWordRune(prev) && isWordRune(r) {
			b.WriteRune(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
		prev = r
		if r == ',' {
			b.WriteRune(' ')
			prev = ' '
		}
	}
	return TypeRef(strings.TrimRight(b.String(), " "))
}

func (t TypeRef) String() string {
	return string(t)
}

// IsEmpty returns true if the reference carries no type text
func (t TypeRef) IsEmpty() bool {
	return t == ""
}

func isWordRune(r rune) bool {
	return r == '_' || r == '@' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
