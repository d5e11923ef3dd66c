package models

import (
	"github.com/toyz/ctorgen/internal/annotations"
)

// MemberKind distinguishes fields from properties
type MemberKind int

const (
	FieldMember MemberKind = iota
	PropertyMember
)

// String returns the string representation of the member kind
func (k MemberKind) String() string {
	switch k {
	case FieldMember:
		return "field"
	case PropertyMember:
		return "property"
	default:
		return "unknown"
	}
}

// Member represents a field or property declared directly in a class
type Member struct {
	Name           string                  // declared identifier
	Type           TypeRef                 // canonical declared type
	Kind           MemberKind              // field or property
	IsReadonly     bool                    // field carries the readonly modifier
	IsStatic       bool                    // member carries the static modifier
	HasInitializer bool                    // "= expr" on the declarator, or an expression-bodied property
	Markers        annotations.MarkerSet   // resolved marker attributes
	Attributes     []annotations.Attribute // every attribute applied to the declaration
	Span           Span                    // the declarator identifier
	DeclSpan       Span                    // whole declaration, attributes through ';' or '}'
}

// IsField returns true for field members
func (m Member) IsField() bool {
	return m.Kind == FieldMember
}

// IsProperty returns true for property members
func (m Member) IsProperty() bool {
	return m.Kind == PropertyMember
}
