package models

import (
	"sort"
)

// TypeKind is the keyword a type declaration was introduced with
type TypeKind int

const (
	ClassKind TypeKind = iota
	StructKind
	RecordKind
	RecordStructKind
)

// String returns the declaring keyword
func (k TypeKind) String() string {
	switch k {
	case StructKind:
		return "struct"
	case RecordKind:
		return "record"
	case RecordStructKind:
		return "record struct"
	default:
		return "class"
	}
}

// Class is the structural model of one type declaration
type Class struct {
	Name         string        // declared identifier without type parameters
	Kind         TypeKind      // class, struct or record
	Members      []Member      // fields and properties in declaration order
	Constructors []Constructor // constructors in declaration order
	Nested       []Class       // nested type declarations

	Span       Span // attributes through the closing brace
	HeaderSpan Span // attributes through the opening brace
	OpenBrace  int  // offset of '{'
	CloseBrace int  // offset of '}'
}

// PublicConstructors returns the public instance constructors in declaration order
func (c Class) PublicConstructors() []Constructor {
	var out []Constructor
	for _, ctor := range c.Constructors {
		if ctor.IsPublic() {
			out = append(out, ctor)
		}
	}
	return out
}

// WithConstructor returns a copy of c with ctor added, keeping source order
func (c Class) WithConstructor(ctor Constructor) Class {
	ctors := append(append([]Constructor(nil), c.Constructors...), ctor)
	sort.SliceStable(ctors, func(i, j int) bool {
		return ctors[i].Span.Start < ctors[j].Span.Start
	})
	c.Constructors = ctors
	return c
}

// Walk visits c and every nested class, depth first
func (c Class) Walk(visit func(Class) bool) bool {
	if !visit(c) {
		return false
	}
	for _, nested := range c.Nested {
		if !nested.Walk(visit) {
			return false
		}
	}
	return true
}

// File is the parsed form of a document: its top-level type declarations
type File struct {
	Document Document
	Classes  []Class
}

// AllClasses returns every class in the file, nested ones included, in source order
func (f File) AllClasses() []Class {
	var out []Class
	for _, c := range f.Classes {
		c.Walk(func(cls Class) bool {
			out = append(out, cls)
			return true
		})
	}
	return out
}
