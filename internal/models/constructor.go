package models

import (
	"github.com/toyz/ctorgen/internal/annotations"
)

// Visibility of a constructor as far as injection is concerned
type Visibility int

const (
	OtherVisibility Visibility = iota
	PublicVisibility
)

// String returns the string representation of the visibility
func (v Visibility) String() string {
	if v == PublicVisibility {
		return "public"
	}
	return "other"
}

// BodyKind describes how a constructor body is written
type BodyKind int

const (
	BlockBody      BodyKind = iota // { ... }
	ExpressionBody                 // => expr;
	NoBody                         // ;
)

// String returns the string representation of the body kind
func (k BodyKind) String() string {
	switch k {
	case BlockBody:
		return "block"
	case ExpressionBody:
		return "expression"
	default:
		return "none"
	}
}

// Param is one constructor parameter
type Param struct {
	Type TypeRef // canonical parameter type
	Name string  // parameter identifier
	Text string  // verbatim source including attributes, modifiers and defaults
}

// Render returns the text used when the parameter list is laid out
func (p Param) Render() string {
	if p.Text != "" {
		return p.Text
	}
	return string(p.Type) + " " + p.Name
}

// Initializer is a ": this(...)" or ": base(...)" constructor initializer
type Initializer struct {
	Keyword   string // "this" or "base"
	Arguments string // verbatim text between the parentheses
	Span      Span   // from the ':' through the closing ')'
}

// Render returns the normalized " : keyword(args)" form
func (i Initializer) Render() string {
	return " : " + i.Keyword + "(" + i.Arguments + ")"
}

// Constructor is a constructor candidate of a class
type Constructor struct {
	Name         string                  // class name as written on the constructor
	Visibility   Visibility              // public or anything else
	IsStatic     bool                    // static constructors are never candidates
	IsDesignated bool                    // carries the designated marker
	Attributes   []annotations.Attribute // every attribute applied to the constructor
	Parameters   []Param                 // parameter list in declaration order
	Body         []Statement             // top-level statements in source order
	BodyKind     BodyKind                // block, expression or none
	Initializer  *Initializer            // optional this/base initializer
	Synthesized  bool                    // created by the selector, not present in source

	Span      Span // attributes through the end of the body
	NameSpan  Span // the constructor identifier
	ParamSpan Span // '(' through ')'
	BodySpan  Span // '{' through '}', '=>' through ';', or the lone ';'
}

// IsPublic returns true for public instance constructors
func (c Constructor) IsPublic() bool {
	return c.Visibility == PublicVisibility && !c.IsStatic
}

// HeaderSpan covers the attributes through the parameter list or initializer
func (c Constructor) HeaderSpan() Span {
	end := c.ParamSpan.End
	if c.Initializer != nil {
		end = c.Initializer.Span.End
	}
	return Span{Start: c.Span.Start, End: end}
}

// ParameterTypes returns the canonical types of the parameters, in order
func (c Constructor) ParameterTypes() []TypeRef {
	types := make([]TypeRef, len(c.Parameters))
	for i, p := range c.Parameters {
		types[i] = p.Type
	}
	return types
}

// WithParameters returns a copy of c with the given parameter list
func (c Constructor) WithParameters(params []Param) Constructor {
	c.Parameters = append([]Param(nil), params...)
	return c
}

// WithBody returns a copy of c with the given statements
func (c Constructor) WithBody(stmts []Statement) Constructor {
	c.Body = append([]Statement(nil), stmts...)
	return c
}

// NewSynthesizedConstructor creates an empty public constructor positioned at offset
func NewSynthesizedConstructor(className string, offset int) Constructor {
	at := Span{Start: offset, End: offset}
	return Constructor{
		Name:        className,
		Visibility:  PublicVisibility,
		BodyKind:    BlockBody,
		Synthesized: true,
		Span:        at,
		NameSpan:    at,
		ParamSpan:   at,
		BodySpan:    at,
	}
}
