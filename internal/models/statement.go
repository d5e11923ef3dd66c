package models

// Statement is one top-level statement of a constructor body. It is a closed
// sum type: the only implementations are Assignment and Opaque.
type Statement interface {
	isStatement()
	// Source returns the statement text as it should appear in the body
	Source() string
}

// Assignment is a statement of the shape "target = source;" where target is a
// bare identifier
type Assignment struct {
	Target string // assigned identifier
	Value  string // verbatim right-hand side
	Text   string // verbatim statement text, empty for synthesized assignments
	Span   Span   // statement location, zero for synthesized assignments
}

func (Assignment) isStatement() {}

// Source returns the verbatim text, or the canonical "target = value;" form
func (a Assignment) Source() string {
	if a.Text != "" {
		return a.Text
	}
	return a.Target + " = " + a.Value + ";"
}

// Opaque is any statement that is not a recognized assignment
type Opaque struct {
	Text string
	Span Span
}

func (Opaque) isStatement() {}

// Source returns the verbatim statement text
func (o Opaque) Source() string {
	return o.Text
}

// AssignedNames returns the targets of every top-level assignment, in order
func AssignedNames(stmts []Statement) []string {
	var names []string
	for _, stmt := range stmts {
		if a, ok := stmt.(Assignment); ok {
			names = append(names, a.Target)
		}
	}
	return names
}
