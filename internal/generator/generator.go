package generator

import (
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/templates"
)

// Generator runs the constructor regeneration pipeline for one class:
// classify, check uniqueness, select, synthesize and lay out. Any failing
// step short-circuits into a single diagnostic comment edit.
type Generator struct {
	layout   *Layout
	reporter *Reporter
	newline  string
}

// NewGenerator creates a generator with the given layout options
func NewGenerator(opts LayoutOptions) *Generator {
	renderer := templates.NewRenderer(nil)
	return &Generator{
		layout:   NewLayout(opts, renderer),
		reporter: NewReporter(renderer),
		newline:  opts.Newline,
	}
}

// Result is the outcome of one regeneration
type Result struct {
	Class       models.Class            // class after selection, including a synthesized constructor
	Injectables []models.Member         // injectable members in declaration order
	Selection   Selection               // chosen constructor
	Synthesis   Synthesis               // parameters and assignments added
	Edits       []models.TextEdit       // edits to apply to the document
	Diagnostic  *errors.DiagnosticError // set when the constructor could not be regenerated
}

// Changed reports whether applying the result modifies the document
func (r *Result) Changed() bool {
	return len(r.Edits) > 0
}

// Generate regenerates the constructor of class. When explicit is non-nil that
// constructor is the target; otherwise one is selected or synthesized.
func (g *Generator) Generate(doc models.Document, class models.Class, explicit *models.Constructor) (*Result, error) {
	result, diag, err := g.Plan(doc, class, explicit)
	if err != nil {
		return nil, err
	}
	if diag != nil {
		edit, err := g.reporter.Report(diag, class, explicit, doc, g.newline)
		if err != nil {
			return nil, err
		}
		result.Edits = []models.TextEdit{edit}
	}
	return result, nil
}

// Plan runs the pipeline without turning diagnostics into comment edits, for
// hosts that report failures elsewhere
func (g *Generator) Plan(doc models.Document, class models.Class, explicit *models.Constructor) (*Result, *errors.DiagnosticError, error) {
	result := &Result{Class: class, Injectables: Classify(class.Members)}

	updated, sel, err := Select(class, result.Injectables, explicit)
	if err != nil {
		if diag, ok := errors.AsDiagnostic(err); ok {
			result.Diagnostic = diag
			return result, diag, nil
		}
		return nil, nil, err
	}
	result.Class = updated
	result.Selection = sel
	result.Synthesis = Synthesize(result.Injectables, sel.Constructor)

	edits, err := g.layout.Edits(doc, sel, result.Synthesis)
	if err != nil {
		return nil, nil, err
	}
	result.Edits = edits
	return result, nil, nil
}

// Message renders the explanation of a diagnostic
func (g *Generator) Message(diag *errors.DiagnosticError) (string, error) {
	return g.reporter.Message(diag)
}
