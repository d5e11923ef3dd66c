// Package refactoring exposes the constructor regeneration as an editor-style
// code action: given a document and a selection, propose an action and apply it.
package refactoring

import (
	"context"

	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/generator"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/parser"
)

// Title is the caption of the proposed action
const Title = "(Re)Generate dependency injected constructor"

// Options configures a Refactorer
type Options struct {
	Layout   generator.LayoutOptions
	Resolver *annotations.Resolver // marker resolution, the default registry when nil
}

// Refactorer parses documents and runs the regeneration pipeline on them
type Refactorer struct {
	parser    *parser.Parser
	generator *generator.Generator
}

// New creates a refactorer
func New(opts Options) *Refactorer {
	return &Refactorer{
		parser:    parser.NewParser(opts.Resolver),
		generator: generator.NewGenerator(opts.Layout),
	}
}

var defaultRefactorer = New(Options{})

// ProposeRefactoring proposes the action for a selection using the default configuration
func ProposeRefactoring(ctx context.Context, doc models.Document, span models.Span) (*Action, error) {
	return defaultRefactorer.ProposeRefactoring(ctx, doc, span)
}

// Action is a proposed regeneration bound to one class or constructor
type Action struct {
	Title  string
	doc    models.Document
	target parser.Target
	r      *Refactorer
}

// Target returns the class, and constructor if one was picked, the action works on
func (a *Action) Target() parser.Target {
	return a.target
}

// ProposeRefactoring returns the action available at span, or nil when the
// selection is not on a class or constructor header
func (r *Refactorer) ProposeRefactoring(ctx context.Context, doc models.Document, span models.Span) (*Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := r.parser.ParseDocument(doc)
	if err != nil {
		return nil, err
	}

	target, ok := parser.Locate(file, span)
	if !ok {
		return nil, nil
	}
	return &Action{Title: Title, doc: doc, target: target, r: r}, nil
}

// Result runs the pipeline and returns its outcome without touching the document
func (a *Action) Result() (*generator.Result, error) {
	return a.r.generator.Generate(a.doc, a.target.Class, a.target.Constructor)
}

// Apply returns the document with the constructor regenerated, or with a
// comment explaining why it could not be
func (a *Action) Apply(ctx context.Context) (models.Document, error) {
	out, _, err := a.Run(ctx)
	return out, err
}

// Run is Apply that also returns the pipeline outcome
func (a *Action) Run(ctx context.Context) (models.Document, *generator.Result, error) {
	result, err := a.Result()
	if err != nil {
		return a.doc, nil, err
	}
	out, err := a.commit(ctx, result)
	return out, result, err
}

func (a *Action) commit(ctx context.Context, result *generator.Result) (models.Document, error) {
	if err := ctx.Err(); err != nil {
		return a.doc, err
	}

	out, err := a.doc.Apply(result.Edits)
	if err != nil {
		return a.doc, errors.WrapEditError(a.doc.Name, err)
	}
	return out, nil
}

// RegenerateClass regenerates the constructor of the named class, nested
// classes included, as if the class header had been selected
func (r *Refactorer) RegenerateClass(ctx context.Context, doc models.Document, className string) (models.Document, *generator.Result, error) {
	file, err := r.parser.ParseDocument(doc)
	if err != nil {
		return doc, nil, err
	}

	class, ok := parser.FindClass(file, className)
	if !ok {
		return doc, nil, errors.Newf(errors.ValidationErrorCode, "class %s not found in %s", className, doc.Name).
			WithContext("class", className)
	}

	action := &Action{Title: Title, doc: doc, target: parser.Target{Class: class}, r: r}
	return action.Run(ctx)
}

// Message renders the text of a diagnostic as it would be written into the document
func (r *Refactorer) Message(diag *errors.DiagnosticError) (string, error) {
	return r.generator.Message(diag)
}
