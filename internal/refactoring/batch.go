package refactoring

import (
	"context"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/generator"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/parser"
)

// BatchOptions controls a whole-document run
type BatchOptions struct {
	Class    string // only regenerate classes with this name when set
	Comments bool   // write diagnostics into the document instead of returning them
}

// ClassOutcome is what happened to one class of a batch run
type ClassOutcome struct {
	Class      string
	Line       int                     // line of the class declaration
	Changed    bool                    // the class contributed edits
	Diagnostic *errors.DiagnosticError // set when the constructor could not be regenerated
	Message    string                  // rendered diagnostic text
	Unnamed    []string                // members whose parameter name came out empty
}

// BatchResult is the outcome of RegenerateAll
type BatchResult struct {
	Document models.Document
	Outcomes []ClassOutcome
}

// Changed reports whether any class was rewritten
func (b *BatchResult) Changed() bool {
	for _, o := range b.Outcomes {
		if o.Changed {
			return true
		}
	}
	return false
}

// Diagnostics returns the outcomes that carry a diagnostic
func (b *BatchResult) Diagnostics() []ClassOutcome {
	var out []ClassOutcome
	for _, o := range b.Outcomes {
		if o.Diagnostic != nil {
			out = append(out, o)
		}
	}
	return out
}

// RegenerateAll regenerates every class of the document that has injectable
// members. Classes are processed in source order and the document is parsed
// again after each rewrite so every class sees the current text.
func (r *Refactorer) RegenerateAll(ctx context.Context, doc models.Document, opts BatchOptions) (*BatchResult, error) {
	result := &BatchResult{Document: doc}

	file, err := r.parser.ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	count := len(file.AllClasses())

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		classes := file.AllClasses()
		if i >= len(classes) {
			break
		}
		class := classes[i]
		if opts.Class != "" && class.Name != opts.Class {
			continue
		}
		if len(generator.Classify(class.Members)) == 0 {
			continue
		}

		outcome, edits, err := r.regenerate(result.Document, class, opts.Comments)
		if err != nil {
			return nil, err
		}
		result.Outcomes = append(result.Outcomes, outcome)
		if len(edits) == 0 {
			continue
		}

		updated, err := result.Document.Apply(edits)
		if err != nil {
			return nil, errors.WrapEditError(doc.Name, err)
		}
		result.Document = updated
		if file, err = r.parser.ParseDocument(updated); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *Refactorer) regenerate(doc models.Document, class models.Class, comments bool) (ClassOutcome, []models.TextEdit, error) {
	line, _ := parser.Position(doc.Text, class.HeaderSpan.Start)
	outcome := ClassOutcome{Class: class.Name, Line: line}

	var (
		res  *generator.Result
		diag *errors.DiagnosticError
		err  error
	)
	if comments {
		res, err = r.generator.Generate(doc, class, nil)
		if res != nil {
			diag = res.Diagnostic
		}
	} else {
		res, diag, err = r.generator.Plan(doc, class, nil)
	}
	if err != nil {
		return outcome, nil, err
	}

	if diag != nil {
		outcome.Diagnostic = diag
		if outcome.Message, err = r.generator.Message(diag); err != nil {
			return outcome, nil, err
		}
	}
	outcome.Changed = res.Changed()
	outcome.Unnamed = res.Synthesis.UnnamedMembers()
	return outcome, res.Edits, nil
}
