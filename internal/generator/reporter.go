package generator

import (
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/templates"
)

// Reporter turns a diagnostic into the single comment edit that explains it
type Reporter struct {
	renderer *templates.Renderer
}

// NewReporter creates a reporter. A nil renderer uses the built-in templates.
func NewReporter(renderer *templates.Renderer) *Reporter {
	if renderer == nil {
		renderer = templates.NewRenderer(nil)
	}
	return &Reporter{renderer: renderer}
}

// Message renders the text of a diagnostic
func (r *Reporter) Message(diag *errors.DiagnosticError) (string, error) {
	return r.renderer.DiagnosticMessage(diag.ErrorCode(), templates.DiagnosticData{Offenders: diag.Offenders})
}

// Report places "//<message>" after the class's opening brace, or on its own
// line above the constructor the diagnostic is about. For a class, blanks after
// the brace up to and including the first line break are replaced.
func (r *Reporter) Report(diag *errors.DiagnosticError, class models.Class, ctor *models.Constructor, doc models.Document, newline string) (models.TextEdit, error) {
	msg, err := r.Message(diag)
	if err != nil {
		return models.TextEdit{}, err
	}
	if newline == "" {
		newline = DetectNewline(doc.Text)
	}
	comment, err := r.renderer.DiagnosticComment(msg, newline)
	if err != nil {
		return models.TextEdit{}, err
	}

	if diag.Target == errors.ConstructorDiagnostic && ctor != nil {
		return models.Insert(lineStart(doc.Text, ctor.Span.Start), comment), nil
	}

	text := doc.Text
	start := class.OpenBrace + 1
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	switch {
	case end+1 < len(text) && text[end] == '\r' && text[end+1] == '\n':
		end += 2
	case end < len(text) && text[end] == '\n':
		end++
	}
	return models.Replace(models.Span{Start: start, End: end}, comment), nil
}
