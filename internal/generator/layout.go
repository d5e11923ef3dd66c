package generator

import (
	"strings"

	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/templates"
)

// DefaultIndentUnit is the statement indentation used inside constructor bodies
const DefaultIndentUnit = "    "

// LayoutOptions controls how synthesized code is laid out
type LayoutOptions struct {
	IndentUnit string // one indentation level, DefaultIndentUnit when empty
	Newline    string // line break, detected from the document when empty
}

// Layout turns a synthesized constructor into text edits against the document
type Layout struct {
	opts     LayoutOptions
	renderer *templates.Renderer
}

// NewLayout creates a layout. A nil renderer uses the built-in templates.
func NewLayout(opts LayoutOptions, renderer *templates.Renderer) *Layout {
	if opts.IndentUnit == "" {
		opts.IndentUnit = DefaultIndentUnit
	}
	if renderer == nil {
		renderer = templates.NewRenderer(nil)
	}
	return &Layout{opts: opts, renderer: renderer}
}

// DetectNewline returns "\r\n" for documents using Windows line breaks, "\n" otherwise
func DetectNewline(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func (l *Layout) newline(text string) string {
	if l.opts.Newline != "" {
		return l.opts.Newline
	}
	return DetectNewline(text)
}

// Edits returns the edits that turn sel.Constructor into syn.Constructor.
// A satisfied constructor produces no edits.
func (l *Layout) Edits(doc models.Document, sel Selection, syn Synthesis) ([]models.TextEdit, error) {
	if syn.IsEmpty() {
		return nil, nil
	}
	if sel.SynthesizedNew {
		edit, err := l.insertConstructor(doc.Text, syn)
		if err != nil {
			return nil, err
		}
		return []models.TextEdit{edit}, nil
	}

	var edits []models.TextEdit
	if len(syn.AddedParameters) > 0 {
		edit, err := l.header(doc.Text, syn)
		if err != nil {
			return nil, err
		}
		edits = append(edits, edit)
	}
	if len(syn.AddedAssignments) > 0 {
		edits = append(edits, l.body(doc.Text, syn))
	}
	return edits, nil
}

// header rewrites the parameter list, and the initializer following it
func (l *Layout) header(text string, syn Synthesis) (models.TextEdit, error) {
	ctor := syn.Constructor
	list, err := l.parameterList(ctor.Parameters, columnPrefix(text, ctor.ParamSpan.Start), l.newline(text))
	if err != nil {
		return models.TextEdit{}, err
	}
	if ctor.Initializer != nil {
		list += ctor.Initializer.Render()
	}
	span := models.Span{Start: ctor.ParamSpan.Start, End: ctor.HeaderSpan().End}
	return models.Replace(span, list), nil
}

// body prepends the added assignments to the existing statements
func (l *Layout) body(text string, syn Synthesis) models.TextEdit {
	ctor := syn.Constructor
	nl := l.newline(text)
	indent := lineIndent(text, ctor.NameSpan.Start)
	stmtIndent := indent + l.opts.IndentUnit

	if ctor.BodyKind != models.BlockBody {
		var b strings.Builder
		b.WriteString(nl + indent + "{" + nl)
		for _, stmt := range ctor.Body {
			b.WriteString(stmtIndent + stmt.Source() + nl)
		}
		b.WriteString(indent + "}")
		span := models.Span{Start: ctor.HeaderSpan().End, End: ctor.BodySpan.End}
		return models.Replace(span, b.String())
	}

	open, close := ctor.BodySpan.Start, ctor.BodySpan.End-1
	added := assignmentSources(syn.AddedAssignments)

	first := open + 1
	for first < close && isSpace(text[first]) {
		first++
	}

	switch {
	case first == close && !strings.Contains(text[open+1:close], "\n"):
		return models.Replace(models.Span{Start: open + 1, End: close}, " "+strings.Join(added, " ")+" ")

	case first == close:
		var b strings.Builder
		b.WriteString(nl)
		for _, stmt := range added {
			b.WriteString(stmtIndent + stmt + nl)
		}
		b.WriteString(lineIndent(text, close))
		return models.Replace(models.Span{Start: open + 1, End: close}, b.String())

	case !strings.Contains(text[open+1:first], "\n"):
		return models.Insert(open+1, " "+strings.Join(added, " "))

	default:
		existing := lineIndent(text, first)
		var b strings.Builder
		for _, stmt := range added {
			b.WriteString(existing + stmt + nl)
		}
		return models.Insert(lineStart(text, first), b.String())
	}
}

// insertConstructor writes a new constructor on the line after the last injectable
func (l *Layout) insertConstructor(text string, syn Synthesis) (models.TextEdit, error) {
	ctor := syn.Constructor
	nl := l.newline(text)
	at := ctor.Span.Start
	indent := lineIndent(text, at)

	prefix := ""
	if end := strings.IndexByte(text[at:], '\n'); end >= 0 && strings.TrimSpace(text[at:at+end]) == "" {
		at += end + 1
	} else {
		// the member shares its line with more code
		prefix = nl
		indent += l.opts.IndentUnit
	}

	align := toColumn(indent + "public " + ctor.Name)
	params, err := l.parameterList(ctor.Parameters, align, nl)
	if err != nil {
		return models.TextEdit{}, err
	}

	var stmts []string
	for _, stmt := range ctor.Body {
		stmts = append(stmts, stmt.Source())
	}
	out, err := l.renderer.Constructor(templates.ConstructorData{
		Indent:     indent,
		BodyIndent: indent + l.opts.IndentUnit,
		Name:       ctor.Name,
		Parameters: params,
		Statements: stmts,
		Newline:    nl,
	})
	if err != nil {
		return models.TextEdit{}, err
	}
	return models.Insert(at, prefix+out), nil
}

// parameterList keeps a single parameter inline and puts several on their own
// lines, aligned with the opening parenthesis
func (l *Layout) parameterList(params []models.Param, align, nl string) (string, error) {
	rendered := make([]string, len(params))
	for i, p := range params {
		rendered[i] = p.Render()
	}
	return l.renderer.ParameterList(templates.ParameterListData{
		Parameters: rendered,
		Multiline:  len(params) > 1,
		Align:      align,
		Newline:    nl,
	})
}

func assignmentSources(assignments []models.Assignment) []string {
	out := make([]string, len(assignments))
	for i, a := range assignments {
		out[i] = a.Source()
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// lineStart returns the offset of the first byte of the line holding off
func lineStart(text string, off int) int {
	return strings.LastIndexByte(text[:off], '\n') + 1
}

// lineIndent returns the leading blanks of the line holding off
func lineIndent(text string, off int) string {
	start := lineStart(text, off)
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return text[start:end]
}

// columnPrefix returns blanks reaching the column of off on its line
func columnPrefix(text string, off int) string {
	return toColumn(text[lineStart(text, off):off])
}

// toColumn replaces every character but tabs with a space
func toColumn(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
