package templates

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/toyz/ctorgen/internal/errors"
)

// DiagnosticData is the input of the diagnostic message templates
type DiagnosticData struct {
	Offenders []string
}

// CommentData is the input of the diagnostic comment template
type CommentData struct {
	Message string
	Newline string
}

// ParameterListData is the input of the parameter list template
type ParameterListData struct {
	Parameters []string // rendered parameters
	Multiline  bool     // one parameter per line
	Align      string   // prefix aligning parameters under the '('
	Newline    string
}

// ConstructorData is the input of the constructor template
type ConstructorData struct {
	Indent     string   // indentation of the declaration line and braces
	BodyIndent string   // indentation of statements
	Name       string   // class name
	Parameters string   // rendered parameter list including parentheses
	Statements []string // body statements
	Newline    string
}

// Renderer executes registry templates, caching parsed templates
type Renderer struct {
	registry *TemplateRegistry
	mu       sync.RWMutex
	parsed   map[string]*template.Template
}

// NewRenderer creates a renderer over the given registry. A nil registry uses the built-in templates.
func NewRenderer(registry *TemplateRegistry) *Renderer {
	if registry == nil {
		registry = NewTemplateRegistry()
	}
	return &Renderer{
		registry: registry,
		parsed:   make(map[string]*template.Template),
	}
}

// DiagnosticMessage renders the message for a diagnostic error code
func (r *Renderer) DiagnosticMessage(code errors.ErrorCode, data DiagnosticData) (string, error) {
	var name string
	switch code {
	case errors.NoCandidatesErrorCode:
		name = NoCandidatesTemplate
	case errors.MultiplePublicConstructorsErrorCode:
		name = MultiplePublicConstructorsTemplate
	case errors.DuplicateTypeErrorCode:
		name = DuplicateTypeTemplate
	default:
		return "", errors.Newf(errors.TemplateErrorCode, "no diagnostic template for %s", code)
	}
	return r.Execute(name, data)
}

// DiagnosticComment renders a single-line comment holding message
func (r *Renderer) DiagnosticComment(message, newline string) (string, error) {
	return r.Execute(DiagnosticCommentTemplate, CommentData{Message: message, Newline: newline})
}

// ParameterList renders a parenthesised parameter list
func (r *Renderer) ParameterList(data ParameterListData) (string, error) {
	return r.Execute(ParameterListTemplate, data)
}

// Constructor renders a complete constructor declaration
func (r *Renderer) Constructor(data ConstructorData) (string, error) {
	return r.Execute(ConstructorTemplate, data)
}

// Execute executes a registered template with the given data
func (r *Renderer) Execute(name string, data interface{}) (string, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}
	return buf.String(), nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	// Check cache first
	r.mu.RLock()
	tmpl, ok := r.parsed[name]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, exists := r.registry.Get(name)
	if !exists {
		return nil, errors.WrapTemplateError(name, "find", fmt.Errorf("template not registered"))
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(text)
	if err != nil {
		return nil, errors.WrapTemplateError(name, "parse", err)
	}

	r.mu.Lock()
	r.parsed[name] = tmpl
	r.mu.Unlock()
	return tmpl, nil
}

var funcMap = template.FuncMap{
	"join": strings.Join,
}
