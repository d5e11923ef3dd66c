package templates

import "sort"

const (
	NoCandidatesTemplate               = "no-candidates"
	MultiplePublicConstructorsTemplate = "multiple-public-constructors"
	DuplicateTypeTemplate              = "duplicate-type"
	DiagnosticCommentTemplate          = "diagnostic-comment"
	ConstructorTemplate                = "constructor"
	ParameterListTemplate              = "parameter-list"
)

// The diagnostic wording, typo included, is matched by users searching their
// code for constructors that were not regenerated.
var builtinTemplates = map[string]string{
	NoCandidatesTemplate:               `Can't regenerate constructor, no candidate members found (readonly fields, properties markead with InjectedDependencyAttribute).`,
	MultiplePublicConstructorsTemplate: `Can't regenerate constructor, type contains multiple public constructors.`,
	DuplicateTypeTemplate:              `Can't regenerate constructor, {{join .Offenders ","}} have the same type (can't generate unique parameter).`,
	DiagnosticCommentTemplate:          `//{{.Message}}{{.Newline}}`,

	ParameterListTemplate: `({{if .Multiline}}{{.Newline}}{{range $i, $p := .Parameters}}{{if $i}},{{$.Newline}}{{end}}{{$.Align}}{{$p}}{{end}}` +
		`{{else}}{{range $i, $p := .Parameters}}{{if $i}}, {{end}}{{$p}}{{end}}{{end}})`,

	ConstructorTemplate: `{{.Indent}}public {{.Name}}{{.Parameters}}{{.Newline}}` +
		`{{.Indent}}{{"{"}}{{.Newline}}` +
		`{{range .Statements}}{{$.BodyIndent}}{{.}}{{$.Newline}}{{end}}` +
		`{{.Indent}}{{"}"}}{{.Newline}}`,
}

// TemplateRegistry holds template sources by name
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry returns a registry holding the built-in templates
func NewTemplateRegistry() *TemplateRegistry {
	templates := make(map[string]string, len(builtinTemplates))
	for name, text := range builtinTemplates {
		templates[name] = text
	}
	return &TemplateRegistry{templates: templates}
}

func (tr *TemplateRegistry) Get(name string) (string, bool) {
	text, ok := tr.templates[name]
	return text, ok
}

// MustGet panics when name is not registered
func (tr *TemplateRegistry) MustGet(name string) string {
	text, ok := tr.Get(name)
	if !ok {
		panic("template not found: " + name)
	}
	return text
}

// Names returns the registered names in sorted order
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
