package annotations

import (
	"errors"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// ParticipleParser parses C# attribute sections using alecthomas/participle
type ParticipleParser struct {
	parser *participle.Parser[AttributeSection]
}

// AttributeSection represents one bracketed attribute list, e.g. [field: A, B(1)]
type AttributeSection struct {
	Target     *AttributeTarget `parser:"'[' @@?"`
	Attributes []*AttributeNode `parser:"@@ ( ',' @@ )* ']'"`
}

// AttributeTarget is the optional "target:" prefix of a section
type AttributeTarget struct {
	Name string `parser:"@Ident ':'"`
}

// AttributeNode is a single attribute application
type AttributeNode struct {
	Pos  lexer.Position
	Name []string      `parser:"@Ident ( @( '.' | '::' ) @Ident )*"`
	Args *ArgumentList `parser:"@@?"`
}

// ArgumentList is a parenthesised, possibly nested, argument token list
type ArgumentList struct {
	Tokens []*ArgumentToken `parser:"'(' @@* ')'"`
}

// ArgumentToken is either a nested list or any token other than a parenthesis
type ArgumentToken struct {
	Nested *ArgumentList `parser:"  @@"`
	Value  string        `parser:"| @~( '(' | ')' )"`
}

// String renders the argument tokens separated by single spaces
func (a *ArgumentList) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(a.Tokens))
	for _, tok := range a.Tokens {
		if tok.Nested != nil {
			parts = append(parts, "("+tok.Nested.String()+")")
			continue
		}
		parts = append(parts, tok.Value)
	}
	return strings.Join(parts, " ")
}

// NewParticipleParser creates a new attribute section parser
func NewParticipleParser() *ParticipleParser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*|/\*(?s:.*?)\*/`},
		{Name: "String", Pattern: `@"(?:[^"]|"")*"|\$?"(?:\\.|[^"\\])*"`},
		{Name: "Char", Pattern: `'(?:\\.|[^'\\])+'`},
		{Name: "Ident", Pattern: `@?[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "Number", Pattern: `[0-9][0-9a-fA-FxX._]*`},
		{Name: "Punct", Pattern: `::|[^\sA-Za-z0-9_]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	parser := participle.MustBuild[AttributeSection](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)

	return &ParticipleParser{parser: parser}
}

// ParseSection parses the source text of one attribute section. The location
// is where the section's '[' appears and is used to report attribute positions.
func (p *ParticipleParser) ParseSection(text string, loc SourceLocation) ([]Attribute, error) {
	section, err := p.parser.ParseString(loc.File, text)
	if err != nil {
		return nil, p.syntaxError(err, text, loc)
	}

	target := ""
	if section.Target != nil {
		target = section.Target.Name
	}

	attrs := make([]Attribute, 0, len(section.Attributes))
	for _, node := range section.Attributes {
		attrs = append(attrs, Attribute{
			Name:      strings.Join(node.Name, ""),
			Target:    target,
			Arguments: node.Args.String(),
			Location:  offsetLocation(loc, node.Pos),
		})
	}
	return attrs, nil
}

func (p *ParticipleParser) syntaxError(err error, text string, loc SourceLocation) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		return &SyntaxError{
			Msg:  perr.Message(),
			Loc:  offsetLocation(loc, perr.Position()),
			Hint: "attribute sections have the form [Name] or [target: Name(args), Other]",
		}
	}
	return &SyntaxError{Msg: err.Error(), Loc: loc, Hint: "could not parse " + strings.TrimSpace(text)}
}

// offsetLocation translates a position inside the section text into a file position
func offsetLocation(base SourceLocation, pos lexer.Position) SourceLocation {
	if pos.Line <= 1 {
		return SourceLocation{File: base.File, Line: base.Line, Column: base.Column + pos.Column - 1}
	}
	return SourceLocation{File: base.File, Line: base.Line + pos.Line - 1, Column: pos.Column}
}
