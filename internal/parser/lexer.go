package parser

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies C# tokens
type TokenKind int

const (
	EOFToken TokenKind = iota
	CommentToken
	PreprocessorToken
	StringToken
	CharToken
	IdentToken
	NumberToken
	OperatorToken
	NewlineToken
	WhitespaceToken
)

// String returns the string representation of the token kind
func (k TokenKind) String() string {
	switch k {
	case CommentToken:
		return "Comment"
	case PreprocessorToken:
		return "Preprocessor"
	case StringToken:
		return "String"
	case CharToken:
		return "Char"
	case IdentToken:
		return "Ident"
	case NumberToken:
		return "Number"
	case OperatorToken:
		return "Operator"
	case NewlineToken:
		return "Newline"
	case WhitespaceToken:
		return "Whitespace"
	default:
		return "EOF"
	}
}

// Token is a lexed C# token with its byte offset in the document
type Token struct {
	Kind   TokenKind
	Value  string
	Offset int
	Line   int
	Column int
}

// End returns the offset just past the token
func (t Token) End() int {
	return t.Offset + len(t.Value)
}

// Is reports whether the token is an identifier or operator with the given text
func (t Token) Is(value string) bool {
	return (t.Kind == OperatorToken || t.Kind == IdentToken) && t.Value == value
}

// IsTrivia returns true for tokens that carry no syntax
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case CommentToken, PreprocessorToken, NewlineToken, WhitespaceToken:
		return true
	}
	return false
}

// csharpLexer tokenizes the subset of C# lexical grammar needed to find declarations.
// Generic angle brackets are always lexed one character at a time so nested
// type arguments close correctly.
var csharpLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\r\n]*|/\*(?s:.*?)\*/`},
	{Name: "Preprocessor", Pattern: `#[^\r\n]*`},
	{Name: "String", Pattern: `\$*"""(?s:.*?)"""|(?:\$@|@\$|@)"(?:[^"]|"")*"|\$?"(?:\\.|[^"\\\r\n])*"`},
	{Name: "Char", Pattern: `'(?:\\.|[^'\\\r\n])+'`},
	{Name: "Ident", Pattern: `@?[\p{L}_][\p{L}\p{N}_]*`},
	{Name: "Number", Pattern: `(?:0[xXbB][0-9a-fA-F_]+|[0-9][0-9_]*(?:\.[0-9][0-9_]*)?(?:[eE][+-]?[0-9]+)?)[a-zA-Z]*`},
	{Name: "Operator", Pattern: `=>|==|!=|&&|\|\||\?\?=?|\?\.|::|\+\+|--|\+=|-=|\*=|/=|%=|&=|\|=|\^=|[^\s\w]`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Whitespace", Pattern: `[ \t\f\v\r]+`},
})

var tokenKinds = func() map[lexer.TokenType]TokenKind {
	names := map[string]TokenKind{
		"EOF":          EOFToken,
		"Comment":      CommentToken,
		"Preprocessor": PreprocessorToken,
		"String":       StringToken,
		"Char":         CharToken,
		"Ident":        IdentToken,
		"Number":       NumberToken,
		"Operator":     OperatorToken,
		"Newline":      NewlineToken,
		"Whitespace":   WhitespaceToken,
	}
	kinds := make(map[lexer.TokenType]TokenKind, len(names))
	for name, tt := range csharpLexer.Symbols() {
		if kind, ok := names[name]; ok {
			kinds[tt] = kind
		}
	}
	return kinds
}()

// Tokenize lexes text into tokens, trivia included. The final token is always EOF.
func Tokenize(filename, text string) ([]Token, error) {
	lex, err := csharpLexer.LexString(filename, text)
	if err != nil {
		return nil, err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("tokenize %s: %w", filename, err)
	}

	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		kind := tokenKinds[tok.Type]
		if tok.EOF() {
			kind = EOFToken
		}
		tokens = append(tokens, Token{
			Kind:   kind,
			Value:  tok.Value,
			Offset: tok.Pos.Offset,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}
	return tokens, nil
}

// significant drops trivia, keeping the trailing EOF token
func significant(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}
