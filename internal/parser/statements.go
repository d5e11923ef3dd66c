package parser

import (
	"strings"

	"github.com/toyz/ctorgen/internal/models"
)

// splitStatements splits the tokens of a block body into top-level statements
func (s *state) splitStatements(toks []Token) []models.Statement {
	var stmts []models.Statement
	for i := 0; i < len(toks); {
		end := statementEnd(toks, i)
		stmts = append(stmts, s.classifyStatement(toks[i:end+1]))
		i = end + 1
	}
	return stmts
}

// classifyStatement recognizes "x = expr;" with a bare identifier target as an
// assignment. Everything else, "this.x = expr;" included, is opaque and kept verbatim.
func (s *state) classifyStatement(toks []Token) models.Statement {
	first, last := toks[0], toks[len(toks)-1]
	span := models.Span{Start: first.Offset, End: last.End()}
	text := s.doc.Text[span.Start:span.End]

	// target, '=', at least one value token, ';'
	if last.Is(";") && len(toks) > 3 && toks[0].Kind == IdentToken && !toks[0].Is(keywordThis) && toks[1].Is("=") {
		return models.Assignment{
			Target: toks[0].Value,
			Value:  strings.TrimSpace(s.doc.Text[toks[1].End():last.Offset]),
			Text:   text,
			Span:   span,
		}
	}

	return models.Opaque{Text: text, Span: span}
}

// statementEnd returns the index of the last token of the statement starting at i
func statementEnd(toks []Token, i int) int {
	if i >= len(toks) {
		return len(toks) - 1
	}

	tok := toks[i]
	switch {
	case tok.Is("{"):
		return matchingIndex(toks, i)

	case tok.Is(";"):
		return i

	case tok.Kind == IdentToken && parenthesisedStatements[tok.Value] && i+1 < len(toks) && toks[i+1].Is("("):
		closing := matchingIndex(toks, i+1)
		if tok.Value == "switch" {
			if closing+1 < len(toks) && toks[closing+1].Is("{") {
				return matchingIndex(toks, closing+1)
			}
			return closing
		}
		end := statementEnd(toks, closing+1)
		if tok.Value == "if" && end+1 < len(toks) && toks[end+1].Is("else") {
			return statementEnd(toks, end+2)
		}
		return end

	case tok.Is("do"):
		end := statementEnd(toks, i+1)
		return simpleStatementEnd(toks, end+1)

	case tok.Is("try"):
		end := statementEnd(toks, i+1)
		for end+1 < len(toks) {
			next := toks[end+1]
			switch {
			case next.Is("catch"):
				k := end + 2
				if k < len(toks) && toks[k].Is("(") {
					k = matchingIndex(toks, k) + 1
				}
				if k < len(toks) && toks[k].Is("when") && k+1 < len(toks) {
					k = matchingIndex(toks, k+1) + 1
				}
				end = statementEnd(toks, k)
			case next.Is("finally"):
				end = statementEnd(toks, end+2)
			default:
				return end
			}
		}
		return end

	case tok.Kind == IdentToken && blockStatements[tok.Value] && i+1 < len(toks) && toks[i+1].Is("{"):
		return matchingIndex(toks, i+1)
	}

	return simpleStatementEnd(toks, i)
}

// simpleStatementEnd finds the terminating ';' of an expression or declaration
// statement. A block closing at depth zero and followed by an identifier ends
// the statement too (local functions).
func simpleStatementEnd(toks []Token, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		tok := toks[j]
		switch {
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"):
			depth--
		case tok.Is("}"):
			depth--
			if depth == 0 && j+1 < len(toks) && toks[j+1].Kind == IdentToken && !toks[j+1].Is("with") {
				return j
			}
		case depth == 0 && tok.Is(";"):
			return j
		}
	}
	return len(toks) - 1
}

// matchingIndex returns the index of the token closing the bracket at i
func matchingIndex(toks []Token, i int) int {
	if i >= len(toks) {
		return len(toks) - 1
	}
	open := toks[i].Value
	var closing string
	switch open {
	case "(":
		closing = ")"
	case "[":
		closing = "]"
	case "{":
		closing = "}"
	case "<":
		closing = ">"
	default:
		return i
	}

	depth := 0
	for j := i; j < len(toks); j++ {
		switch {
		case toks[j].Is(open):
			depth++
		case toks[j].Is(closing):
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(toks) - 1
}

// splitTopLevel splits toks at separators that are not nested in brackets.
// With angles set, '<' and '>' count as brackets too.
func splitTopLevel(toks []Token, sep string, angles bool) [][]Token {
	var groups [][]Token
	depth, start := 0, 0
	for j, tok := range toks {
		switch {
		case tok.Is("("), tok.Is("["), tok.Is("{"), angles && tok.Is("<"):
			depth++
		case tok.Is(")"), tok.Is("]"), tok.Is("}"), angles && tok.Is(">"):
			depth--
		case depth == 0 && tok.Is(sep):
			groups = append(groups, toks[start:j])
			start = j + 1
		}
	}
	if start < len(toks) {
		groups = append(groups, toks[start:])
	}
	return groups
}
