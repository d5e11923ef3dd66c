package cli

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
	"github.com/toyz/ctorgen/internal/parser"
)

// Position is a 1-based line and column
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Selection is an editor selection given on the command line
type Selection struct {
	Path  string
	Start Position
	End   Position
}

var selectionPattern = regexp.MustCompile(`^(.+):(\d+):(\d+)(?:-(\d+):(\d+))?$`)

// ParseSelection parses "file:line:col" or "file:line:col-line:col"
func ParseSelection(value string) (Selection, error) {
	m := selectionPattern.FindStringSubmatch(value)
	if m == nil {
		return Selection{}, errors.ValidationError("-at", "file:line:col or file:line:col-line:col", value)
	}

	sel := Selection{Path: m[1]}
	sel.Start.Line, _ = strconv.Atoi(m[2])
	sel.Start.Column, _ = strconv.Atoi(m[3])
	sel.End = sel.Start
	if m[4] != "" {
		sel.End.Line, _ = strconv.Atoi(m[4])
		sel.End.Column, _ = strconv.Atoi(m[5])
	}

	if sel.Start.Line < 1 || sel.Start.Column < 1 || sel.End.Line < 1 || sel.End.Column < 1 {
		return Selection{}, errors.ValidationError("-at", "lines and columns starting at 1", value)
	}
	if sel.End.Line < sel.Start.Line || (sel.End.Line == sel.Start.Line && sel.End.Column < sel.Start.Column) {
		return Selection{}, errors.ValidationError("-at", "a selection ending after it starts", value)
	}
	return sel, nil
}

// Span converts the selection into a byte span of text
func (s Selection) Span(text string) (models.Span, error) {
	start, ok := parser.Offset(text, s.Start.Line, s.Start.Column)
	if !ok {
		return models.Span{}, s.outOfRange(s.Start)
	}
	end, ok := parser.Offset(text, s.End.Line, s.End.Column)
	if !ok {
		return models.Span{}, s.outOfRange(s.End)
	}
	return models.Span{Start: start, End: end}, nil
}

func (s Selection) outOfRange(p Position) error {
	return errors.Newf(errors.ValidationErrorCode, "position %s is outside of %s", p, s.Path).
		WithContext("file", s.Path).
		WithHint("Lines and columns are 1-based; columns count bytes")
}
