package parser

import (
	"strings"

	"github.com/toyz/ctorgen/internal/annotations"
	"github.com/toyz/ctorgen/internal/errors"
	"github.com/toyz/ctorgen/internal/models"
)

// Parser extracts class models from C# source text
type Parser struct {
	resolver   *annotations.Resolver
	attributes *annotations.ParticipleParser
}

// NewParser creates a new C# declaration parser. A nil resolver uses the default marker registry.
func NewParser(resolver *annotations.Resolver) *Parser {
	if resolver == nil {
		resolver = annotations.NewResolver(nil)
	}
	return &Parser{
		resolver:   resolver,
		attributes: annotations.NewParticipleParser(),
	}
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*models.File, error) {
	return p.ParseDocument(models.NewDocument(filename, source))
}

// ParseDocument parses every type declaration in the document
func (p *Parser) ParseDocument(doc models.Document) (*models.File, error) {
	tokens, err := Tokenize(doc.Name, doc.Text)
	if err != nil {
		return nil, errors.WrapParseError(doc.Name, errors.SourceLocation{File: doc.Name}, err)
	}

	s := &state{parser: p, doc: doc, toks: significant(tokens)}
	classes, err := s.parseScope(false)
	if err != nil {
		return nil, err
	}

	return &models.File{Document: doc, Classes: classes}, nil
}

// state is the cursor over the significant tokens of one document
type state struct {
	parser *Parser
	doc    models.Document
	toks   []Token
	pos    int
}

func (s *state) peek() Token {
	return s.peekAt(0)
}

func (s *state) peekAt(n int) Token {
	if s.pos+n >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+n]
}

func (s *state) next() Token {
	tok := s.peek()
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return tok
}

func (s *state) location(tok Token) errors.SourceLocation {
	return errors.SourceLocation{File: s.doc.Name, Line: tok.Line, Column: tok.Column}
}

func (s *state) errorf(tok Token, format string, args ...interface{}) error {
	return errors.Newf(errors.SyntaxErrorCode, format, args...).
		WithLocation(s.location(tok)).
		WithContext("token", tok.Value).
		WithHint("make sure the file compiles; braces, brackets and parentheses must be balanced")
}

// parseScope parses namespace and file level declarations. Nested scopes stop
// at their closing brace without consuming it.
func (s *state) parseScope(nested bool) ([]models.Class, error) {
	var classes []models.Class
	for {
		tok := s.peek()
		if tok.Kind == EOFToken {
			if nested {
				return nil, s.errorf(tok, "unexpected end of file, expected '}'")
			}
			return classes, nil
		}
		if tok.Is("}") {
			if nested {
				return classes, nil
			}
			return nil, s.errorf(tok, "unexpected '}'")
		}

		start := tok.Offset
		if _, err := s.parseAttributes(); err != nil {
			return nil, err
		}
		s.parseModifiers()

		switch {
		case s.peek().Is(keywordNamespace):
			inner, err := s.parseNamespace()
			if err != nil {
				return nil, err
			}
			classes = append(classes, inner...)
		case s.atTypeKeyword():
			cls, ok, err := s.parseTypeDeclaration(start)
			if err != nil {
				return nil, err
			}
			if ok {
				classes = append(classes, cls)
			}
		default:
			if err := s.skipMember(); err != nil {
				return nil, err
			}
		}
	}
}

func (s *state) parseNamespace() ([]models.Class, error) {
	s.next()
	for !s.peek().Is("{") && !s.peek().Is(";") {
		if s.peek().Kind == EOFToken {
			return nil, s.errorf(s.peek(), "unexpected end of file in namespace declaration")
		}
		s.next()
	}

	// File-scoped namespace: the rest of the file belongs to it
	if s.next().Is(";") {
		return nil, nil
	}

	classes, err := s.parseScope(true)
	if err != nil {
		return nil, err
	}
	s.next()
	return classes, nil
}

func (s *state) atTypeKeyword() bool {
	tok := s.peek()
	switch {
	case tok.Is(keywordClass), tok.Is(keywordStruct), tok.Is(keywordInterface), tok.Is(keywordEnum), tok.Is(keywordDelegate):
		return true
	case tok.Is(keywordRecord):
		next := s.peekAt(1)
		return next.Kind == IdentToken
	}
	return false
}

// parseTypeDeclaration parses a class, struct or record. Interfaces, enums and
// delegates are skipped and reported with ok == false.
func (s *state) parseTypeDeclaration(start int) (models.Class, bool, error) {
	keyword := s.next()

	kind := models.ClassKind
	switch keyword.Value {
	case keywordStruct:
		kind = models.StructKind
	case keywordRecord:
		kind = models.RecordKind
		if s.peek().Is(keywordStruct) {
			s.next()
			kind = models.RecordStructKind
		} else if s.peek().Is(keywordClass) {
			s.next()
		}
	case keywordDelegate:
		return models.Class{}, false, s.skipMember()
	case keywordInterface, keywordEnum:
		return models.Class{}, false, s.skipTypeBody()
	}

	name := s.next()
	if name.Kind != IdentToken {
		return models.Class{}, false, s.errorf(name, "expected type name after '%s'", keyword.Value)
	}

	// Type parameters, primary constructor, base list and constraints
	for !s.peek().Is("{") {
		tok := s.peek()
		switch {
		case tok.Kind == EOFToken:
			return models.Class{}, false, s.errorf(tok, "unexpected end of file in declaration of %s", name.Value)
		case tok.Is(";"):
			s.next()
			return models.Class{}, false, nil
		case tok.Is("("):
			if _, err := s.skipBalanced("(", ")"); err != nil {
				return models.Class{}, false, err
			}
		default:
			s.next()
		}
	}

	open := s.next()
	cls := models.Class{
		Name:      name.Value,
		Kind:      kind,
		OpenBrace: open.Offset,
	}

	if err := s.parseMembers(&cls); err != nil {
		return models.Class{}, false, err
	}

	closing := s.next()
	cls.CloseBrace = closing.Offset
	cls.Span = models.Span{Start: start, End: closing.End()}
	cls.HeaderSpan = models.Span{Start: start, End: open.End()}
	if s.peek().Is(";") {
		s.next()
	}
	return cls, true, nil
}

func (s *state) skipTypeBody() error {
	for !s.peek().Is("{") {
		if s.peek().Kind == EOFToken {
			return s.errorf(s.peek(), "unexpected end of file, expected '{'")
		}
		if s.peek().Is(";") {
			s.next()
			return nil
		}
		s.next()
	}
	if _, err := s.skipBalanced("{", "}"); err != nil {
		return err
	}
	if s.peek().Is(";") {
		s.next()
	}
	return nil
}

// parseMembers fills cls with the members up to, not including, the closing brace
func (s *state) parseMembers(cls *models.Class) error {
	for {
		tok := s.peek()
		if tok.Kind == EOFToken {
			return s.errorf(tok, "unexpected end of file in %s, expected '}'", cls.Name)
		}
		if tok.Is("}") {
			return nil
		}

		start := tok.Offset
		attrs, err := s.parseAttributes()
		if err != nil {
			return err
		}
		mods := s.parseModifiers()
		tok = s.peek()

		switch {
		case s.atTypeKeyword():
			nested, ok, err := s.parseTypeDeclaration(start)
			if err != nil {
				return err
			}
			if ok {
				cls.Nested = append(cls.Nested, nested)
			}
		case tok.Kind == IdentToken && tok.Value == cls.Name && s.peekAt(1).Is("("):
			ctor, err := s.parseConstructor(start, attrs, mods)
			if err != nil {
				return err
			}
			cls.Constructors = append(cls.Constructors, ctor)
		case tok.Is(keywordEvent), tok.Is("~"), tok.Is("implicit"), tok.Is("explicit"):
			if err := s.skipMember(); err != nil {
				return err
			}
		default:
			members, err := s.parseFieldOrProperty(start, attrs, mods)
			if err != nil {
				return err
			}
			cls.Members = append(cls.Members, members...)
		}
	}
}

// parseAttributes parses consecutive attribute sections
func (s *state) parseAttributes() ([]annotations.Attribute, error) {
	var attrs []annotations.Attribute
	for s.peek().Is("[") {
		open := s.peek()
		closing, err := s.skipBalanced("[", "]")
		if err != nil {
			return nil, err
		}

		loc := annotations.SourceLocation{File: s.doc.Name, Line: open.Line, Column: open.Column}
		section, err := s.parser.attributes.ParseSection(s.doc.Text[open.Offset:closing.End()], loc)
		if err != nil {
			wrapped := errors.WrapParseError(s.doc.Name, s.location(open), err)
			hint := "attribute sections have the form [Name] or [target: Name(args)]"
			var attrErr annotations.AnnotationError
			if errors.As(err, &attrErr) {
				l := attrErr.Location()
				wrapped.WithLocation(errors.SourceLocation{File: l.File, Line: l.Line, Column: l.Column})
				if attrErr.Suggestion() != "" {
					hint = attrErr.Suggestion()
				}
			}
			return nil, wrapped.WithHint(hint)
		}
		attrs = append(attrs, section...)
	}
	return attrs, nil
}

func (s *state) parseModifiers() map[string]bool {
	mods := make(map[string]bool)
	for {
		tok := s.peek()
		if tok.Kind != IdentToken || !modifiers[tok.Value] {
			return mods
		}
		mods[tok.Value] = true
		s.next()
	}
}

// parseFieldOrProperty parses a field or property declaration. Any other member
// (method, indexer, operator, explicit interface implementation) is skipped.
func (s *state) parseFieldOrProperty(start int, attrs []annotations.Attribute, mods map[string]bool) ([]models.Member, error) {
	typeRef, ok := s.parseType()
	if !ok {
		return nil, s.skipMember()
	}

	nameTok := s.peek()
	if nameTok.Kind != IdentToken || nameTok.Is(keywordOperator) || nameTok.Is(keywordThis) {
		return nil, s.skipMember()
	}
	s.next()

	after := s.peek()
	switch {
	case after.Is("."), after.Is("::"), after.Is("("), after.Is("<"):
		return nil, s.skipMember()

	case after.Is("{"):
		closing, err := s.skipBalanced("{", "}")
		if err != nil {
			return nil, err
		}
		end := closing.End()
		hasInitializer := false
		if s.peek().Is("=") {
			hasInitializer = true
			semi, err := s.skipToSemicolon()
			if err != nil {
				return nil, err
			}
			end = semi.End()
		}
		return []models.Member{s.newMember(nameTok, typeRef, models.PropertyMember, attrs, mods, hasInitializer, start, end)}, nil

	case after.Is("=>"):
		semi, err := s.skipToSemicolon()
		if err != nil {
			return nil, err
		}
		return []models.Member{s.newMember(nameTok, typeRef, models.PropertyMember, attrs, mods, true, start, semi.End())}, nil
	}

	return s.parseFieldDeclarators(nameTok, typeRef, attrs, mods, start)
}

// parseFieldDeclarators expands "T a, b = x;" into one member per declarator
func (s *state) parseFieldDeclarators(name Token, typeRef models.TypeRef, attrs []annotations.Attribute, mods map[string]bool, start int) ([]models.Member, error) {
	var members []models.Member
	for {
		hasInitializer := false
		if s.peek().Is("[") {
			if _, err := s.skipBalanced("[", "]"); err != nil {
				return nil, err
			}
		}
		if s.peek().Is("=") {
			s.next()
			hasInitializer = true
			s.skipInitializer()
		}
		members = append(members, s.newMember(name, typeRef, models.FieldMember, attrs, mods, hasInitializer, start, 0))

		tok := s.next()
		switch {
		case tok.Is(","):
			name = s.next()
			if name.Kind != IdentToken {
				return nil, s.errorf(name, "expected field name after ','")
			}
		case tok.Is(";"):
			for i := range members {
				members[i].DeclSpan.End = tok.End()
			}
			return members, nil
		default:
			return nil, s.errorf(tok, "expected ',' or ';' after field %s", name.Value)
		}
	}
}

func (s *state) newMember(name Token, typeRef models.TypeRef, kind models.MemberKind, attrs []annotations.Attribute, mods map[string]bool, hasInitializer bool, start, end int) models.Member {
	target := annotations.FieldTarget
	if kind == models.PropertyMember {
		target = annotations.PropertyTarget
	}
	return models.Member{
		Name:           name.Value,
		Type:           typeRef,
		Kind:           kind,
		IsReadonly:     kind == models.FieldMember && mods["readonly"],
		IsStatic:       mods["static"],
		HasInitializer: hasInitializer || mods["const"],
		Markers:        s.parser.resolver.Markers(attrs, target),
		Attributes:     attrs,
		Span:           models.Span{Start: name.Offset, End: name.End()},
		DeclSpan:       models.Span{Start: start, End: end},
	}
}

// parseType reads a type reference: qualified names, generic arguments, tuples,
// arrays, nullable and pointer suffixes
func (s *state) parseType() (models.TypeRef, bool) {
	var parts []string

	switch tok := s.peek(); {
	case tok.Is("("):
		startIdx := s.pos
		if _, err := s.skipBalanced("(", ")"); err != nil {
			return "", false
		}
		for _, t := range s.toks[startIdx:s.pos] {
			parts = append(parts, t.Value)
		}
	case tok.Kind == IdentToken:
		parts = append(parts, s.next().Value)
		for {
			if s.peek().Is("<") {
				args, ok := s.skipAngles()
				if !ok {
					return "", false
				}
				parts = append(parts, args...)
			}
			if (s.peek().Is(".") || s.peek().Is("::")) && s.peekAt(1).Kind == IdentToken {
				parts = append(parts, s.next().Value, s.next().Value)
				continue
			}
			break
		}
	default:
		return "", false
	}

	for {
		tok := s.peek()
		switch {
		case tok.Is("?"), tok.Is("*"):
			parts = append(parts, s.next().Value)
		case tok.Is("[") && (s.peekAt(1).Is("]") || s.peekAt(1).Is(",")):
			for !s.peek().Is("]") && s.peek().Kind != EOFToken {
				parts = append(parts, s.next().Value)
			}
			parts = append(parts, s.next().Value)
		default:
			return models.NewTypeRef(strings.Join(parts, " ")), true
		}
	}
}

// skipAngles consumes a balanced generic argument list and returns its token values
func (s *state) skipAngles() ([]string, bool) {
	var parts []string
	depth := 0
	for {
		tok := s.peek()
		switch {
		case tok.Kind == EOFToken, tok.Is(";"), tok.Is("{"), tok.Is("}"):
			return nil, false
		case tok.Is("<"):
			depth++
		case tok.Is(">"):
			depth--
		}
		parts = append(parts, s.next().Value)
		if depth == 0 {
			return parts, true
		}
	}
}

// parseConstructor parses a constructor starting at its name
func (s *state) parseConstructor(start int, attrs []annotations.Attribute, mods map[string]bool) (models.Constructor, error) {
	nameTok := s.next()

	visibility := models.OtherVisibility
	if mods["public"] {
		visibility = models.PublicVisibility
	}
	markers := s.parser.resolver.Markers(attrs, annotations.ConstructorTarget)

	ctor := models.Constructor{
		Name:         nameTok.Value,
		Visibility:   visibility,
		IsStatic:     mods["static"],
		IsDesignated: markers.Has(annotations.DesignatedMarker),
		Attributes:   attrs,
		NameSpan:     models.Span{Start: nameTok.Offset, End: nameTok.End()},
	}

	open := s.peek()
	openIdx := s.pos
	closing, err := s.skipBalanced("(", ")")
	if err != nil {
		return ctor, err
	}
	ctor.ParamSpan = models.Span{Start: open.Offset, End: closing.End()}
	ctor.Parameters = s.parseParameters(s.toks[openIdx+1 : s.pos-1])

	if s.peek().Is(":") {
		colon := s.next()
		keyword := s.next()
		if !keyword.Is(keywordThis) && !keyword.Is(keywordBase) {
			return ctor, s.errorf(keyword, "expected 'this' or 'base' in constructor initializer")
		}
		argsOpen := s.peek()
		if !argsOpen.Is("(") {
			return ctor, s.errorf(argsOpen, "expected '(' after '%s'", keyword.Value)
		}
		argsClose, err := s.skipBalanced("(", ")")
		if err != nil {
			return ctor, err
		}
		ctor.Initializer = &models.Initializer{
			Keyword:   keyword.Value,
			Arguments: s.doc.Text[argsOpen.End():argsClose.Offset],
			Span:      models.Span{Start: colon.Offset, End: argsClose.End()},
		}
	}

	switch tok := s.peek(); {
	case tok.Is("{"):
		bodyIdx := s.pos
		closeBrace, err := s.skipBalanced("{", "}")
		if err != nil {
			return ctor, err
		}
		ctor.BodyKind = models.BlockBody
		ctor.BodySpan = models.Span{Start: tok.Offset, End: closeBrace.End()}
		ctor.Body = s.splitStatements(s.toks[bodyIdx+1 : s.pos-1])
	case tok.Is("=>"):
		arrow := s.next()
		exprIdx := s.pos
		semi, err := s.skipToSemicolon()
		if err != nil {
			return ctor, err
		}
		ctor.BodyKind = models.ExpressionBody
		ctor.BodySpan = models.Span{Start: arrow.Offset, End: semi.End()}
		ctor.Body = []models.Statement{s.classifyStatement(s.toks[exprIdx:s.pos])}
	case tok.Is(";"):
		semi := s.next()
		ctor.BodyKind = models.NoBody
		ctor.BodySpan = models.Span{Start: semi.Offset, End: semi.End()}
	default:
		return ctor, s.errorf(tok, "expected constructor body for %s", ctor.Name)
	}

	ctor.Span = models.Span{Start: start, End: ctor.BodySpan.End}
	return ctor, nil
}

// parseParameters splits a parameter list at top-level commas
func (s *state) parseParameters(toks []Token) []models.Param {
	var params []models.Param
	for _, group := range splitTopLevel(toks, ",", true) {
		if len(group) == 0 {
			continue
		}
		params = append(params, s.parseParameter(group))
	}
	return params
}

func (s *state) parseParameter(toks []Token) models.Param {
	text := s.doc.Text[toks[0].Offset:toks[len(toks)-1].End()]

	i := 0
	for i < len(toks) && toks[i].Is("[") {
		i = matchingIndex(toks, i) + 1
	}

	nameIdx := len(toks) - 1
	for j := i; j < len(toks); j++ {
		if toks[j].Is("=") {
			nameIdx = j - 1
			break
		}
	}
	for i < nameIdx-1 && toks[i].Kind == IdentToken && parameterModifiers[toks[i].Value] {
		i++
	}
	if nameIdx <= i || toks[nameIdx].Kind != IdentToken {
		return models.Param{Text: text}
	}

	var typeParts []string
	for _, t := range toks[i:nameIdx] {
		typeParts = append(typeParts, t.Value)
	}
	return models.Param{
		Type: models.NewTypeRef(strings.Join(typeParts, " ")),
		Name: toks[nameIdx].Value,
		Text: text,
	}
}

// skipBalanced consumes from the current open token through its matching close token
func (s *state) skipBalanced(open, close string) (Token, error) {
	start := s.peek()
	if !start.Is(open) {
		return start, s.errorf(start, "expected '%s'", open)
	}
	depth := 0
	for {
		tok := s.next()
		switch {
		case tok.Kind == EOFToken:
			return tok, s.errorf(start, "unbalanced '%s'", open)
		case tok.Is(open):
			depth++
		case tok.Is(close):
			depth--
			if depth == 0 {
				return tok, nil
			}
		}
	}
}

// skipToSemicolon consumes through the next ';' outside any nesting
func (s *state) skipToSemicolon() (Token, error) {
	depth := 0
	for {
		tok := s.peek()
		switch {
		case tok.Kind == EOFToken:
			return tok, s.errorf(tok, "unexpected end of file, expected ';'")
		case depth == 0 && tok.Is("}"):
			return tok, s.errorf(tok, "expected ';'")
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			depth--
		case depth == 0 && tok.Is(";"):
			return s.next(), nil
		}
		s.next()
	}
}

// skipInitializer consumes a field initializer up to the ',' that starts the
// next declarator or the terminating ';'
func (s *state) skipInitializer() {
	depth := 0
	for {
		tok := s.peek()
		switch {
		case tok.Kind == EOFToken:
			return
		case depth == 0 && (tok.Is(";") || tok.Is("}")):
			return
		case depth == 0 && tok.Is(",") && s.peekAt(1).Kind == IdentToken &&
			(s.peekAt(2).Is("=") || s.peekAt(2).Is(",") || s.peekAt(2).Is(";")):
			return
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"), tok.Is("}"):
			depth--
		}
		s.next()
	}
}

// skipMember consumes any member declaration the parser does not model
func (s *state) skipMember() error {
	depth := 0
	for {
		tok := s.peek()
		switch {
		case tok.Kind == EOFToken:
			return nil
		case depth <= 0 && tok.Is("}"):
			return nil
		case depth <= 0 && tok.Is(";"):
			s.next()
			return nil
		case depth <= 0 && tok.Is("{"):
			if _, err := s.skipBalanced("{", "}"); err != nil {
				return err
			}
			if s.peek().Is("=") {
				_, err := s.skipToSemicolon()
				return err
			}
			if s.peek().Is(";") {
				s.next()
			}
			return nil
		case tok.Is("("), tok.Is("["):
			depth++
		case tok.Is(")"), tok.Is("]"):
			depth--
		}
		s.next()
	}
}
