package refgrammar

import (
	"fmt"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/zalgonoise/lex"
	"github.com/zalgonoise/parse"
)

// matchedRole is one recognised Role together with the literal text
// matched at its position.
type matchedRole struct {
	role grammar.Role
	text string
}

// parseState drives the ParseFn chain that walks one fact's tokens against
// a grammar.Spec. It owns the actual recognition result (roles); the
// parse.Tree it builds alongside is bookkeeping that mirrors the token
// stream one-for-one, in the shape zalgonoise/parse expects a parser to
// maintain.
type parseState struct {
	spec   *grammar.Spec
	tokens []token
	pos    int
	shape  *grammar.Shape
	roles  []matchedRole
	err    error
}

func parseFact(spec *grammar.Spec, tokens []token) ([]matchedRole, error) {
	s := &parseState{spec: spec, tokens: tokens}

	tr := parse.New[tokenKind, string](newTokenLexer(tokens), s.selectShape, tokenEOF, "")
	tr.Parse()

	if s.err != nil {
		return nil, s.err
	}
	if s.shape == nil {
		return nil, fmt.Errorf("refgrammar: empty fact")
	}
	if len(s.roles) != len(s.shape.Roles) {
		return nil, fmt.Errorf("refgrammar: shape expects %d roles, matched %d", len(s.shape.Roles), len(s.roles))
	}
	return s.roles, nil
}

// selectShape is the ParseFn's entry point: it looks at the fact's leading
// token to pick a Shape, then hands off to parseRole.
func (s *parseState) selectShape(t *parse.Tree[tokenKind, string]) parse.ParseFn[tokenKind, string] {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != tokenWord {
		s.err = fmt.Errorf("refgrammar: fact has no leading token")
		return nil
	}

	shape, err := s.spec.SelectShape(s.tokens[s.pos].text)
	if err != nil {
		s.err = err
		return nil
	}
	s.shape = shape
	if shape.Dispatch != "" {
		// The leading token was the dispatch marker itself, not a role's
		// value — consume it before matching roles.
		s.pos++
	}
	return s.parseRole
}

// parseRole consumes one token per remaining Role in the selected Shape,
// registering a parse.Node for it (see parseState), until the Shape is
// exhausted; it then hands off to finish.
func (s *parseState) parseRole(t *parse.Tree[tokenKind, string]) parse.ParseFn[tokenKind, string] {
	idx := len(s.roles)
	if idx >= len(s.shape.Roles) {
		return s.finish
	}

	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != tokenWord {
		s.err = fmt.Errorf("refgrammar: shape %q expects %d roles, ran out of tokens after %d", s.shape.Dispatch, len(s.shape.Roles), idx)
		return nil
	}

	role := s.shape.Roles[idx]
	text := s.tokens[s.pos].text

	t.Node(lex.NewItem(s.pos, tokenWord, role.Name, text))
	s.roles = append(s.roles, matchedRole{role: role, text: text})
	s.pos++

	return s.parseRole
}

// finish consumes the trailing delimiter token, if present, and stops the
// parser.
func (s *parseState) finish(t *parse.Tree[tokenKind, string]) parse.ParseFn[tokenKind, string] {
	if s.pos < len(s.tokens) && s.tokens[s.pos].kind == tokenDelimiter {
		s.pos++
	}
	return nil
}
