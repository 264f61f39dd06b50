package refgrammar

import "github.com/zalgonoise/lex"

// tokenLexer adapts a pre-tokenised fact string to lex.Lexer[tokenKind,
// string], the interface zalgonoise/parse's Tree consumes as its token
// source. Tokenising up front (see tokenize) rather than scanning
// rune-by-rune keeps this grammar's lexer trivial; the interesting
// recognition logic lives entirely in the ParseFn chain in parser.go.
type tokenLexer struct {
	tokens []token
	pos    int
}

func newTokenLexer(tokens []token) *tokenLexer {
	return &tokenLexer{tokens: tokens}
}

// NextItem returns the next token as a lex.Item, advancing the lexer. Once
// the stream is exhausted it keeps returning EOF items.
func (l *tokenLexer) NextItem() lex.Item[tokenKind, string] {
	if l.pos >= len(l.tokens) {
		return lex.NewItem(len(l.tokens), tokenEOF, "")
	}
	t := l.tokens[l.pos]
	l.pos++
	return lex.NewItem(l.pos-1, t.kind, t.text)
}
