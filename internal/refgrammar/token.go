// Package refgrammar is the bundled reference implementation of
// grammar.Bridge: a whitespace-tokenised, fixed-arity fact language
// configured entirely through a grammar.Spec. It exists so uindex is
// usable out of the box and to exercise the grammar package end to end;
// production deployments with a richer surface syntax supply their own
// grammar.Bridge instead.
package refgrammar

import "strings"

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenDelimiter
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits input on whitespace, tagging the grammar's delimiter
// token (e.g. "◊") as it goes and terminating the stream with an explicit
// EOF marker.
func tokenize(input, delimiter string) []token {
	fields := strings.Fields(input)
	tokens := make([]token, 0, len(fields)+1)
	for _, f := range fields {
		kind := tokenWord
		if f == delimiter {
			kind = tokenDelimiter
		}
		tokens = append(tokens, token{kind: kind, text: f})
	}
	tokens = append(tokens, token{kind: tokenEOF})
	return tokens
}
