package refgrammar

import (
	"fmt"
	"hash/maphash"
	"strings"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/segment"
)

// Bridge implements grammar.Bridge against a single grammar.Spec.
type Bridge struct {
	spec *grammar.Spec
}

// New returns a Bridge driven by spec.
func New(spec *grammar.Spec) *Bridge {
	return &Bridge{spec: spec}
}

// Conventions reports the rule-name conventions spec was configured with.
func (b *Bridge) Conventions() segment.Conventions {
	return b.spec.Conventions()
}

// Facts splits knowledge into individual fact strings, each ending at (and
// including) the grammar's delimiter token.
func (b *Bridge) Facts(knowledge string) ([]string, error) {
	fields := strings.Fields(knowledge)
	var facts []string
	var cur []string
	for _, f := range fields {
		cur = append(cur, f)
		if f == b.spec.Delimiter {
			facts = append(facts, strings.Join(cur, " "))
			cur = nil
		}
	}
	if len(cur) > 0 {
		return nil, fmt.Errorf("refgrammar: trailing tokens %v without a closing %q", cur, b.spec.Delimiter)
	}
	return facts, nil
}

// Paths parses fact against the Bridge's grammar.Spec and walks it into a
// Path vector, interning every segment through lex and hashing every Path
// with seed.
func (b *Bridge) Paths(lex *segment.Lexicon, seed maphash.Seed, fact string) ([]*path.Path, error) {
	tokens := tokenize(fact, b.spec.Delimiter)
	roles, err := parseFact(b.spec, tokens)
	if err != nil {
		return nil, err
	}
	return buildPaths(lex, seed, b.spec, fact, roles)
}
