package grammar

import (
	"hash/maphash"

	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/segment"
)

// Bridge is the one collaborator a FactSet cannot supply for itself: the
// concrete surface syntax facts and queries are written in. uindex never
// parses a byte of fact text on its own — it only ever walks Path vectors
// a Bridge hands it.
//
// Facts splits a block of knowledge text into individual fact strings, in
// declaration order. Paths parses a single fact string against the
// grammar and walks its parse into the ordered Path vector a FactSet
// indexes (for a fact being told) or queries against (for a fact being
// asked). lex and seed are the owning FactSet's Lexicon and hash seed —
// every Path a Bridge returns must be built through them, so that its
// identities are comparable against the FactSet's own trie. Conventions
// reports the rule-name conventions this Bridge's grammar uses, so its
// owning FactSet's Lexicon can be built to agree with it.
type Bridge interface {
	Conventions() segment.Conventions
	Facts(knowledge string) ([]string, error)
	Paths(lex *segment.Lexicon, seed maphash.Seed, fact string) ([]*path.Path, error)
}
