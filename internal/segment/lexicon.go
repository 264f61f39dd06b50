package segment

import "sync"

// Conventions is the set of rule-name conventions a Lexicon checks every
// interned Segment against. A grammar communicates its variable rule and its
// var-range/unique prefixes through this, rather than through any parser
// integration: the Lexicon only ever sees (name, text, isLeaf) triples.
type Conventions struct {
	VarRuleName    string // e.g. "var"
	VarRangePrefix string // e.g. "var_"
	UniquePrefix   string // e.g. "uniq_"
}

// DefaultConventions mirrors the reference grammar's rule-naming scheme.
func DefaultConventions() Conventions {
	return Conventions{
		VarRuleName:    "var",
		VarRangePrefix: "var_",
		UniquePrefix:   "uniq_",
	}
}

// Lexicon is a hash-consing store for Segments: distinct (name, text,
// is_leaf) triples map to exactly one Segment, and that Segment's pointer
// is returned on every subsequent Intern call with the same triple.
// Interned Segments outlive the Lexicon — storage is append-only for the
// process lifetime, matching the trie's own append-only discipline (see
// FactSet).
//
// Lexicon is safe for concurrent Intern calls, but the wider single-threaded
// invariant of FactSet (see package trie) still applies to the engine as a
// whole.
type Lexicon struct {
	mu    sync.Mutex
	conv  Conventions
	table map[key]*Segment
}

// NewLexicon creates an empty Lexicon using the given rule-name conventions.
func NewLexicon(conv Conventions) *Lexicon {
	return &Lexicon{
		conv:  conv,
		table: make(map[key]*Segment),
	}
}

// Intern returns the canonical Segment for (name, text, isLeaf), creating
// and storing one the first time this triple is seen.
func (l *Lexicon) Intern(name, text string, isLeaf bool) *Segment {
	k := key{name: name, text: text, isLeaf: isLeaf}

	l.mu.Lock()
	defer l.mu.Unlock()

	if s, ok := l.table[k]; ok {
		return s
	}
	s := New(name, text, isLeaf, l.conv.VarRuleName, l.conv.VarRangePrefix, l.conv.UniquePrefix)
	l.table[k] = s
	return s
}

// MakeVar interns the nth query variable as a leaf Segment of the variable
// rule, e.g. MakeVar(1) yields the Segment for "<X1>".
func (l *Lexicon) MakeVar(n int) *Segment {
	return l.Intern(l.conv.VarRuleName, varText(n), true)
}

func varText(n int) string {
	const digits = "0123456789"
	if n < 10 {
		return "<X" + string(digits[n]) + ">"
	}
	// Rare path: more than 9 distinct variables in one fact.
	var buf []byte
	for n > 0 {
		buf = append([]byte{digits[n%10]}, buf...)
		n /= 10
	}
	return "<X" + string(buf) + ">"
}

// Conventions returns the rule-name conventions this Lexicon was built with.
func (l *Lexicon) Conventions() Conventions { return l.conv }
