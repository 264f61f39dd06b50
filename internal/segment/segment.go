// Package segment implements the interned grammar tokens that populate a
// FactSet's trie and a Lexicon, the hash-consing store that interns them.
//
// A Segment is the atomic unit the rest of the engine reasons about: one
// node of a fact's parse tree, reduced to the PEG rule name that produced it,
// the literal source text it covers, and a handful of booleans the trie and
// query evaluator use to decide how to treat it (is it a leaf, can a
// variable occupy its grammar position, does it evict its siblings on
// insert). Two Segments are equal iff (name, text) match; the Lexicon
// returns the same pointer for equal (name, text, isLeaf) triples, and a
// rule name fixes leaf-ness, so downstream code compares Segments by
// identity.
package segment

import "strings"

// Segment is an immutable, interned grammar token.
//
// Name is the PEG rule that produced the node; Text is the exact source
// substring it covers. IsLeaf is true iff the rule matched a terminal with
// no children. IsVar is true iff Name is the distinguished variable rule.
// InVarRange is true iff Name carries the var-range prefix, marking a
// grammar position a variable may occupy at query time. Unique is true iff
// Name carries the unique prefix: inserting a trie node for this segment
// evicts every prior sibling in its parent's child map.
type Segment struct {
	Name       string
	Text       string
	IsLeaf     bool
	IsVar      bool
	InVarRange bool
	Unique     bool
	IsEmpty    bool
}

// New constructs a Segment, deriving IsVar/InVarRange/Unique/IsEmpty from
// name and text against the given rule-name conventions. Callers should go
// through Lexicon.Intern rather than calling New directly, so that equal
// Segments share one allocation.
func New(name, text string, isLeaf bool, varRuleName, varRangePrefix, uniquePrefix string) *Segment {
	return &Segment{
		Name:       name,
		Text:       text,
		IsLeaf:     isLeaf,
		IsVar:      name == varRuleName,
		InVarRange: strings.HasPrefix(name, varRangePrefix),
		Unique:     strings.HasPrefix(name, uniquePrefix),
		IsEmpty:    strings.TrimSpace(text) == "",
	}
}

// String renders the segment as "name: text", matching the diagnostic form
// facts are printed in when debugging a query.
func (s *Segment) String() string {
	return s.Name + ": " + s.Text
}

// key is the hash-consing key: two segments with the same (name, text,
// isLeaf) are the same Segment. IsLeaf participates only for bucket
// stability; it never distinguishes two otherwise-identical segments
// semantically, since a rule name deterministically fixes leaf-ness.
type key struct {
	name   string
	text   string
	isLeaf bool
}
