// Package path implements Path, the linearised root-to-node walk through a
// fact's parse tree that the trie uses as its key space.
package path

import (
	"hash/maphash"

	"github.com/cazalla/uindex/internal/segment"
)

// Path is an ordered, non-empty sequence of Segments tracing a walk from a
// fact's parse-tree root down to one chosen node, together with a cached
// 64-bit identity. Segments[0] is always the fact's root segment;
// Segments[len-1] ("Value") is the segment this Path points at.
//
// Two Paths collide (are interchangeable as trie keys) iff their segment
// sequences agree on rule-name at every position and their Value segments'
// text agrees. Path.Identity is exactly that hash.
type Path struct {
	Segments []*segment.Segment
	Value    *segment.Segment
	identity uint64
}

// New builds a Path from a non-empty, root-first segment chain, computing
// its identity from the chain's rule names and the final segment's text.
// Hashing is salted per the seed supplied by the owning FactSet (FactSet.Seed),
// so identities are only meaningful within one FactSet (see package trie's
// design notes on adversarial-input hardening).
func New(seed maphash.Seed, segments []*segment.Segment) *Path {
	value := segments[len(segments)-1]
	var h maphash.Hash
	h.SetSeed(seed)
	for _, s := range segments {
		h.WriteString(s.Name)
		h.WriteByte(0)
	}
	h.WriteString(value.Text)
	return &Path{
		Segments: segments,
		Value:    value,
		identity: h.Sum64(),
	}
}

// Identity is the 64-bit trie key for this Path.
func (p *Path) Identity() uint64 { return p.identity }

// Len is the number of segments in the walk.
func (p *Path) Len() int { return len(p.Segments) }

// StartsWith reports whether p and prefix agree, segment-by-segment, over
// prefix's full length.
func (p *Path) StartsWith(prefix *Path) bool {
	if p.Len() < prefix.Len() {
		return false
	}
	for i, s := range prefix.Segments {
		if p.Segments[i] != s {
			return false
		}
	}
	return true
}

// PathsAfter counts leading entries of paths, stopping at the first non-empty
// entry that does not start with p once at least one entry starting with p
// has been seen. Empty entries are always counted, and so are non-empty
// entries that do not start with p but come before the first one that does;
// if no entry starts with p, the result is len(paths). This is the "future
// index" at which a sibling branch rejoins the trie — see carryOver in
// package trie.
func (p *Path) PathsAfter(paths []*Path) int {
	seen := false
	i := 0
	for _, next := range paths {
		if next.Value.IsEmpty {
			i++
			continue
		}
		if next.StartsWith(p) {
			seen = true
		} else if seen {
			break
		}
		i++
	}
	return i
}

// Substitute walks the path's segment chain, replacing the first segment
// found in matching with its bound Segment and truncating the chain there.
// Because a variable Segment is always a leaf — the position it occupies in
// the parse tree has no children — substitution stops at exactly the
// variable's own position, yielding a new Path whose Value is the bound
// Segment. If no segment in the chain is bound, Substitute returns an
// equivalent Path unchanged.
func (p *Path) Substitute(seed maphash.Seed, matching map[*segment.Segment]*segment.Segment) *Path {
	newSegments := make([]*segment.Segment, 0, len(p.Segments))
	for _, s := range p.Segments {
		next := s
		if bound, ok := matching[s]; ok {
			next = bound
		}
		newSegments = append(newSegments, next)
		if next != s {
			break
		}
	}
	return New(seed, newSegments)
}
