package trie

import "github.com/cazalla/uindex/internal/segment"

// Matching maps a query variable Segment to the Segment it was bound to. It
// is the unit of ask_fact's output: one Matching per successful traversal of
// the query's conjuncts.
type Matching map[*segment.Segment]*segment.Segment

func (m Matching) clone() Matching {
	out := make(Matching, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
