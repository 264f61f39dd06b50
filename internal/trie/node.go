// Package trie implements FactSet: the shared prefix trie that indexes
// facts and answers conjunctive queries over them with variable binding.
//
// FactSet is the core this module exists for. A fact is inserted as an
// ordered sequence of Paths (see package path); every syntactically
// equivalent prefix of every inserted fact folds onto the same trie node,
// so a query's cost tracks the depth of the query, not the number of facts
// that happen to share no prefix with it.
package trie

import "github.com/cazalla/uindex/internal/segment"

// Node is a trie node. Value is the Segment stored at this node — nil only
// at the root. LChildren is a map from path identity to child node,
// allocated when the node is created rather than on first insertion; every child reachable through it is a position where the
// query evaluator may bind a variable ("logical child"), because spec's
// later revision folds the earlier two-map design (a separate purely
// structural children map) into this single uniform one: every inserted
// path, leaf or var-range branch point alike, is keyed here.
//
// A Node is immutable after construction except for LChildren, which only
// ever grows (or, at a unique-keyed slot, is cleared and replaced) — the
// trie is append-only, matching FactSet's single-writer, leak-persistent
// resource model.
type Node struct {
	Value     *segment.Segment
	LChildren map[uint64]*Node
}

func newNode() *Node {
	return &Node{LChildren: make(map[uint64]*Node)}
}

// child looks up the child keyed by identity, returning (nil, false) if
// none exists yet.
func (n *Node) child(identity uint64) (*Node, bool) {
	c, ok := n.LChildren[identity]
	return c, ok
}

// setChild inserts child under identity. If unique is set, every existing
// child is evicted first — this is how a unique-keyed grammar position (the
// spec's "uniq_" rule prefix) enforces single-occupancy: a fresh insertion
// discards every prior sibling sharing this parent.
func (n *Node) setChild(identity uint64, unique bool, child *Node) {
	if unique {
		clear(n.LChildren)
	}
	n.LChildren[identity] = child
}
