package trie

import (
	"hash/maphash"

	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/segment"
)

// FactSet owns the root node of the shared prefix trie and is the sole
// entry point for inserting and querying facts. It is append-only and
// leak-persistent: once a Node or Segment is created it lives for the
// process's lifetime, which is what lets the query evaluator and the
// insertion algorithm pass around plain pointers with no reference
// counting. FactSet is not internally synchronised beyond its Lexicon's own
// locking — tell/ask calls must be serialised by the caller.
type FactSet struct {
	root    *Node
	Lexicon *segment.Lexicon
	seed    maphash.Seed
	ID      [16]byte // an opaque instance identifier (a v4 UUID's bytes from DB.New); the trie never reads it
}

// New creates an empty FactSet using the given Lexicon. The Lexicon's
// interning and the trie's path-identity hashing are independent concerns —
// a FactSet owns exactly one of each — but both are scoped to this
// instance's lifetime.
func New(lex *segment.Lexicon, id [16]byte) *FactSet {
	return &FactSet{
		root:    newNode(),
		Lexicon: lex,
		seed:    maphash.MakeSeed(),
		ID:      id,
	}
}

// Seed returns the hash seed this FactSet's Paths must be built with: Path
// identities are only comparable within one FactSet, salted per-instance so
// that identity collisions cannot be engineered from outside.
func (fs *FactSet) Seed() maphash.Seed { return fs.seed }

// AddFact inserts a fact's path vector into the trie. It does not check for
// a pre-existing equivalent fact — callers wanting tell's idempotence call
// AskFactBool on the literal fact first (see package uindex's DB.Tell).
func (fs *FactSet) AddFact(paths []*path.Path) {
	fs.followAndCreate(fs.root, paths, newCarryOver())
}

// followAndCreate walks an existing prefix of the trie, matching as many of
// paths as possible against parent's children; on the first leaf-valued path
// with no matching child, it delegates the remainder (inclusive of that path)
// to create. A missing non-leaf path is created in place and the walk goes on. See the package doc and spec §4.3 for the rationale: only
// leaf-valued paths ever advance the walk (parent ← child); a var-range
// branching point that already exists keeps parent unchanged and is
// recorded in carry so that a later sibling path grafts onto it, which is
// what keeps the trie a shared DAG instead of a tree.
func (fs *FactSet) followAndCreate(parent *Node, paths []*path.Path, carry carryOver) {
	pathIndex := 0
	for i := 0; i < len(paths); i++ {
		p := paths[i]
		if p.Value.IsEmpty {
			pathIndex++
			continue
		}

		reindex := p.PathsAfter(paths[i+1:])
		child, found := parent.child(p.Identity())

		switch {
		case found && !child.Value.IsLeaf:
			carry.add(reindex, child)
			pathIndex++

		case found && child.Value.IsLeaf:
			parent = child
			pathIndex++

		case !found && p.Value.IsLeaf:
			fs.create(parent, paths[i:], carry, pathIndex)
			return

		default: // not found, not leaf
			child := newNode()
			child.Value = p.Value
			fs.internLChild(parent, p.Identity(), p.Value.Unique, child, carry, pathIndex)
			carry.add(reindex, child)
			pathIndex++
		}
	}
}

// create unconditionally creates a new child for every remaining path,
// starting from parent. offset is path_index's value at the point
// followAndCreate handed off, so that carry lookups keyed by a
// paths-vector-wide index keep working across the hand-off.
func (fs *FactSet) create(parent *Node, paths []*path.Path, carry carryOver, offset int) {
	pathIndex := 0
	for i := 0; i < len(paths); i++ {
		p := paths[i]
		if p.Value.IsEmpty {
			pathIndex++
			continue
		}

		realIndex := pathIndex + offset
		reindex := p.PathsAfter(paths[i+1:])

		child := newNode()
		child.Value = p.Value
		fs.internLChild(parent, p.Identity(), p.Value.Unique, child, carry, realIndex)

		if !p.Value.IsLeaf {
			carry.add(reindex, child)
			pathIndex++
			continue
		}

		parent = child
		pathIndex++
	}
}

// internLChild grafts child into both parent's map and, if carry holds a
// node remembered for index, that node's map too — the latter is how a node
// becomes reachable from two distinct parents, the shared-trie property
// carry-over exists to deliver. unique, taken from the incoming path's
// value, evicts parent's other children first (but never the grafted
// node's), enforcing single-occupancy at a uniq_-prefixed grammar position.
func (fs *FactSet) internLChild(parent *Node, identity uint64, unique bool, child *Node, carry carryOver, index int) {
	if grafted, ok := carry.take(index); ok {
		grafted.LChildren[identity] = child
	}
	parent.setChild(identity, unique, child)
}

// AskFact evaluates a conjunctive query: conjuncts[0] must match first,
// binding variables that conjuncts[1:] then see, and so on. It returns one
// Matching per successful traversal; order is unspecified (it follows Go's
// randomised map iteration order at every variable binding) and callers
// must compare results as sets.
func (fs *FactSet) AskFact(conjuncts [][]*path.Path) []Matching {
	return fs.query(fs.root, conjuncts, Matching{})
}

// AskFactBool reports whether fact (a single, typically ground, path
// vector) has at least one matching — the existence check DB.Tell uses to
// make insertion idempotent.
func (fs *FactSet) AskFactBool(fact []*path.Path) bool {
	return len(fs.AskFact([][]*path.Path{fact})) > 0
}

// query is the recursive, depth-first evaluator. node is the trie position
// reached so far; allConjuncts is the list of remaining conjuncts, head
// first; matching is the binding accumulated across all conjuncts evaluated
// so far.
func (fs *FactSet) query(node *Node, allConjuncts [][]*path.Path, matching Matching) []Matching {
	if len(allConjuncts) == 0 {
		return []Matching{matching.clone()}
	}

	paths := allConjuncts[0]
	rest := allConjuncts[1:]

	// Skip every path already consumed by trie-walking during insertion:
	// only leaf-valued paths ever correspond to a node the query evaluator
	// actually walks through (see followAndCreate/create above).
	idx := 0
	for idx < len(paths) && (paths[idx].Value.IsEmpty || !paths[idx].Value.IsLeaf) {
		idx++
	}

	if idx >= len(paths) {
		// This conjunct is exhausted. If more remain, restart the walk at
		// the root — each conjunct is independently anchored, but the
		// bindings accumulated so far carry forward (cross-conjunct
		// unification).
		if len(rest) == 0 {
			return []Matching{matching.clone()}
		}
		return fs.query(fs.root, rest, matching)
	}

	p := paths[idx]
	nextConjuncts := make([][]*path.Path, 0, len(rest)+1)
	nextConjuncts = append(nextConjuncts, paths[idx+1:])
	nextConjuncts = append(nextConjuncts, rest...)

	if p.Value.IsVar {
		if _, bound := matching[p.Value]; !bound {
			var resp []Matching
			for identity, child := range node.LChildren {
				_ = identity
				next := matching.clone()
				next[p.Value] = child.Value
				resp = append(resp, fs.query(child, nextConjuncts, next)...)
			}
			return resp
		}
		p = p.Substitute(fs.seed, matching)
	}

	next, ok := node.child(p.Identity())
	if !ok {
		return nil
	}
	return fs.query(next, nextConjuncts, matching)
}
