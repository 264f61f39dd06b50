package refgrammar

import (
	"fmt"
	"hash/maphash"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/segment"
	"github.com/cazalla/uindex/internal/tree"
)

// buildPaths interns every segment a fact's recognised roles produce and
// walks the resulting parse tree in pre-order to build the fact's Path
// vector, one Path per node whose segment is a leaf or can hold a query
// variable. This generalises the reference engine's original visitor to an
// arbitrary-depth parse tree, though the bundled grammar itself is always
// exactly two levels deep (a fact root, and one leaf per role).
func buildPaths(lex *segment.Lexicon, seed maphash.Seed, spec *grammar.Spec, factText string, roles []matchedRole) ([]*path.Path, error) {
	root := lex.Intern(spec.Name, factText, false)
	rootNode := tree.NewNode("root", root)
	tr := tree.New[*segment.Segment](rootNode)

	for i, mr := range roles {
		name := mr.role.Name
		if spec.IsVarToken(mr.text) {
			name = spec.VarRuleName
		}
		seg := lex.Intern(name, mr.text, true)
		tr.Attach(tree.NewNode(fmt.Sprintf("role-%d", i), seg))
	}

	// Attach only ever appends a freshly built node under the tree it was
	// just built from, so a cycle here would mean a bug in this function
	// rather than anything the grammar's author could cause — but a cycle
	// would otherwise turn the DFS below into an infinite loop, so it's
	// worth the cheap check before trusting the walk.
	if tr.IsCyclic() {
		return nil, fmt.Errorf("refgrammar: parse tree for %q is cyclic", factText)
	}

	var paths []*path.Path
	for n := range tr.DFS() {
		seg := n.Data()
		if !seg.IsLeaf && !seg.InVarRange {
			continue
		}
		paths = append(paths, path.New(seed, ancestorChain(n)))
	}
	return paths, nil
}

// ancestorChain walks n's parent links back to the tree's root, returning
// the root-first segment chain path.New expects.
func ancestorChain(n tree.Node[*segment.Segment]) []*segment.Segment {
	var chain []*segment.Segment
	for cur := n; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur.Data())
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}
