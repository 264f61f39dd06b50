package trie_test

import (
	"testing"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/refgrammar"
	"github.com/cazalla/uindex/internal/segment"
	"github.com/cazalla/uindex/internal/trie"
)

func isaSpec() *grammar.Spec {
	return &grammar.Spec{
		Name:           "fact",
		VarRuleName:    "var",
		VarRangePrefix: "var_",
		UniquePrefix:   "uniq_",
		VarOpen:        "<X",
		VarClose:       ">",
		Delimiter:      "◊",
		Shapes: []grammar.Shape{{
			Roles: []grammar.Role{
				{Name: "var_subject"},
				{Name: "relation"},
				{Name: "var_object"},
			},
		}},
	}
}

type testDB struct {
	bridge *refgrammar.Bridge
	facts  *trie.FactSet
}

func newTestDB(t *testing.T) *testDB {
	t.Helper()
	spec := isaSpec()
	lex := segment.NewLexicon(spec.Conventions())
	return &testDB{
		bridge: refgrammar.New(spec),
		facts:  trie.New(lex, [16]byte{}),
	}
}

func (db *testDB) tell(t *testing.T, knowledge string) {
	t.Helper()
	facts, err := db.bridge.Facts(knowledge)
	if err != nil {
		t.Fatalf("Facts(%q): %v", knowledge, err)
	}
	for _, fact := range facts {
		paths, err := db.bridge.Paths(db.facts.Lexicon, db.facts.Seed(), fact)
		if err != nil {
			t.Fatalf("Paths(%q): %v", fact, err)
		}
		if db.facts.AskFactBool(paths) {
			continue
		}
		db.facts.AddFact(paths)
	}
}

// askVar splits query into conjuncts the same way Tell splits knowledge,
// and evaluates them together.
func (db *testDB) askVar(t *testing.T, query string) []trie.Matching {
	t.Helper()
	facts, err := db.bridge.Facts(query)
	if err != nil {
		t.Fatalf("Facts(%q): %v", query, err)
	}

	conjuncts := make([][]*path.Path, 0, len(facts))
	for _, fact := range facts {
		paths, err := db.bridge.Paths(db.facts.Lexicon, db.facts.Seed(), fact)
		if err != nil {
			t.Fatalf("Paths(%q): %v", fact, err)
		}
		conjuncts = append(conjuncts, paths)
	}
	return db.facts.AskFact(conjuncts)
}

// askGround reports whether a single ground fact is present.
func (db *testDB) askGround(t *testing.T, fact string) bool {
	t.Helper()
	facts, err := db.bridge.Facts(fact)
	if err != nil {
		t.Fatalf("Facts(%q): %v", fact, err)
	}
	if len(facts) != 1 {
		t.Fatalf("askGround expects exactly one fact, got %d", len(facts))
	}
	paths, err := db.bridge.Paths(db.facts.Lexicon, db.facts.Seed(), facts[0])
	if err != nil {
		t.Fatalf("Paths(%q): %v", facts[0], err)
	}
	return db.facts.AskFactBool(paths)
}

func TestAddFactAndAskBool(t *testing.T) {
	db := newTestDB(t)
	db.tell(t, "john ISA0 person ◊")

	if !db.askGround(t, "john ISA0 person ◊") {
		t.Fatal("expected the told fact to be found")
	}
	if db.askGround(t, "sue ISA0 person ◊") {
		t.Fatal("did not expect an untold fact to be found")
	}
}

func TestTellIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	db.tell(t, "john ISA0 person ◊")
	db.tell(t, "john ISA0 person ◊")

	results := db.askVar(t, "john ISA0 <X1> ◊")
	if len(results) != 1 {
		t.Fatalf("telling the same fact twice should not duplicate matchings, got %d", len(results))
	}
}

func TestAskBindsVariable(t *testing.T) {
	db := newTestDB(t)
	db.tell(t, "john ISA0 person ◊")
	db.tell(t, "john ISA0 mammal ◊")

	results := db.askVar(t, "john ISA0 <X1> ◊")
	if len(results) != 2 {
		t.Fatalf("expected 2 matchings, got %d", len(results))
	}

	seen := map[string]bool{}
	for _, m := range results {
		for _, bound := range m {
			seen[bound.Text] = true
		}
	}
	if !seen["person"] || !seen["mammal"] {
		t.Fatalf("expected bindings {person, mammal}, got %v", seen)
	}
}

func TestAskConjunctionJoinsOnSharedVariable(t *testing.T) {
	db := newTestDB(t)
	db.tell(t, "john ISA0 person ◊")
	db.tell(t, "john ISA0 mammal ◊")
	db.tell(t, "sue ISA0 person ◊")

	results := db.askVar(t, "sue ISA0 <X1> ◊ john ISA0 <X1> ◊")
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 join result (person), got %d", len(results))
	}
	for _, m := range results {
		for _, bound := range m {
			if bound.Text != "person" {
				t.Fatalf("expected the join to bind <X1>=person, got %v", bound.Text)
			}
		}
	}
}

func uniqueSpec() *grammar.Spec {
	return &grammar.Spec{
		Name:           "fact",
		VarRuleName:    "var",
		VarRangePrefix: "var_",
		UniquePrefix:   "uniq_",
		VarOpen:        "<X",
		VarClose:       ">",
		Delimiter:      "◊",
		Shapes: []grammar.Shape{{
			Roles: []grammar.Role{
				{Name: "var_subject"},
				{Name: "relation"},
				{Name: "uniq_type"},
			},
		}},
	}
}

func TestUniqueRoleEvictsPriorSibling(t *testing.T) {
	spec := uniqueSpec()
	lex := segment.NewLexicon(spec.Conventions())
	db := &testDB{bridge: refgrammar.New(spec), facts: trie.New(lex, [16]byte{})}

	db.tell(t, "john HAS dog ◊")
	if !db.askGround(t, "john HAS dog ◊") {
		t.Fatal("expected the first value to be findable before the second is told")
	}

	db.tell(t, "john HAS cat ◊")
	if db.askGround(t, "john HAS dog ◊") {
		t.Fatal("a uniq_-prefixed role should evict its prior sibling once a new value is told")
	}
	if !db.askGround(t, "john HAS cat ◊") {
		t.Fatal("expected the new value to be findable after eviction")
	}
}

// threeTablesSpec declares three shapes of arity 3/4/3, joined through a shared var_userid column between U and A
// and a shared var_city column between A and T.
func threeTablesSpec() *grammar.Spec {
	return &grammar.Spec{
		Name:           "fact",
		VarRuleName:    "var",
		VarRangePrefix: "var_",
		UniquePrefix:   "uniq_",
		VarOpen:        "<X",
		VarClose:       ">",
		Delimiter:      "◊",
		Shapes: []grammar.Shape{
			{Dispatch: "U", Roles: []grammar.Role{
				{Name: "given_name"}, {Name: "surname"}, {Name: "var_userid"},
			}},
			{Dispatch: "A", Roles: []grammar.Role{
				{Name: "var_userid"}, {Name: "street"}, {Name: "number"}, {Name: "var_city"},
			}},
			{Dispatch: "T", Roles: []grammar.Role{
				{Name: "var_city"}, {Name: "population"}, {Name: "country"},
			}},
		},
	}
}

// TestAskThreeConjunctJoin reproduces the original engine's three-tables
// scenario (original_source/examples/three-tables/src/main.rs): a person
// fact, joined through their user id to an address fact, joined through its
// city to a location fact, all in a single three-conjunct query.
func TestAskThreeConjunctJoin(t *testing.T) {
	spec := threeTablesSpec()
	lex := segment.NewLexicon(spec.Conventions())
	db := &testDB{bridge: refgrammar.New(spec), facts: trie.New(lex, [16]byte{})}

	db.tell(t, "U john smith user1 ◊")
	db.tell(t, "A user1 lane1 7 city1 ◊")
	db.tell(t, "T city1 100000 country3 ◊")

	// A second, unrelated person must not introduce a spurious join.
	db.tell(t, "U jane doe user2 ◊")
	db.tell(t, "A user2 lane2 9 city2 ◊")
	db.tell(t, "T city2 50000 country7 ◊")

	results := db.askVar(t, "U john smith <X1> ◊ A <X1> <X2> <X3> <X4> ◊ T <X4> <X5> <X6> ◊")
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 three-conjunct join result, got %d", len(results))
	}

	bound := map[string]string{}
	for v, seg := range results[0] {
		bound[v.Text] = seg.Text
	}
	want := map[string]string{
		"<X1>": "user1", "<X2>": "lane1", "<X3>": "7",
		"<X4>": "city1", "<X5>": "100000", "<X6>": "country3",
	}
	for k, v := range want {
		if bound[k] != v {
			t.Fatalf("binding %s = %q, want %q (full matching: %v)", k, bound[k], v, bound)
		}
	}
}
