// Package uindex is the public surface of the inference engine: DB pairs a
// grammar.Bridge with a FactSet and exposes the two operations a caller
// needs, Tell and Ask. Everything else — Segment, Lexicon, Path, the trie
// itself — is an internal implementation detail reachable only through
// this package's re-exports (see alias.go), the same shape the teacher's
// own pkg/shaker fronts internal/jsonpath.
package uindex

import (
	"fmt"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/cazalla/uindex/internal/path"
	"github.com/cazalla/uindex/internal/segment"
	"github.com/cazalla/uindex/internal/trie"
	"github.com/google/uuid"
)

// DB is a knowledge base: one grammar.Bridge paired with one FactSet. The
// zero value is not usable — construct one with New.
type DB struct {
	bridge grammar.Bridge
	facts  *trie.FactSet
}

// New creates an empty DB whose facts and queries are parsed through
// bridge.
func New(bridge grammar.Bridge) *DB {
	lex := segment.NewLexicon(bridge.Conventions())
	return &DB{
		bridge: bridge,
		facts:  trie.New(lex, uuid.New()),
	}
}

// Tell adds every fact in knowledge to the DB. A fact already present
// (by AskFactBool's definition of "present") is silently skipped, making
// Tell idempotent: telling the same knowledge twice leaves the DB
// unchanged the second time.
//
// A knowledge string that does not parse against the DB's grammar is a
// programming error, not a recoverable runtime condition — Tell panics
// with the offending input rather than returning an error.
func (db *DB) Tell(knowledge string) {
	facts, err := db.bridge.Facts(knowledge)
	if err != nil {
		panic(fmt.Errorf("uindex: tell %q: %w", knowledge, err))
	}
	for _, fact := range facts {
		paths, err := db.bridge.Paths(db.facts.Lexicon, db.facts.Seed(), fact)
		if err != nil {
			panic(fmt.Errorf("uindex: tell %q: %w", fact, err))
		}
		if db.facts.AskFactBool(paths) {
			continue
		}
		db.facts.AddFact(paths)
	}
}

// Ask evaluates a conjunctive query: query is split into facts the same
// way Tell splits knowledge, and each fact becomes one conjunct, evaluated
// left to right — a variable bound in an earlier conjunct (e.g. <X1> in
// "sue ISA0 <X1> ◊") must be satisfied by the same binding in every later
// conjunct that mentions it.
//
// Ask returns one Matching per successful traversal, or nil if query has
// no solutions. As with Tell, a query that does not parse panics.
func (db *DB) Ask(query string) []Matching {
	facts, err := db.bridge.Facts(query)
	if err != nil {
		panic(fmt.Errorf("uindex: ask %q: %w", query, err))
	}
	if len(facts) == 0 {
		return nil
	}

	conjuncts := make([][]*path.Path, 0, len(facts))
	for _, fact := range facts {
		paths, err := db.bridge.Paths(db.facts.Lexicon, db.facts.Seed(), fact)
		if err != nil {
			panic(fmt.Errorf("uindex: ask %q: %w", fact, err))
		}
		conjuncts = append(conjuncts, paths)
	}

	results := db.facts.AskFact(conjuncts)
	if len(results) == 0 {
		return nil
	}
	out := make([]Matching, len(results))
	for i, r := range results {
		out[i] = Matching(r)
	}
	return out
}

// AskBool reports whether query has at least one solution.
func (db *DB) AskBool(query string) bool {
	return len(db.Ask(query)) > 0
}
