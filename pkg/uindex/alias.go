package uindex

import (
	"io"

	"github.com/cazalla/uindex/internal/grammar"
	"github.com/cazalla/uindex/internal/refgrammar"
	"github.com/cazalla/uindex/internal/segment"
	"github.com/cazalla/uindex/internal/trie"
)

// Segment is the interned grammar token a Matching binds variables to.
type Segment = segment.Segment

// Matching is a single query solution: a binding from a query variable's
// Segment to the Segment it was matched against.
type Matching = trie.Matching

// Bridge is the collaborator DB needs to parse its fact language. See
// package grammar for the contract, and package refgrammar for the
// bundled implementation NewReferenceBridge builds on.
type Bridge = grammar.Bridge

// Spec is a reference-grammar configuration, as loaded by LoadSpec.
type Spec = grammar.Spec

// LoadSpec decodes and validates a grammar.Spec from YAML.
func LoadSpec(r io.Reader) (*Spec, error) {
	return grammar.LoadSpec(r)
}

// NewReferenceBridge builds the bundled grammar.Bridge implementation from
// a loaded Spec.
func NewReferenceBridge(spec *Spec) Bridge {
	return refgrammar.New(spec)
}
