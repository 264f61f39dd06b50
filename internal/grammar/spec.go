// Package grammar declares the Bridge collaborator a FactSet is paired
// with, and the declarative Spec a reference grammar is configured from.
//
// uindex itself knows nothing about any concrete surface syntax: every
// rule name, every shape a fact can take, and every marker that spells out
// a variable is supplied externally. Spec is that external configuration,
// loaded from YAML so a deployment can describe its own fact language
// without a code change.
package grammar

import (
	"fmt"
	"io"
	"strings"

	"github.com/cazalla/uindex/internal/segment"
	"gopkg.in/yaml.v3"
)

// Role is one positional slot in a Shape. Name is the interned rule name a
// token filling this slot is given; by convention it already carries the
// var-range or unique prefix (see segment.Conventions) when the position
// requires it, e.g. "var_object" or "uniq_type".
type Role struct {
	Name string `yaml:"name"`
}

// Shape is one fact template: a fixed, ordered sequence of Roles. Dispatch
// is the literal leading token that selects this Shape when a grammar
// declares more than one — the three-table-style grammars documented in
// the reference corpus key their shape off a leading "U"/"A"/"T" token this
// way. A grammar with exactly one Shape may leave Dispatch empty.
type Shape struct {
	Dispatch string `yaml:"dispatch"`
	Roles    []Role `yaml:"roles"`
}

// Spec is a complete reference-grammar configuration.
type Spec struct {
	Name           string  `yaml:"name"`
	VarRuleName    string  `yaml:"var_rule_name"`
	VarRangePrefix string  `yaml:"var_range_prefix"`
	UniquePrefix   string  `yaml:"unique_prefix"`
	VarOpen        string  `yaml:"var_open"`
	VarClose       string  `yaml:"var_close"`
	Delimiter      string  `yaml:"delimiter"`
	Shapes         []Shape `yaml:"shapes"`
}

// LoadSpec decodes a Spec from r and validates it.
func LoadSpec(r io.Reader) (*Spec, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Spec
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("grammar: decode spec: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Spec) validate() error {
	if s.Name == "" {
		return fmt.Errorf("grammar: spec has no name")
	}
	if s.VarRuleName == "" {
		return fmt.Errorf("grammar: spec %q has no var_rule_name", s.Name)
	}
	if s.Delimiter == "" {
		return fmt.Errorf("grammar: spec %q has no delimiter", s.Name)
	}
	if len(s.Shapes) == 0 {
		return fmt.Errorf("grammar: spec %q declares no shapes", s.Name)
	}
	multi := len(s.Shapes) > 1
	for i, sh := range s.Shapes {
		if multi && sh.Dispatch == "" {
			return fmt.Errorf("grammar: spec %q shape %d: dispatch is required when more than one shape is declared", s.Name, i)
		}
		if len(sh.Roles) == 0 {
			return fmt.Errorf("grammar: spec %q shape %d: declares no roles", s.Name, i)
		}
	}
	return nil
}

// Conventions returns the rule-name conventions this Spec's Lexicon must be
// built with, so that segments interned from this grammar's rule names are
// classified the way the Spec intends.
func (s *Spec) Conventions() segment.Conventions {
	return segment.Conventions{
		VarRuleName:    s.VarRuleName,
		VarRangePrefix: s.VarRangePrefix,
		UniquePrefix:   s.UniquePrefix,
	}
}

// SelectShape picks the Shape whose Dispatch matches leadingToken. When
// exactly one Shape is declared with an empty Dispatch, it is returned
// unconditionally.
func (s *Spec) SelectShape(leadingToken string) (*Shape, error) {
	if len(s.Shapes) == 1 && s.Shapes[0].Dispatch == "" {
		return &s.Shapes[0], nil
	}
	for i := range s.Shapes {
		if s.Shapes[i].Dispatch == leadingToken {
			return &s.Shapes[i], nil
		}
	}
	return nil, fmt.Errorf("grammar: spec %q has no shape dispatched by %q", s.Name, leadingToken)
}

// IsVarToken reports whether text is spelled as a query variable, e.g.
// "<X1>" when VarOpen is "<X" and VarClose is ">".
func (s *Spec) IsVarToken(text string) bool {
	if s.VarOpen == "" || s.VarClose == "" {
		return false
	}
	return strings.HasPrefix(text, s.VarOpen) && strings.HasSuffix(text, s.VarClose)
}
