package segment

import "testing"

func TestNewDerivesFlags(t *testing.T) {
	cases := []struct {
		name           string
		text           string
		wantVar        bool
		wantInVarRange bool
		wantUnique     bool
		wantEmpty      bool
	}{
		{name: "var", text: "<X1>", wantVar: true},
		{name: "var_subject", text: "john", wantInVarRange: true},
		{name: "uniq_type", text: "person", wantUnique: true},
		{name: "relation", text: "ISA0"},
		{name: "var_object", text: "   ", wantInVarRange: true, wantEmpty: true},
	}

	for _, c := range cases {
		s := New(c.name, c.text, true, "var", "var_", "uniq_")
		if s.IsVar != c.wantVar {
			t.Errorf("%s: IsVar = %v, want %v", c.name, s.IsVar, c.wantVar)
		}
		if s.InVarRange != c.wantInVarRange {
			t.Errorf("%s: InVarRange = %v, want %v", c.name, s.InVarRange, c.wantInVarRange)
		}
		if s.Unique != c.wantUnique {
			t.Errorf("%s: Unique = %v, want %v", c.name, s.Unique, c.wantUnique)
		}
		if s.IsEmpty != c.wantEmpty {
			t.Errorf("%s: IsEmpty = %v, want %v", c.name, s.IsEmpty, c.wantEmpty)
		}
	}
}

func TestString(t *testing.T) {
	s := New("relation", "ISA0", true, "var", "var_", "uniq_")
	if got, want := s.String(), "relation: ISA0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
