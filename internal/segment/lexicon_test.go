package segment

import "testing"

func TestInternIsHashConsed(t *testing.T) {
	lex := NewLexicon(DefaultConventions())

	a := lex.Intern("var_subject", "john", true)
	b := lex.Intern("var_subject", "john", true)
	if a != b {
		t.Fatal("Intern should return the same pointer for equal (name, text, isLeaf)")
	}

	c := lex.Intern("var_subject", "sue", true)
	if a == c {
		t.Fatal("Intern should return distinct pointers for distinct text")
	}
}

func TestInternIsLeafDistinguishesBucket(t *testing.T) {
	lex := NewLexicon(DefaultConventions())

	leaf := lex.Intern("fact", "john ISA0 person", true)
	branch := lex.Intern("fact", "john ISA0 person", false)
	if leaf == branch {
		t.Fatal("isLeaf participates in the hash-consing key")
	}
}

func TestMakeVar(t *testing.T) {
	lex := NewLexicon(DefaultConventions())

	v1 := lex.MakeVar(1)
	v2 := lex.MakeVar(1)
	if v1 != v2 {
		t.Fatal("MakeVar(1) should be hash-consed across calls")
	}
	if !v1.IsVar {
		t.Fatal("MakeVar should produce a segment of the variable rule")
	}
	if v1.Text != "<X1>" {
		t.Fatalf("MakeVar(1).Text = %q, want %q", v1.Text, "<X1>")
	}

	v11 := lex.MakeVar(11)
	if v11.Text != "<X11>" {
		t.Fatalf("MakeVar(11).Text = %q, want %q", v11.Text, "<X11>")
	}
}
