package ast

import "testing"

var (
	a   = Var{"a"}
	b   = Var{"b"}
	apb = Add{a, b}
)

func TestExpressionString(t *testing.T) {
	tests := []struct {
		e        Expression
		expected string
	}{
		{Literal{-1}, "-1"},
		{Input{}, "input"},
		{apb, "(a + b)"},
		{Multiply{Var{"y"}, apb}, "(y * (a + b))"},
		{Add{Var{"x"}, Literal{-1}}, "(x + -1)"},
	}

	for _, test := range tests {
		if res := test.e.String(); res != test.expected {
			t.Errorf("String() = %s, expected %s", res, test.expected)
		}
	}
}

func TestStatementString(t *testing.T) {
	prog := Seq(
		Assign{"x", Literal{1}},
		Conditional{Literal{1}, Seq(Assign{"y", Literal{0}}), Seq(Output{Var{"x"}})},
		While{Var{"x"}, Seq(Assign{"x", Literal{0}})},
	)

	expected := "x := 1;\n" +
		"if (1) then {\ny := 0\n} else {\noutput(x)\n};\n" +
		"while (x) {\nx := 0\n}"
	if res := prog.String(); res != expected {
		t.Errorf("got\n%s\nexpected\n%s", res, expected)
	}
}

func TestStructuralEquality(t *testing.T) {
	e1 := Add{Var{"a"}, Var{"b"}}
	e2 := Add{Var{"a"}, Var{"b"}}

	if !e1.Equal(e2) {
		t.Error("structurally identical expressions should be equal")
	}
	if e1.Hash() != e2.Hash() {
		t.Error("structurally identical expressions should have identical hashes")
	}
	if e1.Equal(Multiply{Var{"a"}, Var{"b"}}) {
		t.Error("a + b should not equal a * b")
	}
	if e1.Equal(Add{Var{"b"}, Var{"a"}}) {
		t.Error("equality is structural, not modulo commutativity")
	}
}

func TestVariables(t *testing.T) {
	e := Add{Multiply{a, b}, Add{a, Var{"c"}}}
	vars := Variables(e)

	expected := []string{"a", "b", "c"}
	if len(vars) != len(expected) {
		t.Fatalf("Variables(%s) = %v, expected %v", e, vars, expected)
	}
	for i := range expected {
		if vars[i] != expected[i] {
			t.Errorf("Variables(%s) = %v, expected %v", e, vars, expected)
		}
	}

	if !Mentions(e, "c") || Mentions(e, "d") {
		t.Error("Mentions does not agree with Variables")
	}
}

func TestComplexExpressions(t *testing.T) {
	guard := Add{Var{"y"}, apb}
	res := ComplexExpressions(Add{guard, apb})

	expected := []Expression{apb, guard, Add{guard, apb}}
	if len(res) != len(expected) {
		t.Fatalf("got %v, expected %v", res, expected)
	}
	for i := range expected {
		if !res[i].Equal(expected[i]) {
			t.Errorf("got %v, expected %v", res, expected)
		}
	}

	if len(ComplexExpressions(Var{"x"})) != 0 {
		t.Error("a variable has no complex subexpressions")
	}
}
