package testutil

import "github.com/cs-au-dk/monotone/lang/ast"

func assign(v string, rhs ast.Expression) ast.Statement { return ast.Assign{Var: v, Rhs: rhs} }
func output(e ast.Expression) ast.Statement             { return ast.Output{Expr: e} }
func ite(g ast.Expression, thn, els ast.Block) ast.Statement {
	return ast.Conditional{Guard: g, Then: thn, Else: els}
}
func while(g ast.Expression, body ...ast.Statement) ast.Statement {
	return ast.While{Guard: g, Body: ast.Seq(body...)}
}
func lit(i int) ast.Expression               { return ast.Literal{Value: i} }
func v(name string) ast.Expression           { return ast.Var{Name: name} }
func add(l, r ast.Expression) ast.Expression { return ast.Add{Lhs: l, Rhs: r} }
func mul(l, r ast.Expression) ast.Expression { return ast.Multiply{Lhs: l, Rhs: r} }

var input ast.Expression = ast.Input{}

// Programs is the corpus of named programs shared by tests and the command line.
var Programs = map[string]ast.Block{
	// x := 1; if (1) { y := 0 } else { y := 1 }
	"program1": ast.Seq(
		assign("x", lit(1)),
		ite(lit(1),
			ast.Seq(assign("y", lit(0))),
			ast.Seq(assign("y", lit(1)))),
	),
	// x := 1; if (1) { y := 0 } else { y := x }; x := y
	"program2": ast.Seq(
		assign("x", lit(1)),
		ite(lit(1),
			ast.Seq(assign("y", lit(0))),
			ast.Seq(assign("y", v("x")))),
		assign("x", v("y")),
	),
	// z := a + b; y := a * b; while (y + (a + b)) { a := a + 1; x := a + b }
	"program3": ast.Seq(
		assign("z", add(v("a"), v("b"))),
		assign("y", mul(v("a"), v("b"))),
		while(add(v("y"), add(v("a"), v("b"))),
			assign("a", add(v("a"), lit(1))),
			assign("x", add(v("a"), v("b")))),
	),
	// x := input; y := 1; z := 0;
	// while (x) {
	//   if (y) { x := x + -1 } else { if (z) { x := 0 } else { z := x * y } };
	//   y := y + 1
	// };
	// output(x)
	"program4": ast.Seq(
		assign("x", input),
		assign("y", lit(1)),
		assign("z", lit(0)),
		while(v("x"),
			ite(v("y"),
				ast.Seq(assign("x", add(v("x"), lit(-1)))),
				ast.Seq(ite(v("z"),
					ast.Seq(assign("x", lit(0))),
					ast.Seq(assign("z", mul(v("x"), v("y"))))))),
			assign("y", add(v("y"), lit(1)))),
		output(v("x")),
	),
	// x := input; output(x)
	"program5": ast.Seq(
		assign("x", input),
		output(v("x")),
	),
	// x := input; y := 1; output(y)
	"program6": ast.Seq(
		assign("x", input),
		assign("y", lit(1)),
		output(v("y")),
	),
	// x := 1; y := x * -2; z := x + y; output(z)
	"program7": ast.Seq(
		assign("x", lit(1)),
		assign("y", mul(v("x"), lit(-2))),
		assign("z", add(v("x"), v("y"))),
		output(v("z")),
	),
	// x := input; if (x) { y := a + b } else { z := a + b }; output(y)
	"program8": ast.Seq(
		assign("x", input),
		ite(v("x"),
			ast.Seq(assign("y", add(v("a"), v("b")))),
			ast.Seq(assign("z", add(v("a"), v("b"))))),
		output(v("y")),
	),
	// x := input; while (x) { }; if (x) { } else { }; output(x)
	"degenerate": ast.Seq(
		assign("x", input),
		while(v("x")),
		ite(v("x"), ast.Block{}, ast.Block{}),
		output(v("x")),
	),
}
