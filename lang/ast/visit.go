package ast

import "golang.org/x/exp/slices"

// Inspect traverses the tree rooted at n in depth-first order. It calls f(n);
// if f returns true, Inspect recurses into the children of n, left to right.
func Inspect(n Node, f func(Node) bool) {
	if !f(n) {
		return
	}

	switch n := n.(type) {
	case Literal, Input, Var:
	case Add:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case Multiply:
		Inspect(n.Lhs, f)
		Inspect(n.Rhs, f)
	case Assign:
		Inspect(n.Rhs, f)
	case Output:
		Inspect(n.Expr, f)
	case Conditional:
		Inspect(n.Guard, f)
		Inspect(n.Then, f)
		Inspect(n.Else, f)
	case While:
		Inspect(n.Guard, f)
		Inspect(n.Body, f)
	case Block:
		for _, s := range n.Statements {
			Inspect(s, f)
		}
	default:
		panic(errPatternMatch(n))
	}
}

// Variables returns the names of the variables read by e, without duplicates,
// in order of first occurrence.
func Variables(e Expression) (names []string) {
	Inspect(e, func(n Node) bool {
		if v, ok := n.(Var); ok && !slices.Contains(names, v.Name) {
			names = append(names, v.Name)
		}
		return true
	})
	return
}

// IsComplex holds for compound expressions.
func IsComplex(e Expression) bool {
	switch e.(type) {
	case Add, Multiply:
		return true
	case Literal, Input, Var:
		return false
	default:
		panic(errPatternMatch(e))
	}
}

// ComplexExpressions returns the compound subexpressions of e (including e)
// in post-order, without duplicates.
func ComplexExpressions(e Expression) (res []Expression) {
	var rec func(Expression)
	rec = func(e Expression) {
		switch e := e.(type) {
		case Add:
			rec(e.Lhs)
			rec(e.Rhs)
		case Multiply:
			rec(e.Lhs)
			rec(e.Rhs)
		}

		if IsComplex(e) && slices.IndexFunc(res, e.Equal) < 0 {
			res = append(res, e)
		}
	}
	rec(e)
	return
}

// Mentions checks whether e reads variable name.
func Mentions(e Expression, name string) bool {
	return slices.Contains(Variables(e), name)
}

// StatementExpressions returns the expressions evaluated directly by s. For
// structural statements only the guard is evaluated directly.
func StatementExpressions(s Statement) []Expression {
	switch s := s.(type) {
	case Assign:
		return []Expression{s.Rhs}
	case Output:
		return []Expression{s.Expr}
	case Conditional:
		return []Expression{s.Guard}
	case While:
		return []Expression{s.Guard}
	case Block:
		return nil
	default:
		panic(errPatternMatch(s))
	}
}
