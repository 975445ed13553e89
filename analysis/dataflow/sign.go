package dataflow

import (
	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
)

// EvalSign abstractly evaluates e in store. Every variable read by e must be
// bound in store.
func EvalSign(store L.Store[L.Sign], e ast.Expression) L.Sign {
	switch e := e.(type) {
	case ast.Input:
		return L.Unknown
	case ast.Literal:
		return L.SignOf(e.Value)
	case ast.Var:
		return store.MustGet(e.Name)
	case ast.Add:
		return addSigns(EvalSign(store, e.Lhs), EvalSign(store, e.Rhs))
	case ast.Multiply:
		return multiplySigns(EvalSign(store, e.Lhs), EvalSign(store, e.Rhs))
	default:
		panic(errPatternMatch(e))
	}
}

func addSigns(l, r L.Sign) L.Sign {
	nonNeg := func(s L.Sign) bool { return s == L.Pos || s == L.Zero }
	nonPos := func(s L.Sign) bool { return s == L.Neg || s == L.Zero }

	switch {
	case l == L.NoSign:
		return r
	case r == L.NoSign:
		return l
	case l == L.Zero && r == L.Zero:
		return L.Zero
	case nonNeg(l) && nonNeg(r):
		return L.Pos
	case nonPos(l) && nonPos(r):
		return L.Neg
	default:
		return L.Unknown
	}
}

func multiplySigns(l, r L.Sign) L.Sign {
	switch {
	case l == L.NoSign:
		return r
	case r == L.NoSign:
		return l
	case l == L.Zero || r == L.Zero:
		return L.Zero
	case l == L.Unknown || r == L.Unknown:
		return L.Unknown
	case l == r:
		return L.Pos
	default:
		return L.Neg
	}
}

type signAnalysis struct{}

func (signAnalysis) Statement(_ int, stmt ast.AtomicStatement, in L.Store[L.Sign]) L.Store[L.Sign] {
	switch s := stmt.(type) {
	case ast.Assign:
		// Strict in unreached operands: NoSign is the identity of EvalSign,
		// which would let -2 * a flip between + and - at a loop head.
		for _, x := range ast.Variables(s.Rhs) {
			if in.MustGet(x) == L.NoSign {
				return in.Update(s.Var, L.NoSign)
			}
		}
		return in.Update(s.Var, EvalSign(in, s.Rhs))
	case ast.Output:
		return in
	default:
		panic(errUnsupported(s))
	}
}

func (signAnalysis) Guard(_ ast.Expression, in L.Store[L.Sign]) L.Store[L.Sign] {
	return in
}

// Sign is a forward analysis computing the possible signs of every variable
// on exit from each block.
func Sign(g *cfg.ControlFlowGraph) *Analysis[L.Store[L.Sign]] {
	lat := L.NewStoreLattice[L.Sign](L.Signs(), Variables(g)...)
	return New[L.Store[L.Sign]]("sign", lat, g, Forward, signAnalysis{})
}
