package dataflow

import (
	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
)

// liveness computes the variables that may be read before they are written.
type liveness struct{}

func (liveness) Statement(_ int, stmt ast.AtomicStatement, in L.Set[string]) L.Set[string] {
	switch s := stmt.(type) {
	case ast.Assign:
		return addVariables(in.Remove(s.Var), s.Rhs)
	case ast.Output:
		return addVariables(in, s.Expr)
	default:
		panic(errUnsupported(s))
	}
}

func (liveness) Guard(guard ast.Expression, in L.Set[string]) L.Set[string] {
	return addVariables(in, guard)
}

func addVariables(s L.Set[string], e ast.Expression) L.Set[string] {
	for _, x := range ast.Variables(e) {
		s = s.Add(x)
	}
	return s
}

// Liveness is a backward may-analysis. The value of a block is the set of
// variables live on entry to it.
func Liveness(g *cfg.ControlFlowGraph) *Analysis[L.Set[string]] {
	return New[L.Set[string]]("liveness", L.NewPowerset[string](nil), g, Backward, liveness{})
}
