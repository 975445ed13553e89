package dataflow

import (
	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
)

// veryBusyExpressions computes the compound expressions that will definitely
// be evaluated before any of their operands are reassigned.
type veryBusyExpressions struct {
	lattice *L.ReversePowerset[ast.Expression]
}

func (t veryBusyExpressions) Initial() L.Set[ast.Expression] {
	return t.lattice.Empty()
}

func (veryBusyExpressions) Statement(_ int, stmt ast.AtomicStatement, in L.Set[ast.Expression]) L.Set[ast.Expression] {
	switch s := stmt.(type) {
	case ast.Assign:
		// The right-hand side is evaluated before the assignment takes effect.
		return addComplex(dropMentioning(in, s.Var), s.Rhs)
	case ast.Output:
		return addComplex(in, s.Expr)
	default:
		panic(errUnsupported(s))
	}
}

func (veryBusyExpressions) Guard(guard ast.Expression, in L.Set[ast.Expression]) L.Set[ast.Expression] {
	return addComplex(in, guard)
}

// VeryBusyExpressions is a backward must-analysis. The value of a block is
// the set of expressions very busy on entry to it.
func VeryBusyExpressions(g *cfg.ControlFlowGraph) *Analysis[L.Set[ast.Expression]] {
	lat := L.NewReversePowerset(ComplexExpressions(g))
	return New[L.Set[ast.Expression]]("very busy expressions", lat, g, Backward, veryBusyExpressions{lat})
}
