package dataflow

import (
	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
)

// availableExpressions computes the compound expressions that have definitely
// been evaluated, with no operand reassigned since.
type availableExpressions struct {
	lattice *L.ReversePowerset[ast.Expression]
}

func (t availableExpressions) Initial() L.Set[ast.Expression] {
	return t.lattice.Empty()
}

func (availableExpressions) Statement(_ int, stmt ast.AtomicStatement, in L.Set[ast.Expression]) L.Set[ast.Expression] {
	switch s := stmt.(type) {
	case ast.Assign:
		return dropMentioning(addComplex(in, s.Rhs), s.Var)
	case ast.Output:
		return addComplex(in, s.Expr)
	default:
		panic(errUnsupported(s))
	}
}

func (availableExpressions) Guard(guard ast.Expression, in L.Set[ast.Expression]) L.Set[ast.Expression] {
	return addComplex(in, guard)
}

// AvailableExpressions is a forward must-analysis. The value of a block is the
// set of expressions available on exit from it.
func AvailableExpressions(g *cfg.ControlFlowGraph) *Analysis[L.Set[ast.Expression]] {
	lat := L.NewReversePowerset(ComplexExpressions(g))
	return New[L.Set[ast.Expression]]("available expressions", lat, g, Forward, availableExpressions{lat})
}
