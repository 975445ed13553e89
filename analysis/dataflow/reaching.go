package dataflow

import (
	"fmt"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
	"github.com/cs-au-dk/monotone/utils"
)

// Definition identifies an assignment site.
type Definition struct {
	Block int
	Var   string
	Rhs   ast.Expression
}

func (d Definition) Hash() uint32 {
	return utils.HashCombine(uint32(d.Block), utils.HashString(d.Var), d.Rhs.Hash())
}

func (d Definition) Equal(o Definition) bool {
	return d.Block == o.Block && d.Var == o.Var && d.Rhs.Equal(o.Rhs)
}

func (d Definition) String() string {
	return fmt.Sprintf("(%d, %s, %s)", d.Block, d.Var, d.Rhs)
}

var definitionHasher = utils.HashableHasher[Definition]()

// reachingDefinitions computes the assignments whose value may still be held
// by their variable.
type reachingDefinitions struct{}

func (reachingDefinitions) Statement(block int, stmt ast.AtomicStatement, in L.Set[Definition]) L.Set[Definition] {
	switch s := stmt.(type) {
	case ast.Assign:
		return in.Filter(func(d Definition) bool {
			return d.Var != s.Var
		}).Add(Definition{block, s.Var, s.Rhs})
	case ast.Output:
		return in
	default:
		panic(errUnsupported(s))
	}
}

func (reachingDefinitions) Guard(_ ast.Expression, in L.Set[Definition]) L.Set[Definition] {
	return in
}

// ReachingDefinitions is a forward may-analysis. The value of a block is the
// set of definitions reaching its exit.
func ReachingDefinitions(g *cfg.ControlFlowGraph) *Analysis[L.Set[Definition]] {
	return New[L.Set[Definition]]("reaching definitions", L.NewPowerset(definitionHasher), g, Forward, reachingDefinitions{})
}
