package dataflow

import (
	"fmt"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
)

// EvalSecurity computes the security level of e in store. Input is secret and
// literals are public. Every variable read by e must be bound in store.
func EvalSecurity(store L.Store[L.SecurityLevel], e ast.Expression) L.SecurityLevel {
	switch e := e.(type) {
	case ast.Input:
		return L.Secret
	case ast.Literal:
		return L.Public
	case ast.Var:
		return store.MustGet(e.Name)
	case ast.Add:
		return L.Security().Join(EvalSecurity(store, e.Lhs), EvalSecurity(store, e.Rhs))
	case ast.Multiply:
		return L.Security().Join(EvalSecurity(store, e.Lhs), EvalSecurity(store, e.Rhs))
	default:
		panic(errPatternMatch(e))
	}
}

// informationFlow tracks direct flows only. Implicit flows through branch
// conditions are not considered.
type informationFlow struct{}

func (informationFlow) Statement(_ int, stmt ast.AtomicStatement, in L.Store[L.SecurityLevel]) L.Store[L.SecurityLevel] {
	switch s := stmt.(type) {
	case ast.Assign:
		return in.Update(s.Var, EvalSecurity(in, s.Rhs))
	case ast.Output:
		return in
	default:
		panic(errUnsupported(s))
	}
}

func (informationFlow) Guard(_ ast.Expression, in L.Store[L.SecurityLevel]) L.Store[L.SecurityLevel] {
	return in
}

// InformationFlow is a forward analysis computing the security level of every
// variable on exit from each block.
func InformationFlow(g *cfg.ControlFlowGraph) *Analysis[L.Store[L.SecurityLevel]] {
	lat := L.NewStoreLattice[L.SecurityLevel](L.Security(), Variables(g)...)
	return New[L.Store[L.SecurityLevel]]("information flow", lat, g, Forward, informationFlow{})
}

// Leak is an output of a secret value.
type Leak struct {
	Block  int
	Output ast.Output
}

func (l Leak) String() string {
	return fmt.Sprintf("block %d: %s leaks secret input", l.Block, l.Output)
}

// CheckInformationFlow reports whether no secret value reaches an output, and
// lists the offending outputs in block order otherwise.
func CheckInformationFlow(g *cfg.ControlFlowGraph) (safe bool, leaks []Leak) {
	res := InformationFlow(g).Analyze()

	for _, id := range g.IDs() {
		b := g.Blocks[id]
		if len(b.Statements) != 1 {
			continue
		}

		out, ok := b.Statements[0].(ast.Output)
		// Output does not change the store, so the value after the block is
		// also the store the output is evaluated in.
		if ok && EvalSecurity(res[id], out.Expr) == L.Secret {
			leaks = append(leaks, Leak{id, out})
		}
	}

	return len(leaks) == 0, leaks
}
