package dataflow

import (
	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/lang/ast"
	"github.com/cs-au-dk/monotone/utils"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var exprHasher = utils.HashableHasher[ast.Expression]()

// expressions returns every expression evaluated in g: statement operands and
// branch guards.
func expressions(g *cfg.ControlFlowGraph) (res []ast.Expression) {
	for _, id := range g.IDs() {
		b := g.Blocks[id]
		for _, s := range b.Statements {
			res = append(res, ast.StatementExpressions(s)...)
		}
		if j, ok := b.Jump.(cfg.ConditionalJump); ok {
			res = append(res, j.Guard)
		}
	}
	return
}

// Variables returns the sorted names of the variables assigned or read in g.
func Variables(g *cfg.ControlFlowGraph) []string {
	names := make(map[string]bool)
	for _, e := range expressions(g) {
		for _, x := range ast.Variables(e) {
			names[x] = true
		}
	}
	for _, b := range g.Blocks {
		for _, s := range b.Statements {
			if a, ok := s.(ast.Assign); ok {
				names[a.Var] = true
			}
		}
	}

	res := maps.Keys(names)
	slices.Sort(res)
	return res
}

// ComplexExpressions returns the set of compound subexpressions of g.
func ComplexExpressions(g *cfg.ControlFlowGraph) L.Set[ast.Expression] {
	res := L.EmptySet(exprHasher)
	for _, e := range expressions(g) {
		for _, sub := range ast.ComplexExpressions(e) {
			res = res.Add(sub)
		}
	}
	return res
}

// addComplex adds the compound subexpressions of e to s.
func addComplex(s L.Set[ast.Expression], e ast.Expression) L.Set[ast.Expression] {
	for _, sub := range ast.ComplexExpressions(e) {
		s = s.Add(sub)
	}
	return s
}

// dropMentioning removes expressions reading x from s.
func dropMentioning(s L.Set[ast.Expression], x string) L.Set[ast.Expression] {
	return s.Filter(func(e ast.Expression) bool {
		return !ast.Mentions(e, x)
	})
}
