// Package solver computes least fixpoints of monotone equation systems over
// dataflow variables.
package solver

import (
	"fmt"

	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/utils"
	"github.com/cs-au-dk/monotone/utils/worklist"

	"golang.org/x/tools/container/intsets"
)

var opts = utils.Opts()

// Variable is an opaque handle for an unknown of the equation system. It is
// only meaningful to the solver that created it.
type Variable struct {
	id    int
	owner *Solver
}

// Index is the position of v in the creation order of its solver.
func (v Variable) Index() int {
	return v.id
}

func (v Variable) String() string {
	return fmt.Sprintf("var(%d)", v.id)
}

// Solver holds the variables of an equation system and the dependencies
// between them.
type Solver struct {
	// parents[i] holds the variables that variable i is computed from.
	parents []*intsets.Sparse
	// children[i] holds the variables computed from variable i.
	children []*intsets.Sparse
}

func New() *Solver {
	return &Solver{}
}

func (s *Solver) FreshVariable() Variable {
	id := len(s.parents)
	s.parents = append(s.parents, &intsets.Sparse{})
	s.children = append(s.children, &intsets.Sparse{})
	return Variable{id, s}
}

func (s *Solver) check(v Variable) {
	if v.owner != s {
		panic(fmt.Errorf("%v does not belong to this solver", v))
	}
}

// AddDependency records that the value of to is derived from the value of from.
func (s *Solver) AddDependency(from, to Variable) {
	s.check(from)
	s.check(to)
	s.children[from.id].Insert(to.id)
	s.parents[to.id].Insert(from.id)
}

func (s *Solver) variables(ids *intsets.Sparse) []Variable {
	var buf []int
	buf = ids.AppendTo(buf)

	res := make([]Variable, len(buf))
	for i, id := range buf {
		res[i] = Variable{id, s}
	}
	return res
}

// Parents returns the variables v depends on, ordered by creation.
func (s *Solver) Parents(v Variable) []Variable {
	s.check(v)
	return s.variables(s.parents[v.id])
}

// Children returns the variables depending on v, ordered by creation.
func (s *Solver) Children(v Variable) []Variable {
	s.check(v)
	return s.variables(s.children[v.id])
}

// Transfer computes the value of a variable from the join of its parents.
type Transfer[T any] func(v Variable, input T) T

// Observer is notified of every change to the value of a variable.
type Observer[T any] func(v Variable, prev, next T)

// Solution maps every variable of a solver to its value at the fixpoint.
type Solution[T any] struct {
	values []T
	// Iterations counts the evaluations of the transfer function.
	Iterations int
}

func (s Solution[T]) Get(v Variable) T {
	return s.values[v.id]
}

// Solve computes the least solution of the equation system
//
//	v = transfer(v, ⊔{ u | u is a parent of v })
//
// with a FIFO worklist seeded with every variable in creation order.
// The transfer function must be monotone.
func Solve[T any](s *Solver, lat L.Lattice[T], transfer Transfer[T], observers ...Observer[T]) Solution[T] {
	bot := L.Bot(lat)
	sol := Solution[T]{values: make([]T, len(s.parents))}
	for i := range sol.values {
		sol.values[i] = bot
	}

	initial := make([]Variable, len(s.parents))
	for i := range initial {
		initial[i] = Variable{i, s}
	}

	worklist.StartV(initial, func(v Variable, add func(Variable)) {
		sol.Iterations++

		parents := s.Parents(v)
		inputs := make([]T, len(parents))
		for i, p := range parents {
			inputs[i] = sol.values[p.id]
		}

		prev := sol.values[v.id]
		next := transfer(v, lat.Join(inputs...))
		if lat.Eq(prev, next) {
			return
		}

		sol.values[v.id] = next
		for _, obs := range observers {
			obs(v, prev, next)
		}
		for _, child := range s.Children(v) {
			add(child)
		}
	})

	opts.OnVerbose(func() {
		fmt.Printf("Fixpoint reached for %d variables after %d iterations\n", len(sol.values), sol.Iterations)
	})
	return sol
}
