// Package dataflow binds control flow graphs, lattices and transfer functions
// to the fixpoint solver, and implements the classic intraprocedural analyses
// on top of it.
package dataflow

import (
	"errors"
	"fmt"
	"log"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	L "github.com/cs-au-dk/monotone/analysis/lattice"
	"github.com/cs-au-dk/monotone/analysis/solver"
	"github.com/cs-au-dk/monotone/lang/ast"
	"github.com/cs-au-dk/monotone/utils"
)

var opts = utils.Opts()

// ErrNonAtomicBlock is raised when an analysed block holds more than one
// statement. Analyses require graphs built by cfg.BuildAtomic.
var ErrNonAtomicBlock = errors.New("block is not atomic")

var errPatternMatch = func(v interface{}) error {
	return fmt.Errorf("invalid pattern match: %v %T", v, v)
}

func errUnsupported(s ast.Statement) error {
	return fmt.Errorf("%w: %v", ast.ErrUnsupportedStatement, errPatternMatch(s))
}

type Direction int

const (
	// Forward analyses propagate facts along the edges of the graph.
	Forward Direction = iota
	// Backward analyses propagate facts against the edges of the graph.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	panic(errPatternMatch(int(d)))
}

// Transfer is implemented by every concrete analysis.
type Transfer[T any] interface {
	// Statement computes the effect of the single statement of block.
	Statement(block int, stmt ast.AtomicStatement, in T) T
	// Guard computes the effect of evaluating a branch condition.
	Guard(guard ast.Expression, in T) T
}

// Initializer overrides the value at the boundary block, which is ⊥ otherwise.
type Initializer[T any] interface {
	Initial() T
}

// Analysis is a dataflow problem over a control flow graph. There is one
// solver variable per block; its value is the fact after the block for forward
// analyses and before the block for backward analyses.
type Analysis[T any] struct {
	Name      string
	Lattice   L.Lattice[T]
	CFG       *cfg.ControlFlowGraph
	Direction Direction

	transfer  Transfer[T]
	solver    *solver.Solver
	observers []solver.Observer[T]

	// blockToVar is indexed by block id, varToBlock by variable index.
	blockToVar []solver.Variable
	varToBlock []int

	// Iterations performed by the last call to Analyze.
	Iterations int
}

func New[T any](name string, lat L.Lattice[T], g *cfg.ControlFlowGraph, dir Direction, transfer Transfer[T]) *Analysis[T] {
	a := &Analysis[T]{
		Name:      name,
		Lattice:   lat,
		CFG:       g,
		Direction: dir,
		transfer:  transfer,
		solver:    solver.New(),
	}

	ids := g.IDs()
	a.blockToVar = make([]solver.Variable, g.IDBound())
	a.varToBlock = make([]int, 0, len(ids))
	for _, id := range ids {
		a.blockToVar[id] = a.solver.FreshVariable()
		a.varToBlock = append(a.varToBlock, id)
	}

	for _, id := range ids {
		for _, target := range g.Successors(id) {
			switch dir {
			case Forward:
				a.solver.AddDependency(a.blockToVar[id], a.blockToVar[target])
			case Backward:
				a.solver.AddDependency(a.blockToVar[target], a.blockToVar[id])
			default:
				panic(errPatternMatch(dir))
			}
		}
	}

	return a
}

// Observe registers a callback invoked whenever the value of a block changes
// during Analyze.
func (a *Analysis[T]) Observe(obs func(block int, prev, next T)) {
	a.observers = append(a.observers, func(v solver.Variable, prev, next T) {
		obs(a.varToBlock[v.Index()], prev, next)
	})
}

// Boundary is the block whose value is fixed: the entry block for forward
// analyses and the halt block for backward analyses.
func (a *Analysis[T]) Boundary() int {
	if a.Direction == Forward {
		return a.CFG.Entry
	}
	return a.CFG.Halt()
}

func (a *Analysis[T]) initial() T {
	if init, ok := a.transfer.(Initializer[T]); ok {
		return init.Initial()
	}
	return L.Bot(a.Lattice)
}

// Analyze solves the dataflow equations and maps every block id to its value.
func (a *Analysis[T]) Analyze() map[int]T {
	opts.OnVerbose(func() {
		log.Printf("Starting %s analysis (%s)...\n", a.Name, a.Direction)
	})

	boundary := a.Boundary()
	initial := a.initial()

	sol := solver.Solve[T](a.solver, a.Lattice, func(v solver.Variable, in T) T {
		id := a.varToBlock[v.Index()]
		b := a.CFG.Blocks[id]

		switch {
		case id == boundary:
			return initial
		case len(b.Statements) == 0:
			if j, ok := b.Jump.(cfg.ConditionalJump); ok {
				return a.transfer.Guard(j.Guard, in)
			}
			return in
		case len(b.Statements) == 1:
			return a.transfer.Statement(id, b.Statements[0], in)
		default:
			panic(fmt.Errorf("%w: block %d has %d statements", ErrNonAtomicBlock, id, len(b.Statements)))
		}
	}, a.observers...)

	a.Iterations = sol.Iterations

	res := make(map[int]T, len(a.varToBlock))
	for _, id := range a.varToBlock {
		res[id] = sol.Get(a.blockToVar[id])
	}
	return res
}
