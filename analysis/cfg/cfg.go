// Package cfg lowers structured programs into control flow graphs of basic
// blocks connected by jumps.
package cfg

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/monotone/lang/ast"
	"github.com/cs-au-dk/monotone/utils"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var opts = utils.Opts()

var (
	// ErrForwardingCycle is raised when simplification finds a cycle of
	// statement-free unconditional jumps.
	ErrForwardingCycle = errors.New("forwarding cycle")
	// ErrInvalidGraph is returned by Validate.
	ErrInvalidGraph = errors.New("invalid control flow graph")

	errPatternMatch = func(v interface{}) error {
		return fmt.Errorf("invalid pattern match: %v %T", v, v)
	}
)

type (
	// Jump is one of Halt, UnconditionalJump or ConditionalJump.
	Jump interface {
		fmt.Stringer
		// Targets returns the ids of the possible successor blocks in ascending
		// order, without duplicates.
		Targets() []int
		// Substitute replaces every target found in subst.
		Substitute(subst map[int]int) Jump
		isJump()
	}

	Halt struct{}

	UnconditionalJump struct {
		Target int
	}

	ConditionalJump struct {
		Guard       ast.Expression
		TrueTarget  int
		FalseTarget int
	}
)

func (Halt) isJump()              {}
func (UnconditionalJump) isJump() {}
func (ConditionalJump) isJump()   {}

func (Halt) Targets() []int {
	return nil
}

func (j UnconditionalJump) Targets() []int {
	return []int{j.Target}
}

func (j ConditionalJump) Targets() []int {
	switch {
	case j.TrueTarget == j.FalseTarget:
		return []int{j.TrueTarget}
	case j.TrueTarget < j.FalseTarget:
		return []int{j.TrueTarget, j.FalseTarget}
	default:
		return []int{j.FalseTarget, j.TrueTarget}
	}
}

func substitute(subst map[int]int, id int) int {
	if to, found := subst[id]; found {
		return to
	}
	return id
}

func (j Halt) Substitute(map[int]int) Jump {
	return j
}

func (j UnconditionalJump) Substitute(subst map[int]int) Jump {
	return UnconditionalJump{substitute(subst, j.Target)}
}

func (j ConditionalJump) Substitute(subst map[int]int) Jump {
	return ConditionalJump{
		Guard:       j.Guard,
		TrueTarget:  substitute(subst, j.TrueTarget),
		FalseTarget: substitute(subst, j.FalseTarget),
	}
}

// BasicBlock is a straight-line sequence of atomic statements followed by a
// single jump.
type BasicBlock struct {
	ID         int
	Statements []ast.AtomicStatement
	Jump       Jump
}

// IsForwarding holds for blocks that only pass control on to another block.
func (b *BasicBlock) IsForwarding() bool {
	_, ok := b.Jump.(UnconditionalJump)
	return ok && len(b.Statements) == 0
}

type ControlFlowGraph struct {
	Blocks map[int]*BasicBlock
	Entry  int
	nextID int
}

func newControlFlowGraph() *ControlFlowGraph {
	return &ControlFlowGraph{Blocks: make(map[int]*BasicBlock)}
}

// reserveID allocates a block id without creating the block.
func (g *ControlFlowGraph) reserveID() int {
	id := g.nextID
	g.nextID++
	return id
}

func (g *ControlFlowGraph) createBlockWithID(id int, stmts []ast.AtomicStatement, jump Jump) *BasicBlock {
	b := &BasicBlock{ID: id, Statements: stmts, Jump: jump}
	g.Blocks[id] = b
	return b
}

func (g *ControlFlowGraph) createBlock(stmts []ast.AtomicStatement, jump Jump) *BasicBlock {
	return g.createBlockWithID(g.reserveID(), stmts, jump)
}

// IDs returns the ids of all blocks in ascending order.
func (g *ControlFlowGraph) IDs() []int {
	ids := maps.Keys(g.Blocks)
	slices.Sort(ids)
	return ids
}

// IDBound is an upper bound on the ids of blocks in the graph. Ids are dense
// in [0, IDBound()) before simplification.
func (g *ControlFlowGraph) IDBound() int {
	return g.nextID
}

func (g *ControlFlowGraph) Size() int {
	return len(g.Blocks)
}

// Halt returns the id of the exit block, the unique block ending in Halt.
func (g *ControlFlowGraph) Halt() int {
	for _, id := range g.IDs() {
		if _, ok := g.Blocks[id].Jump.(Halt); ok {
			return id
		}
	}
	panic(fmt.Errorf("%w: no halt block", ErrInvalidGraph))
}

func (g *ControlFlowGraph) Successors(id int) []int {
	return g.Blocks[id].Jump.Targets()
}

// Validate checks the structural invariants of the graph: the entry block
// exists, every jump target exists and there is exactly one halt block.
func (g *ControlFlowGraph) Validate() error {
	if _, found := g.Blocks[g.Entry]; !found {
		return fmt.Errorf("%w: entry block %d does not exist", ErrInvalidGraph, g.Entry)
	}

	halts := 0
	for _, id := range g.IDs() {
		b := g.Blocks[id]
		if b.ID != id {
			return fmt.Errorf("%w: block %d is stored under id %d", ErrInvalidGraph, b.ID, id)
		}

		if _, ok := b.Jump.(Halt); ok {
			halts++
		}

		for _, target := range b.Jump.Targets() {
			if _, found := g.Blocks[target]; !found {
				return fmt.Errorf("%w: block %d jumps to missing block %d", ErrInvalidGraph, id, target)
			}
		}
	}

	if halts != 1 {
		return fmt.Errorf("%w: found %d halt blocks", ErrInvalidGraph, halts)
	}
	return nil
}
