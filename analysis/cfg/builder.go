package cfg

import (
	"fmt"

	"github.com/cs-au-dk/monotone/lang/ast"
)

// builder lowers a program into a graph. Statements are processed in reverse
// order so the successor of a statement always exists before the statement's
// own block is created.
type builder struct {
	cfg *ControlFlowGraph
	// atomic builders give every atomic statement a block of its own.
	atomic bool
	// Loop heads are the targets of back edges. Statements are never merged into
	// a loop head, since they would then be executed on every iteration.
	loopHeads map[int]bool
}

// BuildBasicBlocks constructs a graph where straight-line runs of atomic
// statements share a block.
func BuildBasicBlocks(prog ast.Block) *ControlFlowGraph {
	return build(prog, false)
}

// BuildAtomic constructs a graph where every block has at most one statement.
// The entry block never holds a statement. This is the form expected by
// dataflow analyses.
func BuildAtomic(prog ast.Block) *ControlFlowGraph {
	return build(prog, true)
}

func build(prog ast.Block, atomic bool) *ControlFlowGraph {
	b := &builder{
		cfg:       newControlFlowGraph(),
		atomic:    atomic,
		loopHeads: make(map[int]bool),
	}

	halt := b.cfg.createBlock(nil, Halt{})
	first := b.processBlock(prog, halt.ID)

	if atomic {
		first = b.cfg.createBlock(nil, UnconditionalJump{first}).ID
	}

	b.cfg.Entry = first
	b.cfg.Simplify()

	opts.OnVerbose(func() {
		fmt.Printf("Built control flow graph with %d blocks (atomic: %v)\n", b.cfg.Size(), atomic)
	})
	return b.cfg
}

// processBlock lowers a statement list whose successor is next, and returns
// the id of the block where the list starts.
func (b *builder) processBlock(block ast.Block, next int) int {
	for i := len(block.Statements) - 1; i >= 0; i-- {
		next = b.processStatement(block.Statements[i], next)
	}
	return next
}

func (b *builder) processStatement(s ast.Statement, next int) int {
	switch s := s.(type) {
	case ast.AtomicStatement:
		if !b.atomic && !b.loopHeads[next] {
			nb := b.cfg.Blocks[next]
			stmts := make([]ast.AtomicStatement, 0, len(nb.Statements)+1)
			nb.Statements = append(append(stmts, s), nb.Statements...)
			return next
		}

		return b.cfg.createBlock([]ast.AtomicStatement{s}, UnconditionalJump{next}).ID

	case ast.Conditional:
		thenJoin := b.cfg.createBlock(nil, UnconditionalJump{next})
		thenID := b.processBlock(s.Then, thenJoin.ID)
		elseJoin := b.cfg.createBlock(nil, UnconditionalJump{next})
		elseID := b.processBlock(s.Else, elseJoin.ID)

		return b.cfg.createBlock(nil, ConditionalJump{
			Guard:       s.Guard,
			TrueTarget:  thenID,
			FalseTarget: elseID,
		}).ID

	case ast.While:
		head := b.cfg.reserveID()
		b.loopHeads[head] = true

		backEdge := b.cfg.createBlock(nil, UnconditionalJump{head})
		bodyID := b.processBlock(s.Body, backEdge.ID)

		return b.cfg.createBlockWithID(head, nil, ConditionalJump{
			Guard:       s.Guard,
			TrueTarget:  bodyID,
			FalseTarget: next,
		}).ID

	case ast.Block:
		return b.processBlock(s, next)

	default:
		panic(fmt.Errorf("%w: %v", ast.ErrUnsupportedStatement, errPatternMatch(s)))
	}
}
