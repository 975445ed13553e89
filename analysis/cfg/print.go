package cfg

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/monotone/lang/ast"
)

func (Halt) String() string {
	return "halt"
}

func (j UnconditionalJump) String() string {
	return fmt.Sprintf("goto %d", j.Target)
}

func (j ConditionalJump) String() string {
	return fmt.Sprintf("if (%s) then goto %d else goto %d", j.Guard, j.TrueTarget, j.FalseTarget)
}

// Statement-free blocks print as their jump.
func (b *BasicBlock) String() string {
	if len(b.Statements) == 0 {
		return b.Jump.String()
	}

	stmts := make([]ast.Statement, 0, len(b.Statements))
	for _, s := range b.Statements {
		stmts = append(stmts, s)
	}
	return ast.Seq(stmts...).String() + ";\n" + b.Jump.String()
}

// String lists the blocks by descending id, each preceded by its id.
func (g *ControlFlowGraph) String() string {
	var sb strings.Builder
	ids := g.IDs()
	for i := len(ids) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%d\n%s\n\n", ids[i], g.Blocks[ids[i]])
	}
	return sb.String()
}
