package dataflow

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	"github.com/cs-au-dk/monotone/utils"
)

// Format renders the result of an analysis, one block per line in ascending id
// order, each with its statement or guard.
func Format[T any](g *cfg.ControlFlowGraph, res map[int]T) string {
	var sb strings.Builder
	for _, id := range g.IDs() {
		b := g.Blocks[id]

		var label string
		switch j := b.Jump.(type) {
		case cfg.ConditionalJump:
			label = "if (" + j.Guard.String() + ")"
		case cfg.Halt:
			label = "halt"
		}
		if len(b.Statements) > 0 {
			label = b.Statements[0].String()
		}
		if id == g.Entry {
			label = "entry"
		}

		fmt.Fprintf(&sb, "%s %s: %s\n", utils.BlockString(id), utils.StatementString(label), utils.ValueString(res[id]))
	}
	return sb.String()
}
