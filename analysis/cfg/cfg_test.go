package cfg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	"github.com/cs-au-dk/monotone/lang/ast"
	"github.com/cs-au-dk/monotone/testutil"

	"github.com/sebdah/goldie/v2"
)

func TestBlockCounts(t *testing.T) {
	prog := testutil.Programs["program1"]

	if n := cfg.BuildAtomic(prog).Size(); n != 6 {
		t.Errorf("atomic graph has %d blocks, expected 6", n)
	}
	if n := cfg.BuildBasicBlocks(prog).Size(); n != 4 {
		t.Errorf("basic block graph has %d blocks, expected 4", n)
	}
}

func TestGolden(t *testing.T) {
	g := goldie.New(t)

	for _, name := range []string{"program1", "program3", "program4"} {
		res := testutil.MustLoad(t, name)
		g.Assert(t, name+"-atomic", []byte(res.Atomic.String()))
		g.Assert(t, name+"-basic", []byte(res.BasicBlocks.String()))
	}

	res := testutil.MustLoad(t, "degenerate")
	g.Assert(t, "degenerate-atomic", []byte(res.Atomic.String()))
}

func TestSimplifyIdempotent(t *testing.T) {
	for _, name := range testutil.ProgramNames() {
		res := testutil.MustLoad(t, name)

		for _, G := range []*cfg.ControlFlowGraph{res.Atomic, res.BasicBlocks} {
			before := G.String()
			G.Simplify()
			if after := G.String(); before != after {
				t.Errorf("%s: simplification changed the graph from\n%s\nto\n%s", name, before, after)
			}
		}
	}
}

func TestAtomicForm(t *testing.T) {
	for _, name := range testutil.ProgramNames() {
		G := testutil.MustLoad(t, name).Atomic

		entry := G.Blocks[G.Entry]
		if len(entry.Statements) != 0 {
			t.Errorf("%s: entry block %d holds statements", name, G.Entry)
		}

		for _, id := range G.IDs() {
			b := G.Blocks[id]
			if len(b.Statements) > 1 {
				t.Errorf("%s: block %d holds %d statements", name, id, len(b.Statements))
			}
			if id != G.Entry && b.IsForwarding() {
				t.Errorf("%s: forwarding block %d survived simplification", name, id)
			}
		}

		if reached := G.Reachable(); len(reached) != G.Size() {
			t.Errorf("%s: only %v of %d blocks are reachable", name, reached, G.Size())
		}
	}
}

func TestLoopBackEdge(t *testing.T) {
	G := testutil.MustLoad(t, "program3").Atomic

	var head, tail int = -1, -1
	for _, id := range G.IDs() {
		b := G.Blocks[id]
		if _, ok := b.Jump.(cfg.ConditionalJump); ok {
			head = id
		}
		if len(b.Statements) == 1 && b.Statements[0].String() == "x := (a + b)" {
			tail = id
		}
	}

	if head == -1 || tail == -1 {
		t.Fatalf("could not find loop head and body tail in\n%s", G)
	}

	if succs := G.Successors(tail); len(succs) != 1 || succs[0] != head {
		t.Errorf("loop body tail %d jumps to %v, expected the loop head %d", tail, succs, head)
	}

	loops := G.Loops()
	if len(loops) != 1 || len(loops[0]) != 3 || loops[0][0] != head {
		t.Errorf("unexpected loops %v", loops)
	}

	var preds []int
	for _, id := range G.IDs() {
		for _, succ := range G.Successors(id) {
			if succ == head {
				preds = append(preds, id)
			}
		}
	}
	if len(preds) != 2 {
		t.Errorf("loop head should have two predecessors, got %v", preds)
	}
}

func TestBasicBlocksLoopHead(t *testing.T) {
	// Statements preceding a loop are not merged into its head.
	G := testutil.MustLoad(t, "program3").BasicBlocks

	for _, id := range G.IDs() {
		b := G.Blocks[id]
		if _, ok := b.Jump.(cfg.ConditionalJump); ok && len(b.Statements) > 0 {
			t.Errorf("loop head %d holds statements %v", id, b.Statements)
		}
	}
}

func TestDegenerate(t *testing.T) {
	G := testutil.MustLoad(t, "degenerate").Atomic

	if loops := G.Loops(); len(loops) != 1 || len(loops[0]) != 1 {
		t.Fatalf("expected a single self loop, got %v", loops)
	}

	self := G.Loops()[0][0]
	if succs := G.Successors(self); len(succs) != 2 || succs[1] != self {
		t.Errorf("empty loop should jump to itself, got %v", succs)
	}

	var merged bool
	for _, id := range G.IDs() {
		j, ok := G.Blocks[id].Jump.(cfg.ConditionalJump)
		if ok && j.TrueTarget == j.FalseTarget {
			merged = true
			if len(j.Targets()) != 1 {
				t.Errorf("duplicate targets in %v", j.Targets())
			}
		}
	}
	if !merged {
		t.Errorf("empty branches should join immediately in\n%s", G)
	}
}

func TestEmptyProgram(t *testing.T) {
	atomic := cfg.BuildAtomic(ast.Block{})
	if err := atomic.Validate(); err != nil {
		t.Fatal(err)
	}
	if atomic.Size() != 2 || atomic.Halt() == atomic.Entry {
		t.Errorf("expected an entry and a halt block, got\n%s", atomic)
	}

	basic := cfg.BuildBasicBlocks(ast.Block{})
	if basic.Size() != 1 || basic.Halt() != basic.Entry {
		t.Errorf("expected a single halt block, got\n%s", basic)
	}
}

func TestValidate(t *testing.T) {
	G := cfg.BuildAtomic(testutil.Programs["program1"])
	if err := G.Validate(); err != nil {
		t.Fatal(err)
	}

	G.Blocks[G.Entry].Jump = cfg.UnconditionalJump{Target: 42}
	if err := G.Validate(); !errors.Is(err, cfg.ErrInvalidGraph) {
		t.Errorf("expected an invalid graph error, got %v", err)
	}
}

func TestForwardingCycle(t *testing.T) {
	G := &cfg.ControlFlowGraph{
		Blocks: map[int]*cfg.BasicBlock{
			0: {ID: 0, Jump: cfg.Halt{}},
			1: {ID: 1, Jump: cfg.UnconditionalJump{Target: 2}},
			2: {ID: 2, Jump: cfg.UnconditionalJump{Target: 1}},
			3: {ID: 3, Jump: cfg.UnconditionalJump{Target: 1}},
		},
		Entry: 3,
	}

	defer func() {
		err, ok := recover().(error)
		if !ok || !errors.Is(err, cfg.ErrForwardingCycle) {
			t.Errorf("expected a forwarding cycle panic, got %v", err)
		}
	}()
	G.Simplify()
}

func TestToDot(t *testing.T) {
	G := testutil.MustLoad(t, "program1").Atomic

	dg := G.ToDot("program1")
	if dg.NodeCount() != G.Size() {
		t.Errorf("expected %d nodes, got %d", G.Size(), dg.NodeCount())
	}
	if len(dg.Clusters) != 0 {
		t.Errorf("expected no loop clusters, got %d", len(dg.Clusters))
	}

	var labels []string
	for _, e := range dg.Edges {
		if l := e.Attrs["label"]; l != "" {
			labels = append(labels, l)
		}
	}
	if len(labels) != 2 {
		t.Errorf("expected a true and a false edge, got %v", labels)
	}

	if _, err := dg.Bytes(); err != nil {
		t.Fatal(err)
	}
}

func TestToDotLoopCluster(t *testing.T) {
	G := testutil.MustLoad(t, "program3").Atomic

	loops := G.Loops()
	if len(loops) != 1 {
		t.Fatalf("expected a single loop, got %v", loops)
	}

	dg := G.ToDot("program3")
	if len(dg.Clusters) != 1 {
		t.Fatalf("expected a single cluster, got %d", len(dg.Clusters))
	}
	if n := len(dg.Clusters[0].Nodes); n != len(loops[0]) {
		t.Errorf("expected %d clustered blocks, got %d", len(loops[0]), n)
	}
	if dg.NodeCount() != len(G.Reachable()) {
		t.Errorf("expected %d nodes, got %d", len(G.Reachable()), dg.NodeCount())
	}

	src, err := dg.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), `subgraph "cluster_loop0"`) {
		t.Errorf("expected a loop subgraph in:\n%s", src)
	}
}
