package testutil

import (
	"fmt"
	"os"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	"github.com/cs-au-dk/monotone/lang/ast"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// LoadResult contains a program together with its control flow graphs.
type LoadResult struct {
	Name    string
	Program ast.Block
	// Atomic is the graph with at most one statement per block, used by the
	// dataflow analyses.
	Atomic *cfg.ControlFlowGraph
	// BasicBlocks is the graph where runs of statements share a block.
	BasicBlocks *cfg.ControlFlowGraph
}

// ProgramNames lists the corpus in sorted order.
func ProgramNames() []string {
	names := maps.Keys(Programs)
	slices.Sort(names)
	return names
}

func load(name string, prog ast.Block) (LoadResult, error) {
	res := LoadResult{
		Name:        name,
		Program:     prog,
		Atomic:      cfg.BuildAtomic(prog),
		BasicBlocks: cfg.BuildBasicBlocks(prog),
	}

	if err := res.Atomic.Validate(); err != nil {
		return res, err
	}
	if err := res.BasicBlocks.Validate(); err != nil {
		return res, err
	}
	return res, nil
}

// LoadProgram builds the graphs of a corpus program.
func LoadProgram(name string) (LoadResult, error) {
	prog, found := Programs[name]
	if !found {
		return LoadResult{}, fmt.Errorf("unknown program %q, expected one of %v", name, ProgramNames())
	}
	return load(name, prog)
}

// LoadFile decodes a YAML program and builds its graphs.
func LoadFile(path string) (LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LoadResult{}, err
	}

	prog, err := ast.Decode(data)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return load(path, prog)
}

// MustLoad is LoadProgram for tests, failing the test on error.
func MustLoad(t interface {
	Helper()
	Fatal(...any)
}, name string) LoadResult {
	t.Helper()
	res, err := LoadProgram(name)
	if err != nil {
		t.Fatal(err)
	}
	return res
}
