package main

import (
	"fmt"
	"log"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	tu "github.com/cs-au-dk/monotone/testutil"
)

// pipeline is a wrapper around a loaded program and its control flow graphs.
type pipeline struct {
	tu.LoadResult
}

// loadPipeline decodes the program given by -file, or picks -program from the
// built-in corpus, and builds its control flow graphs.
func loadPipeline() pipeline {
	var (
		res tu.LoadResult
		err error
	)

	if path := opts.File(); path != "" {
		log.Println("Loading program from", path)
		res, err = tu.LoadFile(path)
	} else {
		log.Println("Loading program", opts.Program())
		res, err = tu.LoadProgram(opts.Program())
	}
	if err != nil {
		log.Fatalln("Failed to load program:", err)
	}

	opts.OnVerbose(func() {
		fmt.Println(res.Program)
		fmt.Println()
	})

	return pipeline{res}
}

// graph returns the graph selected by -basic-blocks.
func (pl pipeline) graph() *cfg.ControlFlowGraph {
	if opts.BasicBlocks() {
		return pl.BasicBlocks
	}
	return pl.Atomic
}
