package utils

import (
	"flag"
	"log"
)

type options struct {
	minlen       uint
	nodesep      float64
	program      string
	file         string
	outputFormat string
	out          string
	addr         string
	task         string
	noColorize   bool
	verbose      bool
	basicBlocks  bool
}

const (
	_CFG = iota
	_CFG_TO_DOT
	_LIVENESS
	_AVAILABLE_EXPRESSIONS
	_VERY_BUSY_EXPRESSIONS
	_REACHING_DEFINITIONS
	_SIGN
	_INFORMATION_FLOW
	_VISTOOL
)

var task = []struct{ flag, explanation string }{{
	"cfg",
	"Print the control flow graph of the program",
}, {
	"cfg-to-dot",
	"Render the control flow graph of the program with graphviz",
}, {
	"liveness",
	"Backward may-analysis computing the live variables at every block",
}, {
	"available-expressions",
	"Forward must-analysis computing the expressions that are definitely available",
}, {
	"very-busy-expressions",
	"Backward must-analysis computing the expressions that will definitely be evaluated",
}, {
	"reaching-definitions",
	"Forward may-analysis computing the assignments that may reach every block",
}, {
	"sign",
	"Forward analysis computing the sign of every variable",
}, {
	"information-flow",
	"Check whether secret input may reach a public output",
}, {
	"vistool",
	"Serve the control flow graph and analysis results over HTTP",
}}

var opts = &options{}

type optInterface struct{}

type taskInterface struct{}

func Opts() optInterface {
	return optInterface{}
}

func (optInterface) NoColorize() bool {
	return opts.noColorize
}

func (optInterface) Minlen() uint {
	return opts.minlen
}

func (optInterface) Nodesep() float64 {
	return opts.nodesep
}

func (optInterface) Program() string {
	return opts.program
}

// File is the path of a YAML encoded program. It takes precedence over Program.
func (optInterface) File() string {
	return opts.file
}

func (optInterface) OutputFormat() string {
	return opts.outputFormat
}

func (optInterface) Out() string {
	return opts.out
}

func (optInterface) Addr() string {
	return opts.addr
}

func (optInterface) Verbose() bool {
	return opts.verbose
}

func (optInterface) BasicBlocks() bool {
	return opts.basicBlocks
}

func (optInterface) Task() taskInterface {
	return taskInterface{}
}

func (taskInterface) Name() string {
	return opts.task
}

func (taskInterface) IsCfg() bool {
	return opts.task == task[_CFG].flag
}

func (taskInterface) IsCfgToDot() bool {
	return opts.task == task[_CFG_TO_DOT].flag
}

func (taskInterface) IsLiveness() bool {
	return opts.task == task[_LIVENESS].flag
}

func (taskInterface) IsAvailableExpressions() bool {
	return opts.task == task[_AVAILABLE_EXPRESSIONS].flag
}

func (taskInterface) IsVeryBusyExpressions() bool {
	return opts.task == task[_VERY_BUSY_EXPRESSIONS].flag
}

func (taskInterface) IsReachingDefinitions() bool {
	return opts.task == task[_REACHING_DEFINITIONS].flag
}

func (taskInterface) IsSign() bool {
	return opts.task == task[_SIGN].flag
}

func (taskInterface) IsInformationFlow() bool {
	return opts.task == task[_INFORMATION_FLOW].flag
}

func (taskInterface) IsVistool() bool {
	return opts.task == task[_VISTOOL].flag
}

func (optInterface) OnVerbose(do func()) {
	if opts.verbose {
		do()
	}
}

func init() {
	taskFlag := "\n"
	for _, task := range task {
		taskFlag += task.flag + " -- " + task.explanation + "\n"
	}
	taskFlag += "\n"

	flag.UintVar(&(opts.minlen), "minlen", 2, "Minimum edge length (for wider output).")
	flag.Float64Var(&(opts.nodesep), "nodesep", 0.35, "Minimum space between two adjacent nodes in the same rank (for taller output).")
	flag.StringVar(&(opts.program), "program", "program1", "name of a program from the built-in corpus")
	flag.StringVar(&(opts.file), "file", "", "path to a YAML encoded program; overrides -program")
	flag.StringVar(&(opts.outputFormat), "format", "svg", "output file format [svg | png | jpg | ...]")
	flag.StringVar(&(opts.out), "out", "", "output file name (without extension) for cfg-to-dot")
	flag.StringVar(&(opts.addr), "addr", ":8080", "listen address of the vistool server")
	flag.StringVar(&(opts.task), "task", task[_CFG].flag, "Set the task to do during execution. Options:"+taskFlag)
	flag.BoolVar(&(opts.noColorize), "no-colorize", false, "Disable pretty printer colorization")
	flag.BoolVar(&(opts.verbose), "verbose", false, "enable verbose output")
	flag.BoolVar(&(opts.basicBlocks), "basic-blocks", false, "build a basic block CFG instead of an atomic one (cfg tasks only)")

	// Set up logging
	log.SetFlags(log.Ltime | log.Lshortfile)
}

func ParseArgs() {
	// Calling flag.Parse in init messes up unit tests.
	flag.Parse()

	validTask := false
	for _, task := range task {
		if task.flag == opts.task {
			validTask = true
			break
		}
	}

	if !validTask {
		log.Fatalf("Value \"%s\" is not valid for -task", opts.task)
	}

	if Opts().Task().IsCfgToDot() || Opts().Task().IsVistool() {
		opts.noColorize = true
	}

	// Dataflow analyses require blocks holding at most one statement.
	if !Opts().Task().IsCfg() && !Opts().Task().IsCfgToDot() {
		opts.basicBlocks = false
	}
}
