package main

import (
	"fmt"
	"log"
	"time"

	"github.com/cs-au-dk/monotone/analysis/dataflow"
	"github.com/cs-au-dk/monotone/utils"
	"github.com/cs-au-dk/monotone/vistool"

	"github.com/fatih/color"
)

var (
	opts = utils.Opts()
	task = opts.Task()
)

// report runs an analysis and prints the value of every block.
func report[T any](a *dataflow.Analysis[T]) map[int]T {
	opts.OnVerbose(func() {
		a.Observe(func(block int, prev, next T) {
			fmt.Printf("%s: %v ⟶ %v\n", utils.BlockString(block), prev, next)
		})
	})

	start := time.Now()
	res := a.Analyze()
	utils.TimeTrack(start, a.Name)

	fmt.Printf("%s (%s, %d iterations):\n", color.New(color.Bold).Sprint(a.Name), a.Direction, a.Iterations)
	fmt.Print(dataflow.Format(a.CFG, res))
	return res
}

func main() {
	utils.ParseArgs()
	pl := loadPipeline()
	G := pl.graph()

	switch {
	case task.IsCfg():
		fmt.Print(G)
		if loops := G.Loops(); len(loops) > 0 {
			fmt.Println("Loops:", loops)
		}
	case task.IsCfgToDot():
		log.Println("Preparing to visualize CFG...")
		img, err := G.Render(pl.Name, opts.Out(), opts.OutputFormat())
		if err != nil {
			log.Fatalln("Failed to render CFG:", err)
		}
		log.Println("Rendered CFG to", img)
	case task.IsVistool():
		vistool.Start(opts.Addr(), pl.Name, G)
	case task.IsLiveness():
		report(dataflow.Liveness(G))
	case task.IsAvailableExpressions():
		report(dataflow.AvailableExpressions(G))
	case task.IsVeryBusyExpressions():
		report(dataflow.VeryBusyExpressions(G))
	case task.IsReachingDefinitions():
		report(dataflow.ReachingDefinitions(G))
	case task.IsSign():
		report(dataflow.Sign(G))
	case task.IsInformationFlow():
		report(dataflow.InformationFlow(G))

		safe, leaks := dataflow.CheckInformationFlow(G)
		if safe {
			fmt.Println(utils.CanColorize(color.New(color.FgGreen).SprintFunc())("No secret input reaches an output"))
			return
		}
		for _, leak := range leaks {
			fmt.Println(utils.CanColorize(color.New(color.FgRed).SprintFunc())(leak.String()))
		}
	}
}
