package cfg

import (
	"fmt"
	"log"
	"strings"

	"github.com/cs-au-dk/monotone/utils/dot"
	"github.com/cs-au-dk/monotone/utils/graph"

	"golang.org/x/exp/slices"
)

// Graph views the control flow graph as a graph over block ids.
func (g *ControlFlowGraph) Graph() graph.Graph[int] {
	return graph.OfHashable(g.Successors)
}

// Reachable returns the ids of the blocks reachable from the entry block.
func (g *ControlFlowGraph) Reachable() []int {
	ids := g.Graph().Reachable(g.Entry)
	slices.Sort(ids)
	return ids
}

// Loops returns the blocks of every cycle reachable from the entry, grouped by
// strongly connected component. Each group is sorted, and groups are ordered
// by their smallest id.
func (g *ControlFlowGraph) Loops() (loops [][]int) {
	scc := g.Graph().SCC([]int{g.Entry})
	for i, comp := range scc.Components {
		if scc.IsCyclic(i) {
			ids := append([]int(nil), comp...)
			slices.Sort(ids)
			loops = append(loops, ids)
		}
	}

	slices.SortFunc(loops, func(a, b []int) bool { return a[0] < b[0] })
	return
}

// ToDot produces a dot graph of the blocks reachable from the entry. The
// blocks of every loop are drawn in a common cluster.
func (g *ControlFlowGraph) ToDot(title string) *dot.DotGraph {
	G := g.Graph()

	loopOf := map[int]int{}
	for i, loop := range g.Loops() {
		for _, id := range loop {
			loopOf[id] = i
		}
	}

	dg := G.ToDotGraph(g.Reachable(), &graph.VisualizationConfig[int]{
		ClusterKey: func(id int) (any, bool) {
			i, ok := loopOf[id]
			return i, ok
		},
		ClusterAttrs: func(key any) (string, dot.DotAttrs) {
			return fmt.Sprintf("loop%d", key), dot.DotAttrs{
				"label": fmt.Sprintf("loop %d", key),
				"style": "dashed",
			}
		},
		NodeAttrs: func(id int) (string, dot.DotAttrs) {
			b := g.Blocks[id]
			// Left-justified lines
			label := fmt.Sprintf("%d\n%s", id, b)
			label = strings.ReplaceAll(label, "\n", "\\l") + "\\l"

			attrs := dot.DotAttrs{"label": label}
			if _, isHalt := b.Jump.(Halt); isHalt {
				attrs["fillcolor"] = "lightgray"
			}
			if id == g.Entry {
				attrs["fillcolor"] = "lightblue"
				attrs["penwidth"] = "2.0"
			}
			return fmt.Sprint(id), attrs
		},
		EdgeAttrs: func(from, to int) dot.DotAttrs {
			j, ok := g.Blocks[from].Jump.(ConditionalJump)
			if !ok {
				return dot.DotAttrs{}
			}

			var labels []string
			if j.TrueTarget == to {
				labels = append(labels, "true")
			}
			if j.FalseTarget == to {
				labels = append(labels, "false")
			}
			return dot.DotAttrs{"label": strings.Join(labels, ", ")}
		},
	})
	dg.Title = title
	return dg
}

// Render writes an image of the graph in the given format (svg, png, ...) to
// out, with the format as extension, and returns the path of the image.
func (g *ControlFlowGraph) Render(title, out, format string) (string, error) {
	dg := g.ToDot(title)
	opts.OnVerbose(func() {
		log.Printf("Rendering %d of %d blocks of %s\n", dg.NodeCount(), g.Size(), title)
	})

	src, err := dg.Bytes()
	if err != nil {
		return "", fmt.Errorf("rendering dot source: %w", err)
	}

	img, err := dot.DotToImage(out, format, src)
	if err != nil {
		return "", fmt.Errorf("rendering %s image: %w", format, err)
	}
	return img, nil
}
