package graph

import (
	"fmt"

	"github.com/cs-au-dk/monotone/utils"
	"github.com/cs-au-dk/monotone/utils/dot"
)

var opts = utils.Opts()

type VisualizationConfig[T any] struct {
	// Provides the ID and attributes for dot nodes.
	// If not provided, the ID is the stringified node.
	NodeAttrs func(node T) (string, dot.DotAttrs)
	// Provides the attributes of the edge between from and to.
	EdgeAttrs func(from, to T) dot.DotAttrs
	// Places the node in the cluster with the returned key, or at the top
	// level when ok is false. Keys must be comparable.
	ClusterKey func(node T) (key any, ok bool)
	// Provides the ID and attributes for dot clusters.
	ClusterAttrs func(key any) (string, dot.DotAttrs)
}

func (cfg *VisualizationConfig[T]) node(node T) *dot.DotNode {
	if cfg.NodeAttrs == nil {
		return &dot.DotNode{ID: fmt.Sprint(node)}
	}
	id, attrs := cfg.NodeAttrs(node)
	return &dot.DotNode{ID: id, Attrs: attrs}
}

// ToDotGraph converts the subgraph induced by nodes. Edges leaving the given
// nodes are omitted.
func (G Graph[T]) ToDotGraph(nodes []T, cfg *VisualizationConfig[T]) *dot.DotGraph {
	if cfg == nil {
		cfg = &VisualizationConfig[T]{}
	}

	dg := &dot.DotGraph{
		Options: map[string]string{
			"minlen":  fmt.Sprint(opts.Minlen()),
			"nodesep": fmt.Sprint(opts.Nodesep()),
			"rankdir": "TB",
		},
	}

	clusters := map[any]*dot.DotCluster{}
	place := func(dNode *dot.DotNode, key any) {
		cluster, found := clusters[key]
		if !found {
			id, attrs := fmt.Sprint(key), dot.DotAttrs{}
			if cfg.ClusterAttrs != nil {
				id, attrs = cfg.ClusterAttrs(key)
			}
			cluster = dot.NewDotCluster(id)
			for k, v := range attrs {
				cluster.Attrs[k] = v
			}
			clusters[key] = cluster
			dg.Clusters = append(dg.Clusters, cluster)
		}
		cluster.Nodes = append(cluster.Nodes, dNode)
	}

	dNodes := G.mapFactory()
	for _, node := range nodes {
		dNode := cfg.node(node)
		dNodes.Set(node, dNode)

		if cfg.ClusterKey != nil {
			if key, ok := cfg.ClusterKey(node); ok {
				place(dNode, key)
				continue
			}
		}
		dg.Nodes = append(dg.Nodes, dNode)
	}

	for _, from := range nodes {
		a, _ := dNodes.Get(from)
		for _, to := range G.Edges(from) {
			b, found := dNodes.Get(to)
			if !found {
				continue
			}

			var attrs dot.DotAttrs
			if cfg.EdgeAttrs != nil {
				attrs = cfg.EdgeAttrs(from, to)
			}
			dg.Edges = append(dg.Edges, &dot.DotEdge{
				From:  a.(*dot.DotNode),
				To:    b.(*dot.DotNode),
				Attrs: attrs,
			})
		}
	}

	return dg
}
