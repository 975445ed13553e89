// Package dot models graphviz graphs of control flow graphs and renders them.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/goccy/go-graphviz"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DotToImage renders the given dot source into an image of the given format
// (svg, png, jpg). The image is written to outfname with the format as
// extension, or to the temporary directory when outfname is empty. The path of
// the produced image is returned.
func DotToImage(outfname string, format string, dot []byte) (img string, err error) {
	g := graphviz.New()
	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return "", fmt.Errorf("parsing dot source: %w", err)
	}
	defer func() {
		if cerr := graph.Close(); cerr != nil && err == nil {
			err = cerr
		}
		g.Close()
	}()

	img = outfname + "." + format
	if outfname == "" {
		img = filepath.Join(os.TempDir(), "monotone_export."+format)
	}
	if err := g.RenderFilename(graph, graphviz.Format(format), img); err != nil {
		return "", err
	}
	return img, nil
}

var tmpl = template.Must(template.New("dot").Option("missingkey=zero").Parse(`
{{- define "node" }}{{ printf "%q [ %s ]" .ID .Attrs }}{{ end -}}
{{- define "edge" }}{{ printf "%q -> %q [ %s ]" .From .To .Attrs }}{{ end -}}
digraph ControlFlowGraph {
	label={{ printf "%q" .Title }};
	labeljust="l";
	fontname="Arial";
	fontsize="14";
	rankdir="{{ or .Options.rankdir "TB" }}";
	pad="0.0";
	nodesep="{{ .Options.nodesep }}";

	node [shape="box" style="filled" fillcolor="honeydew" fontname="Courier" penwidth="1.0" margin="0.1,0.05"];
	edge [minlen="{{ .Options.minlen }}"];
{{ range .Clusters }}
	subgraph {{ printf "%q" . }} {
		{{ .Attrs.Lines }}
	{{- range .Nodes }}
		{{ template "node" . }}
	{{- end }}
	}
{{ end }}
{{- range .Nodes }}
	{{ template "node" . }}
{{- end }}
{{ range .Edges }}
	{{ template "edge" . }}
{{- end }}
}
`))

// DotCluster groups nodes that graphviz draws inside a common box, e.g. the
// blocks of a loop.
type DotCluster struct {
	ID    string
	Nodes []*DotNode
	Attrs DotAttrs
}

func NewDotCluster(id string) *DotCluster {
	return &DotCluster{ID: id, Attrs: DotAttrs{}}
}

// String is the cluster's subgraph name. Graphviz only draws subgraphs whose
// name starts with "cluster".
func (c *DotCluster) String() string {
	return "cluster_" + c.ID
}

type DotNode struct {
	ID    string
	Attrs DotAttrs
}

func (n *DotNode) String() string {
	return n.ID
}

type DotEdge struct {
	From  *DotNode
	To    *DotNode
	Attrs DotAttrs
}

type DotAttrs map[string]string

// List renders the attributes sorted by key, so output is stable.
func (p DotAttrs) List() []string {
	keys := maps.Keys(p)
	slices.Sort(keys)

	l := make([]string, 0, len(keys))
	for _, k := range keys {
		l = append(l, fmt.Sprintf("%s=%q;", k, p[k]))
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

func (p DotAttrs) Lines() string {
	return strings.Join(p.List(), "\n\t\t")
}

type DotGraph struct {
	Title string
	// Clusters hold nodes in addition to the top-level Nodes.
	Clusters []*DotCluster
	Nodes    []*DotNode
	Edges    []*DotEdge
	Options  map[string]string
}

// NodeCount is the number of nodes in the graph, including clustered ones.
func (g *DotGraph) NodeCount() int {
	n := len(g.Nodes)
	for _, c := range g.Clusters {
		n += len(c.Nodes)
	}
	return n
}

func (g *DotGraph) WriteDot(w io.Writer) error {
	return tmpl.Execute(w, g)
}

// Bytes renders the graph in dot syntax.
func (g *DotGraph) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.WriteDot(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
