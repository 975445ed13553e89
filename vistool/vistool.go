package vistool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/cs-au-dk/monotone/analysis/cfg"
	"github.com/cs-au-dk/monotone/analysis/dataflow"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Annotator computes the rendered value of every block of a graph.
type Annotator func() map[int]string

// Annotate adapts a dataflow analysis to an Annotator. The analysis is only
// run when the annotations are first requested.
func Annotate[T any](a *dataflow.Analysis[T]) Annotator {
	return func() map[int]string {
		res := a.Analyze()
		out := make(map[int]string, len(res))
		for id, v := range res {
			out[id] = fmt.Sprint(v)
		}
		return out
	}
}

// Analyses returns annotators for every analysis of the framework.
func Analyses(g *cfg.ControlFlowGraph) map[string]Annotator {
	return map[string]Annotator{
		"liveness":              Annotate(dataflow.Liveness(g)),
		"available-expressions": Annotate(dataflow.AvailableExpressions(g)),
		"very-busy-expressions": Annotate(dataflow.VeryBusyExpressions(g)),
		"reaching-definitions":  Annotate(dataflow.ReachingDefinitions(g)),
		"sign":                  Annotate(dataflow.Sign(g)),
		"information-flow":      Annotate(dataflow.InformationFlow(g)),
	}
}

func blockId(id int) string {
	return fmt.Sprintf("block-%d", id)
}

func writeError(w http.ResponseWriter, status int, msg any) {
	w.WriteHeader(status)
	io.WriteString(w, fmt.Sprint(msg))
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println(err)
	}
}

// Handler serves the graph, its dot source and the results of the given
// analyses. Analysis results are cached after the first request.
func Handler(title string, g *cfg.ControlFlowGraph, analyses map[string]Annotator) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/graph", func(w http.ResponseWriter, _ *http.Request) {
		data := []any{}

		for _, id := range g.Reachable() {
			b := g.Blocks[id]
			_, isHalt := b.Jump.(cfg.Halt)
			data = append(data, map[string]any{
				"group": "nodes",
				"data": map[string]any{
					"id":    blockId(id),
					"str":   b.String(),
					"entry": id == g.Entry,
					"halt":  isHalt,
				},
			})
		}

		addEdge := func(from, to int, label any) {
			data = append(data, map[string]any{
				"group": "edges",
				"data": map[string]any{
					"id":     fmt.Sprintf("%s-%s", blockId(from), blockId(to)),
					"source": blockId(from),
					"target": blockId(to),
					"str":    label,
				},
			})
		}

		for _, id := range g.Reachable() {
			switch j := g.Blocks[id].Jump.(type) {
			case cfg.UnconditionalJump:
				addEdge(id, j.Target, nil)
			case cfg.ConditionalJump:
				if j.TrueTarget == j.FalseTarget {
					addEdge(id, j.TrueTarget, "true, false")
					continue
				}
				addEdge(id, j.TrueTarget, "true")
				addEdge(id, j.FalseTarget, "false")
			}
		}

		writeJSON(w, data)
	})

	mux.HandleFunc("/dot", func(w http.ResponseWriter, _ *http.Request) {
		src, err := g.ToDot(title).Bytes()
		if err != nil {
			log.Println(err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write(src)
	})

	mux.HandleFunc("/analyses", func(w http.ResponseWriter, _ *http.Request) {
		names := maps.Keys(analyses)
		slices.Sort(names)
		writeJSON(w, names)
	})

	var analysisLock sync.Mutex
	analysisCache := map[string]map[int]string{}
	mux.HandleFunc("/analysis", func(w http.ResponseWriter, req *http.Request) {
		if !analysisLock.TryLock() {
			writeError(w, http.StatusForbidden, "Server is currently busy")
			return
		}
		defer analysisLock.Unlock()

		if err := req.ParseForm(); err != nil {
			log.Println(err)
			writeError(w, http.StatusBadRequest, err)
			return
		}

		name := req.FormValue("name")
		if name == "" {
			writeError(w, http.StatusBadRequest, "Missing analysis name")
			return
		}

		annotate, ok := analyses[name]
		if !ok {
			writeError(w, http.StatusNotFound, "Unknown analysis "+strconv.Quote(name))
			return
		}

		res, found := analysisCache[name]
		if !found {
			log.Println("Running", name)
			res = annotate()
			analysisCache[name] = res
		}

		data := map[string]string{}
		for id, v := range res {
			data[blockId(id)] = v
		}
		writeJSON(w, data)
	})

	return mux
}

// Start serves the graph on addr until a request to /shutdown is received.
func Start(addr, title string, g *cfg.ControlFlowGraph) {
	mux := Handler(title, g, Analyses(g))

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	mux.HandleFunc("/shutdown", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
		go func() {
			if err := server.Shutdown(context.Background()); err != nil {
				log.Fatal(err)
			}
		}()
	})

	log.Printf("Listening on http://localhost%s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
