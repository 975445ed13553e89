package vistool

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	tu "github.com/cs-au-dk/monotone/testutil"
	"github.com/cs-au-dk/monotone/utils"

	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, program string) (*httptest.Server, tu.LoadResult) {
	t.Helper()
	utils.SetNoColorize(true)

	res := tu.MustLoad(t, program)
	srv := httptest.NewServer(Handler(res.Name, res.Atomic, Analyses(res.Atomic)))
	t.Cleanup(srv.Close)
	return srv, res
}

func get(t *testing.T, srv *httptest.Server, path string) (int, []byte) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGraphElements(t *testing.T) {
	srv, res := serve(t, "program1")
	G := res.Atomic

	status, body := get(t, srv, "/graph")
	require.Equal(t, http.StatusOK, status)

	var elements []struct {
		Group string         `json:"group"`
		Data  map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &elements))

	nodes, edges := 0, 0
	for _, el := range elements {
		switch el.Group {
		case "nodes":
			nodes++
			if el.Data["id"] == blockId(G.Entry) {
				require.Equal(t, true, el.Data["entry"])
			}
		case "edges":
			edges++
		}
	}

	expEdges := 0
	for _, id := range G.Reachable() {
		expEdges += len(G.Successors(id))
	}

	require.Equal(t, len(G.Reachable()), nodes)
	require.Equal(t, expEdges, edges)
}

func TestAnalysisNames(t *testing.T) {
	srv, _ := serve(t, "program2")

	status, body := get(t, srv, "/analyses")
	require.Equal(t, http.StatusOK, status)

	var names []string
	require.NoError(t, json.Unmarshal(body, &names))
	require.Equal(t, []string{
		"available-expressions",
		"information-flow",
		"liveness",
		"reaching-definitions",
		"sign",
		"very-busy-expressions",
	}, names)
}

func TestAnalysisResult(t *testing.T) {
	srv, res := serve(t, "program2")

	status, body := get(t, srv, "/analysis?name=liveness")
	require.Equal(t, http.StatusOK, status)

	var data map[string]string
	require.NoError(t, json.Unmarshal(body, &data))
	require.Len(t, data, len(res.Atomic.Blocks))

	// Nothing is live before the program starts.
	require.Equal(t, "∅", data[blockId(res.Atomic.Entry)])

	// Cached results are served on repeated requests.
	status, again := get(t, srv, "/analysis?name=liveness")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, string(body), string(again))
}

func TestAnalysisErrors(t *testing.T) {
	srv, _ := serve(t, "program1")

	status, _ := get(t, srv, "/analysis")
	require.Equal(t, http.StatusBadRequest, status)

	status, body := get(t, srv, "/analysis?name=interval")
	require.Equal(t, http.StatusNotFound, status)
	require.Contains(t, string(body), `"interval"`)
}

func TestDotSource(t *testing.T) {
	srv, _ := serve(t, "program3")

	status, body := get(t, srv, "/dot")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(body), "digraph ControlFlowGraph")
}
