package flow_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

// engine binds a name to an entry point so suites can range over all three.
type engine struct {
	name string
	run  func(*network.Network, string, string, ...flow.Option) (*flow.Trace, error)
}

var engines = []engine{
	{"EdmondsKarp", flow.EdmondsKarp},
	{"Dinic", flow.Dinic},
	{"PushRelabel", flow.PushRelabel},
}

// edge is a compact declared-edge literal for tests.
type edge struct {
	from, to string
	cap      int64
}

// build declares edges in order and fails the test on any error.
func build(t testing.TB, edges ...edge) *network.Network {
	t.Helper()
	nw := network.New()
	for _, e := range edges {
		_, err := nw.AddEdge(e.from, e.to, e.cap)
		require.NoError(t, err)
	}

	return nw
}

// textbook is the eight-edge network with max flow 19.
func textbook(t testing.TB) *network.Network {
	return build(t,
		edge{"s", "a", 10}, edge{"s", "b", 10}, edge{"a", "c", 4}, edge{"a", "d", 8},
		edge{"b", "d", 9}, edge{"c", "t", 10}, edge{"d", "c", 6}, edge{"d", "t", 10},
	)
}

// chain builds s→n1→…→n{k}→t with unit capacities.
func chain(t testing.TB, k int) *network.Network {
	nw := network.New()
	prev := "s"
	for i := 1; i <= k; i++ {
		cur := fmt.Sprintf("n%d", i)
		_, err := nw.AddEdge(prev, cur, 1)
		require.NoError(t, err)
		prev = cur
	}
	_, err := nw.AddEdge(prev, "t", 1)
	require.NoError(t, err)

	return nw
}

// randomNetwork builds a directed network over V nodes "0".."V-1" where each
// ordered pair carries an edge with probability p and capacity in [1,maxCap].
func randomNetwork(t testing.TB, V int, p float64, maxCap int64, seed int64) *network.Network {
	r := rand.New(rand.NewSource(seed))
	nw := network.New()
	for i := 0; i < V; i++ {
		require.NoError(t, nw.AddNode(fmt.Sprint(i)))
	}
	for u := 0; u < V; u++ {
		for v := 0; v < V; v++ {
			if u == v || r.Float64() >= p {
				continue
			}
			_, err := nw.AddEdge(fmt.Sprint(u), fmt.Sprint(v), r.Int63n(maxCap)+1)
			require.NoError(t, err)
		}
	}

	return nw
}

// assertCapacityRespected checks 0 ≤ flow ≤ capacity on every declared edge
// at every record.
func assertCapacityRespected(t testing.TB, tr *flow.Trace) {
	t.Helper()
	for i, s := range tr.Steps {
		require.Len(t, s.EdgeFlows, len(tr.Edges), "record %d", i)
		for _, e := range tr.Edges {
			f, ok := s.EdgeFlows[e.ID]
			require.True(t, ok, "record %d misses %s", i, e.ID)
			require.GreaterOrEqual(t, f, int64(0), "record %d edge %s", i, e.ID)
			require.LessOrEqual(t, f, e.Capacity, "record %d edge %s", i, e.ID)
		}
	}
}

// imbalance returns inbound minus outbound declared flow per node at record i.
func imbalance(tr *flow.Trace, i int) map[string]int64 {
	out := make(map[string]int64, len(tr.Nodes))
	for _, e := range tr.Edges {
		f := tr.Steps[i].EdgeFlows[e.ID]
		out[e.Target] += f
		out[e.Source] -= f
	}

	return out
}

// assertConserved checks inbound == outbound at every non-terminal node for
// every record (Edmonds-Karp, Dinic) or, for Push-Relabel, that the imbalance
// equals the reported excess and vanishes at the final record.
func assertConserved(t testing.TB, tr *flow.Trace) {
	t.Helper()
	for i, s := range tr.Steps {
		bal := imbalance(tr, i)
		for _, id := range tr.Nodes {
			if id == tr.Source || id == tr.Sink {
				continue
			}
			if tr.Algorithm == flow.PushRelabelAlgorithm && s.Kind != flow.StepFinal {
				require.Equal(t, s.NodeData[id].Excess, bal[id], "record %d node %s", i, id)
				require.GreaterOrEqual(t, bal[id], int64(0), "record %d node %s", i, id)
				continue
			}
			require.Zero(t, bal[id], "record %d node %s", i, id)
		}
	}
	if tr.Algorithm == flow.PushRelabelAlgorithm {
		require.Equal(t, tr.MaxFlow(), tr.Final().NodeData[tr.Sink].Excess, "sink excess is the flow value")
	}
}

// assertMinCut checks max-flow = min-cut on the final record.
func assertMinCut(t testing.TB, tr *flow.Trace) {
	t.Helper()
	cut := tr.MinCut()
	require.Equal(t, tr.MaxFlow(), cut.Capacity)
	require.Contains(t, cut.SourceSide, tr.Source)
	require.Contains(t, cut.SinkSide, tr.Sink)
}

// assertWellFormed bundles the structural checks every trace must pass.
func assertWellFormed(t testing.TB, tr *flow.Trace) {
	t.Helper()
	require.NotEmpty(t, tr.Steps)
	require.Equal(t, flow.StepFinal, tr.Final().Kind)
	require.Equal(t, 1, tr.Count(flow.StepFinal))
	for i, s := range tr.Steps {
		require.NotEmpty(t, s.Description, "record %d", i)
	}
	assertCapacityRespected(t, tr)
	assertConserved(t, tr)
	assertMinCut(t, tr)
}
