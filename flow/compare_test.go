package flow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]flow.Algorithm{
		"edmonds-karp":   flow.EdmondsKarpAlgorithm,
		"EK":             flow.EdmondsKarpAlgorithm,
		"ford-fulkerson": flow.EdmondsKarpAlgorithm,
		" dinic ":        flow.DinicAlgorithm,
		"Push-Relabel":   flow.PushRelabelAlgorithm,
		"pr":             flow.PushRelabelAlgorithm,
	}
	for in, want := range cases {
		got, err := flow.ParseAlgorithm(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := flow.ParseAlgorithm("simplex")
	require.ErrorIs(t, err, flow.ErrUnknownAlgorithm)
}

func TestRunUnknown(t *testing.T) {
	_, err := flow.Run("simplex", textbook(t), "s", "t")
	require.ErrorIs(t, err, flow.ErrUnknownAlgorithm)
}

func TestComparePresets(t *testing.T) {
	want := map[string]int64{
		"default":       23,
		"ff-worst-case": 2000000,
		"dense-graph":   30,
		"long-chain":    10,
		"textbook":      19,
	}
	for _, name := range network.PresetNames() {
		t.Run(name, func(t *testing.T) {
			doc, err := network.Preset(name)
			require.NoError(t, err)
			nw, err := doc.Build()
			require.NoError(t, err)

			c, err := flow.Compare(nw, doc.Source, doc.Sink)
			require.NoError(t, err)
			require.True(t, c.Agree())
			require.Len(t, c.Summaries, 3)
			for _, s := range c.Summaries {
				require.Equal(t, want[name], s.MaxFlow, "%s on %s", s.Algorithm, name)
				require.Equal(t, c.Trace(s.Algorithm).Len()-1, s.Operations)
			}
			for _, tr := range c.Traces {
				assertWellFormed(t, tr)
			}
		})
	}
}

func TestCompareSummaries(t *testing.T) {
	c, err := flow.Compare(textbook(t), "s", "t")
	require.NoError(t, err)

	require.Equal(t, flow.GraphProperties{Nodes: 6, Edges: 8, Density: 8.0 / 30.0}, c.Graph)
	require.Equal(t, flow.EdmondsKarpAlgorithm, c.Summaries[0].Algorithm)
	require.Equal(t, 4, c.Summaries[0].Operations)
	require.Equal(t, 2, c.Summaries[1].Phases)
	require.Positive(t, c.Summaries[2].Pushes)
	require.Equal(t, c.Trace(flow.PushRelabelAlgorithm).Count(flow.StepRelabel), c.Summaries[2].Relabels)
	require.Nil(t, c.Trace("simplex"))

	unit, err := flow.Compare(chain(t, 3), "s", "t")
	require.NoError(t, err)
	require.True(t, unit.Graph.UnitCapacity)
}

func TestCompareError(t *testing.T) {
	_, err := flow.Compare(textbook(t), "s", "missing")
	require.ErrorIs(t, err, flow.ErrSinkNotFound)

	_, err = flow.Compare(textbook(t), "s", "t", flow.WithMaxSteps(1))
	require.ErrorIs(t, err, flow.ErrStepBudgetExceeded)
}

// TestCompareElapsed bounds every run's wall clock by the whole comparison.
func TestCompareElapsed(t *testing.T) {
	nw := randomNetwork(t, 40, 0.2, 20, 11)
	start := time.Now()
	c, err := flow.Compare(nw, "0", "39")
	total := time.Since(start)
	require.NoError(t, err)

	for _, s := range c.Summaries {
		require.Positive(t, s.Elapsed, s.Algorithm)
		require.LessOrEqual(t, s.Elapsed, total, s.Algorithm)
	}
}
