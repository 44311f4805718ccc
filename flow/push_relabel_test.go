package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/flowtrace/flow"
)

// PushRelabelSuite exercises the highest-label Push–Relabel engine.
type PushRelabelSuite struct {
	suite.Suite
}

// TestSingleEdge: init, one preflow push, final.
func (s *PushRelabelSuite) TestSingleEdge() {
	tr, err := flow.PushRelabel(build(s.T(), edge{"s", "t", 5}), "s", "t")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, tr.Len())

	require.Equal(s.T(), flow.StepInit, tr.Steps[0].Kind)
	require.Equal(s.T(), "Initializing. Setting height of source 's' to 2.", tr.Steps[0].Description)
	require.Equal(s.T(), 2, tr.Steps[0].NodeData["s"].Height)

	push := tr.Steps[1]
	require.Equal(s.T(), flow.StepPush, push.Kind)
	require.Equal(s.T(), "Creating preflow: Pushing 5 from 's' to 't'.", push.Description)
	require.Equal(s.T(), "s->t", push.PushEdge)
	require.Equal(s.T(), int64(5), push.NodeData["t"].Excess)

	require.Equal(s.T(), "No more active nodes. Algorithm terminates.", tr.Final().Description)
	require.Equal(s.T(), int64(5), tr.MaxFlow())
}

// TestReturnToSource replays a run where surplus must flow back to source:
// s→a (3), a→t (2).
func (s *PushRelabelSuite) TestReturnToSource() {
	tr, err := flow.PushRelabel(build(s.T(), edge{"s", "a", 3}, edge{"a", "t", 2}), "s", "t")
	require.NoError(s.T(), err)

	want := []string{
		"Initializing. Setting height of source 's' to 3.",
		"Creating preflow: Pushing 3 from 's' to 'a'.",
		"Relabeling 'a' from height 0 to 1.",
		"Pushing 2 from 'a' (h:1) to 't' (h:0).",
		"Relabeling 'a' from height 1 to 4.",
		"Pushing 1 from 'a' (h:4) to 's' (h:3).",
		"No more active nodes. Algorithm terminates.",
	}
	got := make([]string, tr.Len())
	for i, step := range tr.Steps {
		got[i] = step.Description
	}
	require.Equal(s.T(), want, got)

	require.Equal(s.T(), "a->s", tr.Steps[5].PushEdge)
	require.Equal(s.T(), map[string]int64{"s->a": 2, "a->t": 2}, tr.Final().EdgeFlows)
	require.Equal(s.T(), flow.NodeState{Height: 4, Excess: 0}, tr.Final().NodeData["a"])
	require.Equal(s.T(), int64(2), tr.MaxFlow())
	assertWellFormed(s.T(), tr)
}

// TestTextbook checks the flow value and the structural invariants.
func (s *PushRelabelSuite) TestTextbook() {
	tr, err := flow.PushRelabel(textbook(s.T()), "s", "t")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(19), tr.MaxFlow())
	require.Equal(s.T(), flow.StepInit, tr.Steps[0].Kind)
	require.Equal(s.T(), 6, tr.Steps[0].NodeData["s"].Height)
	require.Equal(s.T(), 2, countPreflow(tr), "both source edges are saturated")
	require.Greater(s.T(), tr.Count(flow.StepPush), countPreflow(tr))
	assertWellFormed(s.T(), tr)
}

// TestHeightsNeverDecrease checks relabel records raise the active node and
// no height ever goes down.
func (s *PushRelabelSuite) TestHeightsNeverDecrease() {
	for seed := int64(1); seed <= 20; seed++ {
		tr, err := flow.PushRelabel(randomNetwork(s.T(), 10, 0.35, 7, seed), "0", "9")
		require.NoError(s.T(), err)
		assertWellFormed(s.T(), tr)

		for i := 1; i < tr.Len(); i++ {
			prev, cur := tr.Steps[i-1].NodeData, tr.Steps[i].NodeData
			for id, st := range cur {
				require.GreaterOrEqual(s.T(), st.Height, prev[id].Height, "seed %d record %d node %s", seed, i, id)
			}
			if tr.Steps[i].Kind == flow.StepRelabel {
				id := tr.Steps[i].ActiveNode
				require.Greater(s.T(), cur[id].Height, prev[id].Height, "seed %d record %d", seed, i)
			}
		}
	}
}

// TestUnreachable: sink cut off ⇒ only the final record, no preflow.
func (s *PushRelabelSuite) TestUnreachable() {
	tr, err := flow.PushRelabel(build(s.T(), edge{"s", "a", 3}, edge{"b", "t", 4}), "s", "t")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, tr.Len())
	require.Equal(s.T(), "Sink is unreachable from source. Algorithm terminates.", tr.Final().Description)
	require.Zero(s.T(), tr.MaxFlow())
}

// TestUnitChain pushes one unit down a long chain.
func (s *PushRelabelSuite) TestUnitChain() {
	tr, err := flow.PushRelabel(chain(s.T(), 10), "s", "t")
	require.NoError(s.T(), err)
	require.Equal(s.T(), int64(1), tr.MaxFlow())
	assertWellFormed(s.T(), tr)
}

func TestPushRelabelSuite(t *testing.T) {
	suite.Run(t, new(PushRelabelSuite))
}

// countPreflow counts the push records emitted while saturating source edges.
func countPreflow(tr *flow.Trace) int {
	n := 0
	for _, st := range tr.Steps {
		if st.Kind == flow.StepPush && st.ActiveNode == tr.Source {
			n++
		}
	}

	return n
}
