package flow

import (
	"github.com/katalvlaran/flowtrace/network"
)

// NoSelection is the cursor value meaning "no record selected": the view shows
// the declared network with zero flow and nothing highlighted.
const NoSelection = -1

// EdgeView is the state of one declared edge at a given record.
type EdgeView struct {
	ID       string `json:"id" yaml:"id"`
	Source   string `json:"source" yaml:"source"`
	Target   string `json:"target" yaml:"target"`
	Flow     int64  `json:"flow" yaml:"flow"`
	Capacity int64  `json:"capacity" yaml:"capacity"`
}

// View is what a presentation layer needs to draw record Index.
type View struct {
	Index          int                  `json:"index" yaml:"index"`
	Kind           StepKind             `json:"type,omitempty" yaml:"type,omitempty"`
	Description    string               `json:"description" yaml:"description"`
	Flow           int64                `json:"flow" yaml:"flow"`
	Edges          []EdgeView           `json:"edges" yaml:"edges"`
	HighlightNodes []string             `json:"highlightNodes,omitempty" yaml:"highlightNodes,omitempty"`
	HighlightEdges []string             `json:"highlightEdges,omitempty" yaml:"highlightEdges,omitempty"`
	NodeData       map[string]NodeState `json:"nodeData,omitempty" yaml:"nodeData,omitempty"`
}

// At returns the view of record i, or of the initial network for NoSelection.
//
// Highlights:
//   - augment: nodes and edges of the path.
//   - phase:   nodes and edges of every path of the phase.
//   - push:    the active node, its target and the edge pushed along.
//   - init, relabel: the active node.
//
// A move along the reverse of a declared edge highlights that declared edge.
func (t *Trace) At(i int) (View, error) {
	if i == NoSelection {
		v := View{Index: NoSelection, Description: "Initial network.", Edges: t.edgeViews(nil)}
		return v, nil
	}
	s, err := t.Step(i)
	if err != nil {
		return View{}, err
	}

	v := View{
		Index:       i,
		Kind:        s.Kind,
		Description: s.Description,
		Flow:        t.FlowAt(i),
		Edges:       t.edgeViews(s.EdgeFlows),
		NodeData:    s.NodeData,
	}
	h := newHighlighter(t.Edges)
	switch s.Kind {
	case StepAugment:
		h.path(s.Path)
	case StepPhase:
		for _, p := range s.Paths {
			h.path(p)
		}
	case StepPush:
		h.node(s.ActiveNode)
		if from, to, ok := network.SplitEdgeID(s.PushEdge); ok {
			h.node(to)
			h.edge(from, to)
		}
	case StepInit, StepRelabel:
		h.node(s.ActiveNode)
	}
	v.HighlightNodes, v.HighlightEdges = h.nodes, h.edges

	return v, nil
}

func (t *Trace) edgeViews(flows map[string]int64) []EdgeView {
	out := make([]EdgeView, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = EdgeView{ID: e.ID, Source: e.Source, Target: e.Target, Flow: flows[e.ID], Capacity: e.Capacity}
	}

	return out
}

// highlighter collects unique node and declared-edge IDs in first-seen order.
type highlighter struct {
	declared map[string]bool
	seen     map[string]bool
	nodes    []string
	edges    []string
}

func newHighlighter(edges []network.Edge) *highlighter {
	h := &highlighter{declared: make(map[string]bool, len(edges)), seen: make(map[string]bool)}
	for _, e := range edges {
		h.declared[e.ID] = true
	}

	return h
}

func (h *highlighter) node(id string) {
	if id == "" || h.seen["n:"+id] {
		return
	}
	h.seen["n:"+id] = true
	h.nodes = append(h.nodes, id)
}

func (h *highlighter) edge(from, to string) {
	id := network.EdgeID(from, to)
	if !h.declared[id] {
		id = network.EdgeID(to, from)
		if !h.declared[id] {
			return
		}
	}
	if h.seen["e:"+id] {
		return
	}
	h.seen["e:"+id] = true
	h.edges = append(h.edges, id)
}

func (h *highlighter) path(p []string) {
	for i, id := range p {
		h.node(id)
		if i > 0 {
			h.edge(p[i-1], id)
		}
	}
}
