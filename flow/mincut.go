package flow

import "github.com/katalvlaran/flowtrace/network"

// Cut is an s–t cut of the declared network.
type Cut struct {
	SourceSide []string       `json:"sourceSide" yaml:"sourceSide"`
	SinkSide   []string       `json:"sinkSide" yaml:"sinkSide"`
	Edges      []network.Edge `json:"edges" yaml:"edges"`
	Capacity   int64          `json:"capacity" yaml:"capacity"`
}

// MinCut derives a minimum s–t cut from the terminal record.
//
// Steps:
//  1. Rebuild residual arcs from the final flows: c-f forward and f backward
//     per declared edge.
//  2. BFS from source over arcs with positive residual capacity; the reached
//     nodes are the source side.
//  3. Collect declared edges leaving the source side and sum their capacity.
//
// For a maximum flow the cut capacity equals MaxFlow.
// Complexity: O(V + E)
func (t *Trace) MinCut() Cut {
	flows := t.Final().EdgeFlows
	adj := make(map[string][]string, len(t.Nodes))
	for _, e := range t.Edges {
		f := flows[e.ID]
		if e.Capacity-f > 0 {
			adj[e.Source] = append(adj[e.Source], e.Target)
		}
		if f > 0 {
			adj[e.Target] = append(adj[e.Target], e.Source)
		}
	}

	reached := map[string]bool{t.Source: true}
	queue := []string{t.Source}
	for i := 0; i < len(queue); i++ {
		for _, v := range adj[queue[i]] {
			if !reached[v] {
				reached[v] = true
				queue = append(queue, v)
			}
		}
	}

	var cut Cut
	for _, id := range t.Nodes {
		if reached[id] {
			cut.SourceSide = append(cut.SourceSide, id)
		} else {
			cut.SinkSide = append(cut.SinkSide, id)
		}
	}
	for _, e := range t.Edges {
		if reached[e.Source] && !reached[e.Target] {
			cut.Edges = append(cut.Edges, e)
			cut.Capacity += e.Capacity
		}
	}

	return cut
}
