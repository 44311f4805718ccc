package flow

import "github.com/katalvlaran/flowtrace/network"

// residualGraph is the per-run residual capacity matrix.
//
// cap[u][v] is the remaining pushable capacity from node index u to node index
// v, synthetic reverse cells included. Indices follow network node order, so
// scanning v = 0..n-1 is the deterministic neighbour order of every engine.
type residualGraph struct {
	ids   []string       // index → node ID
	index map[string]int // node ID → index
	cap   [][]int64
}

// newResidualGraph builds a fresh residual graph from the declared edges of nw.
//
// Steps:
//  1. Snapshot node order and allocate an n×n zero matrix (O(V²)).
//  2. Set cap[source][target] = capacity per declared edge (O(E)).
//
// The network has already merged or rejected duplicate pairs, so step 2 never
// overwrites a cell.
func newResidualGraph(nw *network.Network) *residualGraph {
	ids := nw.Nodes()
	r := &residualGraph{
		ids:   ids,
		index: make(map[string]int, len(ids)),
		cap:   make([][]int64, len(ids)),
	}
	cells := make([]int64, len(ids)*len(ids))
	for i, id := range ids {
		r.index[id] = i
		r.cap[i] = cells[i*len(ids) : (i+1)*len(ids) : (i+1)*len(ids)]
	}
	for _, e := range nw.Edges() {
		r.cap[r.index[e.Source]][r.index[e.Target]] = e.Capacity
	}

	return r
}

// n returns the number of nodes.
func (r *residualGraph) n() int { return len(r.ids) }

// augment moves amount units of residual capacity from u→v to v→u.
// Callers guarantee amount ≤ cap[u][v]; a negative result is a defect.
func (r *residualGraph) augment(u, v int, amount int64) {
	r.cap[u][v] -= amount
	r.cap[v][u] += amount
	if r.cap[u][v] < 0 {
		violate("negative residual capacity %d on %s", r.cap[u][v], network.EdgeID(r.ids[u], r.ids[v]))
	}
}

// reachable reports whether sink can be reached from source over cells with
// positive capacity.
func (r *residualGraph) reachable(source, sink int) bool {
	seen := make([]bool, r.n())
	seen[source] = true
	queue := []int{source}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		if u == sink {
			return true
		}
		for v, c := range r.cap[u] {
			if c > 0 && !seen[v] {
				seen[v] = true
				queue = append(queue, v)
			}
		}
	}

	return false
}

// names maps a path of indices to node IDs.
func (r *residualGraph) names(path []int) []string {
	out := make([]string, len(path))
	for i, v := range path {
		out[i] = r.ids[v]
	}

	return out
}
