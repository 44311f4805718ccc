package flow

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/flowtrace/network"
)

// EdmondsKarp computes the maximum flow from source→sink using the
// Edmonds–Karp algorithm (BFS for shortest augmenting paths) and returns the
// trace of every augmentation.
//
// It returns:
//   - trace: one augment record per augmenting path, then one final record
//   - err:   ErrNilNetwork, ErrSourceNotFound, ErrSinkNotFound, ErrSourceIsSink,
//     ErrOptionViolation, ErrNetworkTooLarge, ErrStepBudgetExceeded or *InvariantError
//
// Steps:
//  1. Validate options and terminals (O(1)).
//  2. Build a fresh residual graph and flow ledger (O(V²)).
//  3. Repeat until no augmenting path:
//     a. BFS from source over cells with positive capacity, neighbours in
//     node order, stopping once sink is dequeued (O(V²)).
//     b. If sink unreached, break.
//     c. Augment the bottleneck along the path, update the ledger.
//     d. Emit {Path, PathFlow, Description, EdgeFlows}.
//  4. Emit the final record with an empty path.
//
// An unreachable sink is not an error: the trace holds only the final record.
//
// Complexity: O(V · E²) augmentations bound; each BFS is O(V²) on the dense matrix.
// Memory:     O(V²)
func EdmondsKarp(
	nw *network.Network,
	source, sink string,
	opts ...Option,
) (trace *Trace, err error) {
	// 1) Preconditions
	o, err := prepare(nw, source, sink, opts)
	if err != nil {
		return nil, err
	}
	defer catchInvariant(EdmondsKarpAlgorithm, o.Logger, &err)

	// 2) Fresh per-run state
	r := newResidualGraph(nw)
	ledger := newFlowLedger(nw, r)
	tr := newTracer(EdmondsKarpAlgorithm, o, ledger)
	s, t := r.index[source], r.index[sink]
	tr.log.Debug().Str("source", source).Str("sink", sink).Int("nodes", r.n()).Msg("run started")

	// 3) Augment along shortest paths until none remain
	for {
		path := bfsAugmentingPath(r, s, t)
		if path == nil {
			break
		}
		bottleneck := int64(math.MaxInt64)
		for i := 0; i < len(path)-1; i++ {
			bottleneck = min(bottleneck, r.cap[path[i]][path[i+1]])
		}
		for i := 0; i < len(path)-1; i++ {
			r.augment(path[i], path[i+1], bottleneck)
			ledger.record(path[i], path[i+1], bottleneck)
		}

		names := r.names(path)
		if err = tr.emit(Step{
			Kind:        StepAugment,
			Description: fmt.Sprintf("Found augmenting path %s. Bottleneck is %d.", strings.Join(names, " → "), bottleneck),
			Path:        names,
			PathFlow:    bottleneck,
		}); err != nil {
			return nil, err
		}
	}

	// 4) Terminal record
	if err = tr.emit(Step{
		Kind:        StepFinal,
		Description: "No more augmenting paths found. The algorithm terminates.",
		Path:        []string{},
	}); err != nil {
		return nil, err
	}

	return tr.trace(nw, source, sink), nil
}

// bfsAugmentingPath finds the shortest (fewest-edges) path from s to t over
// cells with positive residual capacity and returns it as node indices, or nil
// if t is unreachable. Ties between equal-length paths resolve by node order.
func bfsAugmentingPath(r *residualGraph, s, t int) []int {
	parent := make([]int, r.n())
	for i := range parent {
		parent[i] = -1
	}
	parent[s] = s

	queue := []int{s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		if u == t {
			break
		}
		for v, c := range r.cap[u] {
			if c > 0 && parent[v] < 0 {
				parent[v] = u
				queue = append(queue, v)
			}
		}
	}
	if parent[t] < 0 {
		return nil
	}

	// reconstruct t → s, then reverse
	path := []int{t}
	for cur := t; cur != s; cur = parent[cur] {
		path = append(path, parent[cur])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
