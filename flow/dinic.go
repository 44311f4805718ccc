package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowtrace/network"
)

// Dinic computes the maximum flow from source→sink using Dinic's algorithm
// (level graph + blocking flows) and returns one record per phase.
//
// It returns:
//   - trace: one phase record per blocking flow, then one final record
//   - err:   ErrNilNetwork, ErrSourceNotFound, ErrSinkNotFound, ErrSourceIsSink,
//     ErrOptionViolation, ErrNetworkTooLarge, ErrStepBudgetExceeded or *InvariantError
//
// Steps:
//  1. Validate options and terminals (O(1)).
//  2. Build a fresh residual graph and flow ledger (O(V²)).
//  3. Repeat until sink is unreachable:
//     a. BFS to compute levels from source (O(V²)).
//     b. If sink unreached, break. Check sink level grew since the last phase.
//     c. Find admissible paths (level[v] = level[u]+1, cap > 0) with an
//     explicit-stack DFS and a current-arc index per node, augmenting each
//     path's bottleneck, until none remains (blocking flow).
//     d. Emit {Paths, PathFlow: phase total, Phase, SinkLevel} if the total is positive.
//  4. Emit the final record.
//
// The sink level strictly increases phase over phase, so there are at most
// |V|-1 phases.
//
// Complexity:
//
//	Time:   O(V² · E) in general; O(E · √V) on unit-capacity networks.
//	Memory: O(V²) for the residual matrix plus O(V) for level, arc and stack state.
func Dinic(
	nw *network.Network,
	source, sink string,
	opts ...Option,
) (trace *Trace, err error) {
	// 1) Preconditions
	o, err := prepare(nw, source, sink, opts)
	if err != nil {
		return nil, err
	}
	defer catchInvariant(DinicAlgorithm, o.Logger, &err)

	// 2) Fresh per-run state
	r := newResidualGraph(nw)
	ledger := newFlowLedger(nw, r)
	tr := newTracer(DinicAlgorithm, o, ledger)
	s, t := r.index[source], r.index[sink]
	tr.log.Debug().Str("source", source).Str("sink", sink).Int("nodes", r.n()).Msg("run started")

	// 3) Phases
	lastSinkLevel := 0
	for phase := 1; ; phase++ {
		// 3a) Level graph
		level := buildLevels(r, s)
		// 3b) Done once sink drops out of the level graph
		if level[t] < 0 {
			break
		}
		if level[t] <= lastSinkLevel {
			violate("sink level %d did not grow past %d in phase %d", level[t], lastSinkLevel, phase)
		}
		lastSinkLevel = level[t]

		// 3c) Blocking flow
		next := make([]int, r.n())
		var (
			paths [][]string
			total int64
		)
		for {
			path, pushed := blockingPath(r, level, next, s, t)
			if path == nil {
				break
			}
			for i := 0; i < len(path)-1; i++ {
				r.augment(path[i], path[i+1], pushed)
				ledger.record(path[i], path[i+1], pushed)
			}
			paths = append(paths, r.names(path))
			total += pushed
		}

		// 3d) One record per phase
		if total == 0 {
			continue
		}
		tr.log.Debug().Int("phase", phase).Int("sink_level", level[t]).Int64("pushed", total).Msg("blocking flow")
		if err = tr.emit(Step{
			Kind:        StepPhase,
			Description: fmt.Sprintf("Phase %d: Found a blocking flow of %d via %d path(s).", phase, total, len(paths)),
			Paths:       paths,
			PathFlow:    total,
			Phase:       phase,
			SinkLevel:   level[t],
		}); err != nil {
			return nil, err
		}
	}

	// 4) Terminal record
	if err = tr.emit(Step{
		Kind:        StepFinal,
		Description: "No more augmenting paths found. Algorithm terminates.",
		Paths:       [][]string{},
	}); err != nil {
		return nil, err
	}

	return tr.trace(nw, source, sink), nil
}

// buildLevels returns the BFS distance of every node from s over cells with
// positive capacity; -1 marks unreached nodes.
func buildLevels(r *residualGraph, s int) []int {
	level := make([]int, r.n())
	for i := range level {
		level[i] = -1
	}
	level[s] = 0
	queue := []int{s}
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for v, c := range r.cap[u] {
			if c > 0 && level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return level
}

// blockingPath finds the next admissible s→t path of the current level graph
// and its bottleneck, or nil once the blocking flow is complete.
//
// The search is a DFS over an explicit stack. next[u] is the current arc of u:
// candidates before it are saturated or lead nowhere for the rest of the phase.
// Paths come out in the order a recursive first-fit DFS over node order would
// produce them.
func blockingPath(r *residualGraph, level, next []int, s, t int) ([]int, int64) {
	stack := []int{s}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		if u == t {
			bottleneck := int64(math.MaxInt64)
			for i := 0; i < len(stack)-1; i++ {
				bottleneck = min(bottleneck, r.cap[stack[i]][stack[i+1]])
			}
			return stack, bottleneck
		}

		advanced := false
		for ; next[u] < r.n(); next[u]++ {
			v := next[u]
			if r.cap[u][v] > 0 && level[v] == level[u]+1 {
				stack = append(stack, v)
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}

		// dead end: retreat and skip this arc at the parent
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			next[stack[len(stack)-1]]++
		}
	}

	return nil, 0
}
