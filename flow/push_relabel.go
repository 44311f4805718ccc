package flow

import (
	"fmt"
	"math"

	"github.com/katalvlaran/flowtrace/network"
)

// PushRelabel computes the maximum flow from source→sink using the
// highest-label preflow-push algorithm and returns one record per push and
// per relabel.
//
// It returns:
//   - trace: an init record, one push record per saturating source edge, one
//     record per push or relabel of the discharge loop, then one final record
//   - err:   ErrNilNetwork, ErrSourceNotFound, ErrSinkNotFound, ErrSourceIsSink,
//     ErrOptionViolation, ErrNetworkTooLarge, ErrStepBudgetExceeded or *InvariantError
//
// Steps:
//  1. Validate options and terminals (O(1)).
//  2. Build a fresh residual graph and flow ledger (O(V²)).
//  3. If sink is unreachable, emit only the final record.
//  4. Preflow: height[source] = |V|; emit init; saturate every declared edge
//     leaving source with positive capacity, in declaration order, emitting one
//     push each; force source excess to 0.
//  5. While an active node (non-terminal, positive excess) exists:
//     a. Pick the one with maximum height, ties by node order.
//     b. Push min(excess, cap) to each admissible neighbour
//     (cap > 0, height[u] = height[v]+1) in node order while excess remains,
//     one record per push.
//     c. If nothing was pushed, relabel to 1 + min height over residual
//     neighbours, one record.
//  6. Check every non-terminal excess is 0; emit the final record.
//
// The max flow is the final excess at sink.
//
// Complexity:
//
//	Time:   O(V² · √E) selections for highest-label; each scan is O(V) on the dense matrix.
//	Memory: O(V²) for the residual matrix plus O(V) for heights, excess and buckets.
func PushRelabel(
	nw *network.Network,
	source, sink string,
	opts ...Option,
) (trace *Trace, err error) {
	// 1) Preconditions
	o, err := prepare(nw, source, sink, opts)
	if err != nil {
		return nil, err
	}
	defer catchInvariant(PushRelabelAlgorithm, o.Logger, &err)

	// 2) Fresh per-run state
	r := newResidualGraph(nw)
	ledger := newFlowLedger(nw, r)
	tr := newTracer(PushRelabelAlgorithm, o, ledger)
	pr := &preflow{
		r:      r,
		ledger: ledger,
		tr:     tr,
		s:      r.index[source],
		t:      r.index[sink],
		height: make([]int, r.n()),
		excess: make([]int64, r.n()),
	}
	tr.log.Debug().Str("source", source).Str("sink", sink).Int("nodes", r.n()).Msg("run started")

	// 3) Nothing to do if sink is cut off
	if !r.reachable(pr.s, pr.t) {
		if err = pr.emit(Step{Kind: StepFinal, Description: "Sink is unreachable from source. Algorithm terminates."}); err != nil {
			return nil, err
		}
		return tr.trace(nw, source, sink), nil
	}

	// 4) Preflow
	if err = pr.initialize(nw.OutEdges(source)); err != nil {
		return nil, err
	}

	// 5) Discharge loop
	if err = pr.discharge(); err != nil {
		return nil, err
	}

	// 6) Terminal record
	for v, x := range pr.excess {
		if v != pr.s && v != pr.t && x != 0 {
			violate("node %q holds excess %d at termination", r.ids[v], x)
		}
	}
	if err = pr.emit(Step{Kind: StepFinal, Description: "No more active nodes. Algorithm terminates."}); err != nil {
		return nil, err
	}

	return tr.trace(nw, source, sink), nil
}

// preflow is the working state of one Push-Relabel run.
type preflow struct {
	r      *residualGraph
	ledger *flowLedger
	tr     *tracer
	s, t   int
	height []int
	excess []int64
	active *activeSet
}

func (p *preflow) initialize(out []network.Edge) error {
	n := p.r.n()
	p.height[p.s] = n
	if err := p.emit(Step{
		Kind:        StepInit,
		Description: fmt.Sprintf("Initializing. Setting height of source '%s' to %d.", p.r.ids[p.s], n),
		ActiveNode:  p.r.ids[p.s],
	}); err != nil {
		return err
	}

	p.active = newActiveSet(2 * n)
	for _, e := range out {
		v := p.r.index[e.Target]
		amount := p.r.cap[p.s][v]
		if amount <= 0 {
			continue
		}
		p.move(p.s, v, amount)
		if err := p.emit(Step{
			Kind:        StepPush,
			Description: fmt.Sprintf("Creating preflow: Pushing %d from '%s' to '%s'.", amount, p.r.ids[p.s], e.Target),
			PathFlow:    amount,
			ActiveNode:  p.r.ids[p.s],
			PushEdge:    e.ID,
		}); err != nil {
			return err
		}
	}
	p.excess[p.s] = 0

	return nil
}

func (p *preflow) discharge() error {
	for {
		u, ok := p.active.highest()
		if !ok {
			return nil
		}

		// push to admissible neighbours in node order
		pushed := false
		for v := 0; v < p.r.n() && p.excess[u] > 0; v++ {
			if p.r.cap[u][v] <= 0 || p.height[u] != p.height[v]+1 {
				continue
			}
			amount := min(p.excess[u], p.r.cap[u][v])
			p.move(u, v, amount)
			pushed = true
			if err := p.emit(Step{
				Kind: StepPush,
				Description: fmt.Sprintf("Pushing %d from '%s' (h:%d) to '%s' (h:%d).",
					amount, p.r.ids[u], p.height[u], p.r.ids[v], p.height[v]),
				PathFlow:   amount,
				ActiveNode: p.r.ids[u],
				PushEdge:   network.EdgeID(p.r.ids[u], p.r.ids[v]),
			}); err != nil {
				return err
			}
		}
		if pushed {
			continue
		}

		// relabel
		lowest := math.MaxInt
		for v, c := range p.r.cap[u] {
			if c > 0 {
				lowest = min(lowest, p.height[v])
			}
		}
		if lowest == math.MaxInt {
			violate("active node %q has no residual neighbour", p.r.ids[u])
		}
		old := p.height[u]
		if lowest+1 <= old {
			violate("relabel of %q would lower height %d to %d", p.r.ids[u], old, lowest+1)
		}
		p.active.remove(u, old)
		p.height[u] = lowest + 1
		p.active.add(u, p.height[u])
		if err := p.emit(Step{
			Kind:        StepRelabel,
			Description: fmt.Sprintf("Relabeling '%s' from height %d to %d.", p.r.ids[u], old, p.height[u]),
			ActiveNode:  p.r.ids[u],
		}); err != nil {
			return err
		}
	}
}

// move pushes amount from u to v and keeps the active set current.
func (p *preflow) move(u, v int, amount int64) {
	p.r.augment(u, v, amount)
	p.ledger.record(u, v, amount)
	p.excess[u] -= amount
	p.excess[v] += amount

	if u != p.s && p.excess[u] < 0 {
		violate("negative excess %d at %q", p.excess[u], p.r.ids[u])
	}
	if u != p.s && u != p.t && p.excess[u] == 0 {
		p.active.remove(u, p.height[u])
	}
	if v != p.s && v != p.t {
		p.active.add(v, p.height[v])
	}
}

// emit attaches the node states to s before handing it to the tracer.
func (p *preflow) emit(s Step) error {
	s.NodeData = make(map[string]NodeState, len(p.height))
	for v, id := range p.r.ids {
		s.NodeData[id] = NodeState{Height: p.height[v], Excess: p.excess[v]}
	}

	return p.tr.emit(s)
}
