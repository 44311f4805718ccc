package flow

import (
	"maps"

	"github.com/katalvlaran/flowtrace/network"
)

// flowLedger tracks cumulative flow per declared edge for reporting.
//
// Flow is kept along the canonical declared direction. Moving d units across
// u→v first cancels flow already recorded on a declared v→u, and only the
// remainder is added to u→v. At most one of a declared pair therefore carries
// positive flow, and cap[u][v] = c(u,v) - f(u,v) + f(v,u) holds for every pair.
type flowLedger struct {
	ids      []string
	declared map[[2]int]network.Edge
	flows    map[string]int64
}

func newFlowLedger(nw *network.Network, r *residualGraph) *flowLedger {
	edges := nw.Edges()
	l := &flowLedger{
		ids:      r.ids,
		declared: make(map[[2]int]network.Edge, len(edges)),
		flows:    make(map[string]int64, len(edges)),
	}
	for _, e := range edges {
		l.declared[[2]int{r.index[e.Source], r.index[e.Target]}] = e
		l.flows[e.ID] = 0
	}

	return l
}

// record books amount units moved across u→v.
func (l *flowLedger) record(u, v int, amount int64) {
	if back, ok := l.declared[[2]int{v, u}]; ok && l.flows[back.ID] > 0 {
		returned := min(l.flows[back.ID], amount)
		l.flows[back.ID] -= returned
		amount -= returned
	}
	if amount == 0 {
		return
	}
	fwd, ok := l.declared[[2]int{u, v}]
	if !ok {
		violate("flow of %d on undeclared edge %s", amount, network.EdgeID(l.ids[u], l.ids[v]))
	}
	l.flows[fwd.ID] += amount
	if l.flows[fwd.ID] > fwd.Capacity {
		violate("flow %d exceeds capacity %d on %s", l.flows[fwd.ID], fwd.Capacity, fwd.ID)
	}
}

// snapshot returns an independent copy of the current flows.
func (l *flowLedger) snapshot() map[string]int64 {
	return maps.Clone(l.flows)
}

// edgeFor returns the declared edge that a move across u→v is reported on:
// u→v itself when declared, otherwise the declared reverse v→u.
func (l *flowLedger) edgeFor(u, v int) (network.Edge, bool) {
	if e, ok := l.declared[[2]int{u, v}]; ok {
		return e, true
	}
	e, ok := l.declared[[2]int{v, u}]

	return e, ok
}
