package flow

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/flowtrace/network"
)

// ParseAlgorithm maps a user-facing name onto an Algorithm. Besides the
// canonical names it accepts "ek", "ford-fulkerson", "ff" and "pr".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "edmonds-karp", "edmondskarp", "ek", "ford-fulkerson", "fordfulkerson", "ff":
		return EdmondsKarpAlgorithm, nil
	case "dinic":
		return DinicAlgorithm, nil
	case "push-relabel", "pushrelabel", "pr":
		return PushRelabelAlgorithm, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// Run dispatches to the engine named by alg.
func Run(alg Algorithm, nw *network.Network, source, sink string, opts ...Option) (*Trace, error) {
	switch alg {
	case EdmondsKarpAlgorithm:
		return EdmondsKarp(nw, source, sink, opts...)
	case DinicAlgorithm:
		return Dinic(nw, source, sink, opts...)
	case PushRelabelAlgorithm:
		return PushRelabel(nw, source, sink, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}
}

// Summary condenses one trace for side-by-side comparison.
//
// Elapsed is the wall-clock duration of the run inside Compare, where the
// engines execute concurrently and contend for CPU. It is not an isolated
// per-engine timing.
type Summary struct {
	Algorithm  Algorithm     `json:"algorithm" yaml:"algorithm"`
	MaxFlow    int64         `json:"maxFlow" yaml:"maxFlow"`
	Operations int           `json:"operations" yaml:"operations"`
	Phases     int           `json:"phases,omitempty" yaml:"phases,omitempty"`
	Pushes     int           `json:"pushes,omitempty" yaml:"pushes,omitempty"`
	Relabels   int           `json:"relabels,omitempty" yaml:"relabels,omitempty"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// GraphProperties describes the compared network.
type GraphProperties struct {
	Nodes        int     `json:"nodes" yaml:"nodes"`
	Edges        int     `json:"edges" yaml:"edges"`
	Density      float64 `json:"density" yaml:"density"`
	UnitCapacity bool    `json:"unitCapacity" yaml:"unitCapacity"`
}

// Comparison holds one trace per engine over the same declared network.
type Comparison struct {
	Graph     GraphProperties `json:"graph" yaml:"graph"`
	Summaries []Summary       `json:"summaries" yaml:"summaries"`
	Traces    []*Trace        `json:"-" yaml:"-"`
}

// Agree reports whether every engine found the same max-flow value.
func (c *Comparison) Agree() bool {
	for _, s := range c.Summaries[1:] {
		if s.MaxFlow != c.Summaries[0].MaxFlow {
			return false
		}
	}

	return true
}

// Trace returns the trace produced by alg, or nil.
func (c *Comparison) Trace(alg Algorithm) *Trace {
	for _, t := range c.Traces {
		if t.Algorithm == alg {
			return t
		}
	}

	return nil
}

// Compare runs every engine on nw concurrently. Each run builds its own
// residual graph from the declared edges; only the Network is shared, and
// only for reading. The first error encountered is returned.
//
// Each Summary.Elapsed is measured inside its own goroutine, so it includes
// time spent waiting on the other two runs.
func Compare(nw *network.Network, source, sink string, opts ...Option) (*Comparison, error) {
	algs := Algorithms()
	traces := make([]*Trace, len(algs))
	elapsed := make([]time.Duration, len(algs))

	var g errgroup.Group
	for i, alg := range algs {
		g.Go(func() error {
			start := time.Now()
			t, err := Run(alg, nw, source, sink, opts...)
			if err != nil {
				return err
			}
			traces[i], elapsed[i] = t, time.Since(start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c := &Comparison{Graph: propertiesOf(nw), Traces: traces}
	for i, t := range traces {
		s := Summary{
			Algorithm:  t.Algorithm,
			MaxFlow:    t.MaxFlow(),
			Operations: t.Len() - 1,
			Elapsed:    elapsed[i],
		}
		switch t.Algorithm {
		case DinicAlgorithm:
			s.Phases = t.Count(StepPhase)
		case PushRelabelAlgorithm:
			s.Pushes = t.Count(StepPush)
			s.Relabels = t.Count(StepRelabel)
		}
		c.Summaries = append(c.Summaries, s)
	}

	return c, nil
}

func propertiesOf(nw *network.Network) GraphProperties {
	p := GraphProperties{Nodes: nw.NodeCount(), Edges: nw.EdgeCount(), UnitCapacity: true}
	if p.Nodes > 1 {
		p.Density = float64(p.Edges) / float64(p.Nodes*(p.Nodes-1))
	}
	for _, e := range nw.Edges() {
		if e.Capacity != 1 {
			p.UnitCapacity = false
			break
		}
	}

	return p
}
