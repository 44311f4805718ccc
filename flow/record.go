package flow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/flowtrace/network"
)

// Algorithm names a trace-producing max-flow engine.
type Algorithm string

// Supported engines.
const (
	EdmondsKarpAlgorithm Algorithm = "edmonds-karp"
	DinicAlgorithm       Algorithm = "dinic"
	PushRelabelAlgorithm Algorithm = "push-relabel"
)

// Algorithms lists every engine in presentation order.
func Algorithms() []Algorithm {
	return []Algorithm{EdmondsKarpAlgorithm, DinicAlgorithm, PushRelabelAlgorithm}
}

// StepKind classifies a record.
type StepKind string

// Record kinds. Edmonds-Karp emits augment, Dinic emits phase, Push-Relabel
// emits init, push and relabel; every engine ends with exactly one final.
const (
	StepAugment StepKind = "augment"
	StepPhase   StepKind = "phase"
	StepInit    StepKind = "init"
	StepPush    StepKind = "push"
	StepRelabel StepKind = "relabel"
	StepFinal   StepKind = "final"
)

// NodeState is the Push-Relabel working state of one node.
type NodeState struct {
	Height int   `json:"height" yaml:"height"`
	Excess int64 `json:"excess" yaml:"excess"`
}

// Step is an immutable snapshot taken after one meaningful event of a run.
//
// Description and EdgeFlows are always set. EdgeFlows maps every declared edge
// ID to the cumulative flow it carries at this point. The remaining fields are
// filled per algorithm:
//
//	Edmonds-Karp  Path, PathFlow (bottleneck)
//	Dinic         Paths, PathFlow (phase total), Phase, SinkLevel
//	Push-Relabel  NodeData, ActiveNode, PushEdge, PathFlow (pushed amount)
type Step struct {
	Kind        StepKind             `json:"type" yaml:"type"`
	Description string               `json:"description" yaml:"description"`
	EdgeFlows   map[string]int64     `json:"edgeFlows" yaml:"edgeFlows"`
	Path        []string             `json:"path,omitempty" yaml:"path,omitempty"`
	Paths       [][]string           `json:"paths,omitempty" yaml:"paths,omitempty"`
	PathFlow    int64                `json:"pathFlow" yaml:"pathFlow"`
	Phase       int                  `json:"phase,omitempty" yaml:"phase,omitempty"`
	SinkLevel   int                  `json:"sinkLevel,omitempty" yaml:"sinkLevel,omitempty"`
	NodeData    map[string]NodeState `json:"nodeData,omitempty" yaml:"nodeData,omitempty"`
	ActiveNode  string               `json:"activeNode,omitempty" yaml:"activeNode,omitempty"`
	PushEdge    string               `json:"pushEdge,omitempty" yaml:"pushEdge,omitempty"`
}

// Trace is the ordered record sequence of one run plus the declared network it
// was computed on. Index i precedes index i+1 in algorithmic time.
type Trace struct {
	ID        string         `json:"id" yaml:"id"`
	Algorithm Algorithm      `json:"algorithm" yaml:"algorithm"`
	Source    string         `json:"source" yaml:"source"`
	Sink      string         `json:"sink" yaml:"sink"`
	Nodes     []string       `json:"nodes" yaml:"nodes"`
	Edges     []network.Edge `json:"edges" yaml:"edges"`
	Steps     []Step         `json:"steps" yaml:"steps"`
}

// Len returns the number of records.
func (t *Trace) Len() int { return len(t.Steps) }

// Step returns record i.
func (t *Trace) Step(i int) (Step, error) {
	if i < 0 || i >= len(t.Steps) {
		return Step{}, fmt.Errorf("%w: %d not in [0,%d)", ErrStepOutOfRange, i, len(t.Steps))
	}

	return t.Steps[i], nil
}

// Final returns the terminal record.
func (t *Trace) Final() Step {
	return t.Steps[len(t.Steps)-1]
}

// MaxFlow returns the flow value of the terminal record: declared flow
// leaving the source minus declared flow entering it.
func (t *Trace) MaxFlow() int64 {
	return t.FlowAt(len(t.Steps) - 1)
}

// FlowAt returns the net source outflow reported by record i (0 for NoSelection).
func (t *Trace) FlowAt(i int) int64 {
	if i < 0 || i >= len(t.Steps) {
		return 0
	}
	flows := t.Steps[i].EdgeFlows
	var total int64
	for _, e := range t.Edges {
		switch t.Source {
		case e.Source:
			total += flows[e.ID]
		case e.Target:
			total -= flows[e.ID]
		}
	}

	return total
}

// Count returns how many records have the given kind.
func (t *Trace) Count(kind StepKind) int {
	n := 0
	for _, s := range t.Steps {
		if s.Kind == kind {
			n++
		}
	}

	return n
}

// tracer accumulates the records of one run.
type tracer struct {
	alg    Algorithm
	opts   FlowOptions
	log    zerolog.Logger
	ledger *flowLedger
	steps  []Step
	start  time.Time
}

func newTracer(alg Algorithm, opts FlowOptions, ledger *flowLedger) *tracer {
	return &tracer{
		alg:    alg,
		opts:   opts,
		log:    opts.Logger.With().Str("algorithm", string(alg)).Logger(),
		ledger: ledger,
		start:  time.Now(),
	}
}

// emit stamps s with the current flow snapshot and appends it.
func (tr *tracer) emit(s Step) error {
	if tr.opts.MaxSteps > 0 && len(tr.steps) >= tr.opts.MaxSteps {
		tr.log.Warn().Int("max_steps", tr.opts.MaxSteps).Msg("step budget exceeded; discarding trace")
		return fmt.Errorf("%w: %s stopped after %d records", ErrStepBudgetExceeded, tr.alg, tr.opts.MaxSteps)
	}
	s.EdgeFlows = tr.ledger.snapshot()
	tr.steps = append(tr.steps, s)
	if tr.opts.Verbose {
		tr.log.Trace().Int("index", len(tr.steps)-1).Str("kind", string(s.Kind)).Msg(s.Description)
	}

	return nil
}

// trace seals the run into a Trace.
func (tr *tracer) trace(nw *network.Network, source, sink string) *Trace {
	t := &Trace{
		ID:        uuid.NewString(),
		Algorithm: tr.alg,
		Source:    source,
		Sink:      sink,
		Nodes:     nw.Nodes(),
		Edges:     nw.Edges(),
		Steps:     tr.steps,
	}
	tr.log.Debug().
		Str("trace_id", t.ID).
		Int("steps", len(t.Steps)).
		Int64("max_flow", t.MaxFlow()).
		Dur("elapsed", time.Since(tr.start)).
		Msg("run finished")

	return t
}

// prepare validates the engine preconditions shared by every algorithm.
func prepare(nw *network.Network, source, sink string, opts []Option) (FlowOptions, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return o, err
	}
	if nw == nil {
		return o, ErrNilNetwork
	}
	if !nw.HasNode(source) {
		return o, ErrSourceNotFound
	}
	if !nw.HasNode(sink) {
		return o, ErrSinkNotFound
	}
	if source == sink {
		return o, ErrSourceIsSink
	}
	if n := nw.NodeCount(); o.MaxNodes > 0 && n > o.MaxNodes {
		return o, fmt.Errorf("%w: %d nodes, limit %d", ErrNetworkTooLarge, n, o.MaxNodes)
	}

	return o, nil
}
