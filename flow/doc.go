// Package flow implements trace-producing maximum-flow algorithms over a
// declared *network.Network. Besides the flow value, every engine returns an
// ordered, replayable sequence of records describing each algorithmic decision,
// so a consumer can reconstruct the network state at any step.
//
// The engines offered are:
//
//	Engine                  Method                                      Records                     Time
//	Edmonds–Karp            BFS shortest augmenting paths               one per augmenting path     O(V · E²)
//	Dinic                   level graph + explicit-stack blocking flow  one per phase               O(V² · E)
//	Push–Relabel (highest)  preflow + highest-label discharge           init, push, relabel         O(V² · √E)
//
// Dinic runs in O(E · √V) on unit-capacity networks. Push–Relabel records
// carry every node's height and excess.
//
// Every trace ends with exactly one record of kind StepFinal.
//
// # Residual graph
//
// Each run builds its own dense residual matrix from the declared edges and
// discards it on return. Runs never share residual state, so the engines can be
// called concurrently on the same Network (see Compare).
//
// # Cumulative flow
//
// Records report flow per declared edge, keyed by network.EdgeID. Moving flow
// across the reverse of a declared edge reduces that edge's flow instead of
// creating a backward flow. At every record 0 ≤ flow ≤ capacity holds for every
// declared edge.
//
// # API
//
//	func EdmondsKarp(nw *network.Network, source, sink string, opts ...Option) (*Trace, error)
//	func Dinic(nw *network.Network, source, sink string, opts ...Option) (*Trace, error)
//	func PushRelabel(nw *network.Network, source, sink string, opts ...Option) (*Trace, error)
//	func Run(alg Algorithm, nw *network.Network, source, sink string, opts ...Option) (*Trace, error)
//	func Compare(nw *network.Network, source, sink string, opts ...Option) (*Comparison, error)
//
// Options:
//
//	WithLogger(zerolog.Logger) // run logs (default: disabled)
//	WithVerbose()              // log every record at trace level
//	WithMaxSteps(n)            // abort with ErrStepBudgetExceeded past n records
//	WithMaxNodes(n)            // refuse networks with more than n nodes
//
// Traces are read with Len, Step, Final, MaxFlow, At (a View with per-edge
// flow/capacity and highlights; At(NoSelection) is the initial network) and
// MinCut.
//
// # Errors
//
//	ErrNilNetwork         - nil network.
//	ErrSourceNotFound     - source node missing.
//	ErrSinkNotFound       - sink node missing.
//	ErrSourceIsSink       - source == sink.
//	ErrOptionViolation    - invalid Option.
//	ErrNetworkTooLarge    - more nodes than MaxNodes; nothing is allocated.
//	ErrStepBudgetExceeded - MaxSteps exceeded; no partial trace is returned.
//	*InvariantError       - an algorithmic invariant broke (a defect).
//
// An unreachable sink is not an error: the trace holds only the final record
// and the flow is 0.
package flow
