package flow

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrSourceNotFound is returned when the specified source node is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = errors.New("source node not found")

// ErrSinkNotFound is returned when the specified sink node is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = errors.New("sink node not found")

// Sentinel errors for engine preconditions and run control.
var (
	// ErrSourceIsSink is returned when source and sink name the same node.
	ErrSourceIsSink = errors.New("flow: source and sink are the same node")

	// ErrNilNetwork is returned when a nil *network.Network is passed.
	ErrNilNetwork = errors.New("flow: network is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("flow: invalid option supplied")

	// ErrStepBudgetExceeded is returned when a run emits more records than
	// FlowOptions.MaxSteps allows. The partial trace is discarded.
	ErrStepBudgetExceeded = errors.New("flow: step budget exceeded")

	// ErrNetworkTooLarge is returned before any allocation when the network
	// declares more nodes than FlowOptions.MaxNodes allows.
	ErrNetworkTooLarge = errors.New("flow: network exceeds node limit")

	// ErrStepOutOfRange is returned by Trace.At for an index outside the trace.
	ErrStepOutOfRange = errors.New("flow: step index out of range")

	// ErrUnknownAlgorithm is returned by ParseAlgorithm and Run.
	ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")
)

// InvariantError reports a broken algorithmic invariant: a negative residual
// capacity, a negative excess, a decreasing height, and so on. It always
// indicates a defect; the run that raised it is aborted.
type InvariantError struct {
	Algorithm Algorithm
	Reason    string
}

func (e *InvariantError) Error() string {
	if e.Algorithm == "" {
		return "flow: invariant violated: " + e.Reason
	}
	return fmt.Sprintf("flow: %s: invariant violated: %s", e.Algorithm, e.Reason)
}

// violate aborts the current run. The engine entry point turns the panic back
// into a returned *InvariantError (see catchInvariant).
func violate(format string, args ...any) {
	panic(&InvariantError{Reason: fmt.Sprintf(format, args...)})
}

// catchInvariant recovers an *InvariantError raised by violate, logs it at
// error level and stores it in *errp. Any other panic is re-raised.
func catchInvariant(alg Algorithm, log zerolog.Logger, errp *error) {
	r := recover()
	if r == nil {
		return
	}
	ie, ok := r.(*InvariantError)
	if !ok {
		panic(r)
	}
	ie.Algorithm = alg
	log.Error().Str("algorithm", string(alg)).Str("reason", ie.Reason).Msg("invariant violated")
	*errp = ie
}

// FlowOptions configures all trace-producing max-flow engines.
//   - Logger:   destination for run and step logs (default: disabled).
//   - Verbose:  if true, every emitted record is logged at trace level.
//   - MaxSteps: if > 0, abort with ErrStepBudgetExceeded once more records
//     than this would be emitted.
//   - MaxNodes: if > 0, refuse networks with more nodes with
//     ErrNetworkTooLarge. Each run holds a V×V residual matrix.
type FlowOptions struct {
	Logger   zerolog.Logger
	Verbose  bool
	MaxSteps int
	MaxNodes int

	// internal error recorded during option parsing
	err error
}

// Option configures a run via functional arguments. An invalid Option is
// recorded and surfaced as ErrOptionViolation when the engine starts.
type Option func(*FlowOptions)

// DefaultOptions returns FlowOptions with a disabled logger, no verbose step
// logging and no step budget.
func DefaultOptions() FlowOptions {
	return FlowOptions{
		Logger:   zerolog.Nop(),
		Verbose:  false,
		MaxSteps: 0,
	}
}

// WithLogger routes run logs to l.
func WithLogger(l zerolog.Logger) Option {
	return func(o *FlowOptions) { o.Logger = l }
}

// WithVerbose logs every emitted record at trace level.
func WithVerbose() Option {
	return func(o *FlowOptions) { o.Verbose = true }
}

// WithMaxSteps bounds the number of records a run may emit.
//
//	n > 0: abort once the trace would exceed n records
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *FlowOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithMaxNodes bounds the size of the networks a run accepts.
//
//	n > 0: refuse networks with more than n nodes
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithMaxNodes(n int) Option {
	return func(o *FlowOptions) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithOptions replaces the whole option set, e.g. one built from configuration.
func WithOptions(opts FlowOptions) Option {
	return func(o *FlowOptions) {
		switch {
		case opts.MaxSteps < 0:
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, opts.MaxSteps)
			return
		case opts.MaxNodes < 0:
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, opts.MaxNodes)
			return
		}
		*o = opts
	}
}

func buildOptions(opts []Option) (FlowOptions, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o, o.err
}
