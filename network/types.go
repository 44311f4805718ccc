package network

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Sentinel errors for network construction and validation.
var (
	// ErrEmptyNodeID indicates that a node identifier is the empty string.
	ErrEmptyNodeID = errors.New("network: node ID is empty")

	// ErrInvalidNodeID indicates a node identifier containing EdgeSeparator.
	ErrInvalidNodeID = errors.New("network: node ID contains \"" + EdgeSeparator + "\"")

	// ErrSelfLoop indicates an edge whose source and target coincide.
	ErrSelfLoop = errors.New("network: self-loop not allowed")

	// ErrDuplicateEdge indicates a repeated ordered pair under DuplicateReject.
	ErrDuplicateEdge = errors.New("network: duplicate edge")

	// ErrNoEdges indicates a network without any declared edge.
	ErrNoEdges = errors.New("network: no edges declared")

	// ErrNodeNotFound indicates a lookup of an undeclared node.
	ErrNodeNotFound = errors.New("network: node not found")

	// ErrMalformedDocument indicates a network document that could not be decoded.
	ErrMalformedDocument = errors.New("network: malformed document")

	// ErrPresetNotFound indicates an unknown preset name.
	ErrPresetNotFound = errors.New("network: preset not found")
)

// EdgeError is returned when an edge is declared with a negative capacity, or
// when summing a repeated declaration would overflow int64 (Overflow set).
type EdgeError struct {
	Source, Target string
	Capacity       int64
	Overflow       bool
}

func (e EdgeError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("network: summed capacity on edge %q→%q overflows int64 (adding %d)", e.Source, e.Target, e.Capacity)
	}
	return fmt.Sprintf("network: negative capacity on edge %q→%q: %d", e.Source, e.Target, e.Capacity)
}

// DuplicatePolicy decides what happens when an ordered pair is declared twice.
type DuplicatePolicy int

const (
	// DuplicateSum adds the capacity of a repeated declaration to the first one.
	DuplicateSum DuplicatePolicy = iota

	// DuplicateReject fails the repeated declaration with ErrDuplicateEdge.
	DuplicateReject
)

// String returns the configuration spelling of the policy.
func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	default:
		return "sum"
	}
}

// ParseDuplicatePolicy maps "sum" (or "") and "reject" onto a DuplicatePolicy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "sum":
		return DuplicateSum, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateSum, fmt.Errorf("network: unknown duplicate policy %q", s)
	}
}

// Edge is one declared, directed, capacitated edge.
//
// ID is derived from the endpoints (see EdgeID) and is the key under which the
// flow engines report cumulative flow.
type Edge struct {
	// ID is Source + EdgeSeparator + Target.
	ID string `json:"id" yaml:"id"`

	// Source is the tail node ID.
	Source string `json:"source" yaml:"source"`

	// Target is the head node ID.
	Target string `json:"target" yaml:"target"`

	// Capacity is the non-negative upper bound on flow along the edge.
	Capacity int64 `json:"capacity" yaml:"capacity"`
}

// EdgeSeparator joins the endpoints of an edge ID. Node IDs may not contain it,
// so every ID splits back into exactly one (source, target) pair.
const EdgeSeparator = "->"

// EdgeID returns the identifier of the declared edge source→target.
func EdgeID(source, target string) string {
	return source + EdgeSeparator + target
}

// SplitEdgeID returns the endpoints of an ID built by EdgeID.
func SplitEdgeID(id string) (source, target string, ok bool) {
	source, target, ok = strings.Cut(id, EdgeSeparator)
	if !ok || source == "" || target == "" {
		return "", "", false
	}

	return source, target, true
}

func checkNodeID(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if strings.Contains(id, EdgeSeparator) {
		return fmt.Errorf("%w: %q", ErrInvalidNodeID, id)
	}

	return nil
}

// Option configures a Network before any node or edge is added.
type Option func(n *Network)

// WithDuplicatePolicy selects how repeated ordered pairs are handled.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(n *Network) { n.duplicates = p }
}

// Network is an ordered, declared flow network.
//
// mu guards every field; the flow engines only take read locks.
type Network struct {
	mu sync.RWMutex

	duplicates DuplicatePolicy

	nodes []string       // declaration order
	index map[string]int // node ID → position in nodes

	edges  []Edge           // declaration order, duplicates merged
	byPair map[string]int   // EdgeID → position in edges
	out    map[string][]int // node ID → positions of edges leaving it
}

// New creates an empty Network configured by opts.
// By default repeated ordered pairs are summed.
// Complexity: O(1)
func New(opts ...Option) *Network {
	n := &Network{
		index:  make(map[string]int),
		byPair: make(map[string]int),
		out:    make(map[string][]int),
	}
	for _, opt := range opts {
		opt(n)
	}

	return n
}
