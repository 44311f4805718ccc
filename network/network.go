package network

import (
	"fmt"
	"math"
)

// AddNode declares a node. Declaring an existing node is a no-op.
//
// Errors:
//   - ErrEmptyNodeID: if id == "".
//   - ErrInvalidNodeID: if id contains EdgeSeparator.
//
// Complexity: O(1) amortized.
func (n *Network) AddNode(id string) error {
	if err := checkNodeID(id); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.addNodeLocked(id)

	return nil
}

func (n *Network) addNodeLocked(id string) {
	if _, ok := n.index[id]; ok {
		return
	}
	n.index[id] = len(n.nodes)
	n.nodes = append(n.nodes, id)
}

// AddEdge declares the directed edge source→target with the given capacity and
// returns its ID. Missing endpoints are declared on the fly, source first.
//
// Steps:
//  1. Validate IDs, loop and capacity.
//  2. Declare both endpoints.
//  3. If the ordered pair exists, sum or reject per the duplicate policy.
//     A sum that would overflow int64 is refused.
//  4. Otherwise append the edge and index it.
//
// Errors:
//   - ErrEmptyNodeID, ErrInvalidNodeID, ErrSelfLoop, EdgeError, ErrDuplicateEdge.
//
// Complexity: O(1) amortized.
func (n *Network) AddEdge(source, target string, capacity int64) (string, error) {
	// 1) Input validation
	if err := checkNodeID(source); err != nil {
		return "", err
	}
	if err := checkNodeID(target); err != nil {
		return "", err
	}
	if source == target {
		return "", ErrSelfLoop
	}
	if capacity < 0 {
		return "", EdgeError{Source: source, Target: target, Capacity: capacity}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	// 2) Endpoints
	n.addNodeLocked(source)
	n.addNodeLocked(target)

	// 3) Repeated pair
	id := EdgeID(source, target)
	if pos, ok := n.byPair[id]; ok {
		if n.duplicates == DuplicateReject {
			return "", ErrDuplicateEdge
		}
		if capacity > math.MaxInt64-n.edges[pos].Capacity {
			return "", EdgeError{Source: source, Target: target, Capacity: capacity, Overflow: true}
		}
		n.edges[pos].Capacity += capacity

		return id, nil
	}

	// 4) New declaration
	n.byPair[id] = len(n.edges)
	n.out[source] = append(n.out[source], len(n.edges))
	n.edges = append(n.edges, Edge{ID: id, Source: source, Target: target, Capacity: capacity})

	return id, nil
}

// HasNode reports whether id has been declared.
func (n *Network) HasNode(id string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.index[id]

	return ok
}

// HasEdge reports whether source→target has been declared.
func (n *Network) HasEdge(source, target string) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	_, ok := n.byPair[EdgeID(source, target)]

	return ok
}

// Edge returns the declared edge with the given ID.
func (n *Network) Edge(id string) (Edge, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	pos, ok := n.byPair[id]
	if !ok {
		return Edge{}, false
	}

	return n.edges[pos], true
}

// Index returns the position of id in node order.
func (n *Network) Index(id string) (int, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	i, ok := n.index[id]

	return i, ok
}

// Nodes returns a copy of the node IDs in declaration order.
func (n *Network) Nodes() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]string, len(n.nodes))
	copy(out, n.nodes)

	return out
}

// Edges returns a copy of the declared edges in declaration order.
func (n *Network) Edges() []Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Edge, len(n.edges))
	copy(out, n.edges)

	return out
}

// OutEdges returns the declared edges leaving id, in declaration order.
func (n *Network) OutEdges(id string) []Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()
	positions := n.out[id]
	out := make([]Edge, 0, len(positions))
	for _, pos := range positions {
		out = append(out, n.edges[pos])
	}

	return out
}

// NodeCount returns the number of declared nodes.
func (n *Network) NodeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.nodes)
}

// EdgeCount returns the number of distinct declared ordered pairs.
func (n *Network) EdgeCount() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.edges)
}

// DuplicatePolicy returns the policy the network was built with.
func (n *Network) DuplicatePolicy() DuplicatePolicy {
	return n.duplicates
}

// Validate checks the network as a max-flow input between source and sink.
//
// Errors:
//   - ErrNoEdges: no declared edge.
//   - ErrNodeNotFound (wrapped with the missing ID): source or sink undeclared.
func (n *Network) Validate(source, sink string) error {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.edges) == 0 {
		return ErrNoEdges
	}
	for _, id := range []string{source, sink} {
		if _, ok := n.index[id]; !ok {
			return &NodeError{ID: id}
		}
	}

	return nil
}

// NodeError reports an undeclared node; it unwraps to ErrNodeNotFound.
type NodeError struct {
	ID string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("network: node %q not found", e.ID)
}

func (e *NodeError) Unwrap() error { return ErrNodeNotFound }
