// Package network defines the declared input of a max-flow run: an ordered set
// of node identifiers, a list of directed capacitated edges, and the helpers to
// validate, load and share such networks.
//
// A Network is the only value the flow engines read. Each engine copies the
// declared capacities into its own residual graph, so one Network may be handed
// to several engines (or several goroutines) at once.
//
// # Ordering
//
// Node order is the order in which identifiers were first declared: nodes
// added with AddNode (or listed in a Document's "nodes" field) come first, in
// order, followed by edge endpoints as they appear. Every neighbour scan in the
// flow engines follows this order, so two runs over the same Network produce
// identical traces.
//
// # Duplicate edges
//
// Two declarations of the same ordered pair are merged by default: the second
// capacity is added to the first declaration (DuplicateSum). WithDuplicatePolicy
// (DuplicateReject) turns the second declaration into ErrDuplicateEdge instead.
//
// # Errors
//
//	ErrEmptyNodeID        - a node identifier is the empty string.
//	ErrInvalidNodeID      - a node identifier contains "->", the edge ID separator.
//	ErrSelfLoop           - an edge starts and ends at the same node.
//	ErrDuplicateEdge      - a repeated ordered pair under DuplicateReject.
//	ErrNoEdges            - Validate on a network with no declared edges.
//	ErrMalformedDocument  - a YAML/JSON network document could not be decoded.
//	ErrPresetNotFound     - Preset was asked for an unknown name.
//	EdgeError             - a declared capacity is negative, or a summed one overflows.
//	NodeError             - Validate names an undeclared source or sink.
//
// # Documents
//
// Networks travel as YAML or JSON documents:
//
//	source: s
//	sink: t
//	edges:
//	  - {source: s, target: a, capacity: 10}
//	  - {source: a, target: t, capacity: 4}
//
// Decode and LoadFile read them with gopkg.in/yaml.v3 (JSON is accepted as YAML).
package network
