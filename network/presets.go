package network

import (
	"fmt"
	"sort"
)

// Built-in networks; every preset uses source "s" and sink "t".
var presets = map[string][]DocumentEdge{
	// Classic CLRS network; max flow 23.
	"default": {
		{"s", "a", 16}, {"s", "b", 13}, {"a", "b", 10}, {"a", "c", 12}, {"b", "a", 4},
		{"b", "d", 14}, {"c", "b", 9}, {"c", "t", 20}, {"d", "c", 7}, {"d", "t", 4},
	},
	// DFS-based Ford-Fulkerson may bounce across a→b a million times; max flow 2000000.
	"ff-worst-case": {
		{"s", "a", 1000000}, {"s", "b", 1000000}, {"a", "b", 1}, {"a", "t", 1000000}, {"b", "t", 1000000},
	},
	// Two-layer complete bipartite middle; max flow 30.
	"dense-graph": {
		{"s", "a", 10}, {"s", "b", 10}, {"s", "c", 10},
		{"a", "d", 5}, {"a", "e", 5}, {"b", "d", 5}, {"b", "e", 5}, {"c", "d", 5}, {"c", "e", 5},
		{"d", "t", 15}, {"e", "t", 15},
	},
	// Single path; max flow 10.
	"long-chain": {
		{"s", "a", 10}, {"a", "b", 10}, {"b", "c", 10}, {"c", "d", 10}, {"d", "t", 10},
	},
	// Eight-edge teaching network; max flow 19.
	"textbook": {
		{"s", "a", 10}, {"s", "b", 10}, {"a", "c", 4}, {"a", "d", 8},
		{"b", "d", 9}, {"c", "t", 10}, {"d", "c", 6}, {"d", "t", 10},
	},
}

// PresetNames returns the names of the built-in networks, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Preset returns the built-in network document called name.
func Preset(name string) (Document, error) {
	edges, ok := presets[name]
	if !ok {
		return Document{}, fmt.Errorf("%w: %q", ErrPresetNotFound, name)
	}
	doc := Document{Source: "s", Sink: "t", Edges: make([]DocumentEdge, len(edges))}
	copy(doc.Edges, edges)

	return doc, nil
}
