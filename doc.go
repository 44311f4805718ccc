// Package flowtrace computes maximum flow in directed, capacitated networks and
// records every algorithmic decision as a replayable trace.
//
// What is flowtrace?
//
//	A small library and command-line tool that brings together:
//		• Network model: declared nodes & edges, duplicate policies, YAML/JSON documents, presets
//		• Engines: Edmonds–Karp, Dinic, highest-label Push–Relabel
//		• Traces: one record per augmenting path, phase, push or relabel
//		• Views: per-edge flow/capacity and highlights at any record
//		• Min cut & side-by-side comparison of the three engines
//		• Delivery: a cobra CLI and a gin HTTP API
//
// Packages:
//
//	network/         - declared networks, documents and built-in presets
//	flow/            - residual graph, flow ledger, engines, traces, views, min cut
//	internal/config  - YAML configuration with defaults
//	internal/logging - zerolog console setup
//	internal/server  - HTTP trace service
//	internal/cli     - command tree behind cmd/flowtrace
//
// Quick example:
//
//	nw := network.New()
//	nw.AddEdge("s", "a", 3)
//	nw.AddEdge("a", "t", 2)
//	tr, _ := flow.Dinic(nw, "s", "t")
//	for _, s := range tr.Steps {
//		fmt.Println(s.Description)
//	}
//
//	go install github.com/katalvlaran/flowtrace/cmd/flowtrace@latest
package flowtrace
