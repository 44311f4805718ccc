package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowtrace/flow"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	kindColor   = color.New(color.FgYellow)
	flowColor   = color.New(color.FgGreen, color.Bold)
	markColor   = color.New(color.FgMagenta)
	warnColor   = color.New(color.FgRed, color.Bold)
)

func checkFormat(f string) error {
	switch f {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", f)
	}
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeTrace(w io.Writer, tr *flow.Trace) {
	headerColor.Fprintf(w, "%s trace %s\n", tr.Algorithm, tr.ID)
	fmt.Fprintf(w, "source %s, sink %s, %d nodes, %d edges\n\n", tr.Source, tr.Sink, len(tr.Nodes), len(tr.Edges))
	for i, s := range tr.Steps {
		fmt.Fprintf(w, "%4d  ", i)
		kindColor.Fprintf(w, "%-8s", s.Kind)
		fmt.Fprintf(w, "  %s\n", s.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "Max flow: ")
	flowColor.Fprintf(w, "%d\n", tr.MaxFlow())
}

func writeView(w io.Writer, v flow.View) {
	if v.Index == flow.NoSelection {
		headerColor.Fprintf(w, "Initial network\n")
	} else {
		headerColor.Fprintf(w, "Step %d ", v.Index)
		kindColor.Fprintf(w, "[%s]\n", v.Kind)
	}
	fmt.Fprintln(w, v.Description)
	fmt.Fprint(w, "Flow: ")
	flowColor.Fprintf(w, "%d\n", v.Flow)

	marked := make(map[string]bool, len(v.HighlightEdges))
	for _, id := range v.HighlightEdges {
		marked[id] = true
	}
	width := 0
	for _, e := range v.Edges {
		width = max(width, len(e.ID))
	}
	for _, e := range v.Edges {
		fmt.Fprintf(w, "  %-*s %d/%d", width, e.ID, e.Flow, e.Capacity)
		if marked[e.ID] {
			markColor.Fprint(w, "  *")
		}
		fmt.Fprintln(w)
	}
	if len(v.NodeData) > 0 {
		fmt.Fprintln(w, "Nodes:")
		for _, id := range nodeOrder(v) {
			st := v.NodeData[id]
			fmt.Fprintf(w, "  %s h=%d excess=%d\n", id, st.Height, st.Excess)
		}
	}
}

// nodeOrder lists NodeData keys in the order nodes first appear on the edges.
func nodeOrder(v flow.View) []string {
	seen := make(map[string]bool, len(v.NodeData))
	var out []string
	add := func(id string) {
		if _, ok := v.NodeData[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, e := range v.Edges {
		add(e.Source)
		add(e.Target)
	}

	return out
}

func writeComparison(w io.Writer, c *flow.Comparison) {
	g := c.Graph
	headerColor.Fprintf(w, "%d nodes, %d edges, density %.3f", g.Nodes, g.Edges, g.Density)
	if g.UnitCapacity {
		headerColor.Fprint(w, ", unit capacities")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-14s %10s %10s %s\n", "ALGORITHM", "MAX FLOW", "RECORDS", "DETAIL")
	for _, s := range c.Summaries {
		var detail []string
		switch s.Algorithm {
		case flow.DinicAlgorithm:
			detail = append(detail, fmt.Sprintf("%d phases", s.Phases))
		case flow.PushRelabelAlgorithm:
			detail = append(detail, fmt.Sprintf("%d pushes", s.Pushes), fmt.Sprintf("%d relabels", s.Relabels))
		default:
			detail = append(detail, fmt.Sprintf("%d augmenting paths", s.Operations))
		}
		fmt.Fprintf(w, "%-14s ", s.Algorithm)
		flowColor.Fprintf(w, "%10d", s.MaxFlow)
		fmt.Fprintf(w, " %10d %s\n", s.Operations, strings.Join(detail, ", "))
	}
	if !c.Agree() {
		warnColor.Fprintln(w, "engines disagree on the max-flow value")
	}
}
