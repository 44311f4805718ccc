package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

const chainYAML = `source: s
sink: t
edges:
  - {source: s, target: a, capacity: 3}
  - {source: a, target: t, capacity: 2}
`

// execute runs the command tree with colour and logging kept quiet.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color", "--log-level", "error"}, args...))
	err := root.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "Version:    "+Version)
}

func TestRunText(t *testing.T) {
	out, err := execute(t, "", "run", "--preset", "textbook", "--algorithm", "dinic")
	require.NoError(t, err)
	require.Contains(t, out, "dinic trace ")
	require.Contains(t, out, "Phase 1: Found a blocking flow of 14 via 3 path(s).")
	require.Contains(t, out, "Phase 2: Found a blocking flow of 5 via 1 path(s).")
	require.Contains(t, out, "Max flow: 19")
}

func TestRunJSON(t *testing.T) {
	out, err := execute(t, "", "run", "-p", "default", "-a", "pr", "-o", "json")
	require.NoError(t, err)

	var tr flow.Trace
	require.NoError(t, json.Unmarshal([]byte(out), &tr))
	require.Equal(t, flow.PushRelabelAlgorithm, tr.Algorithm)
	require.Equal(t, int64(23), tr.MaxFlow())
	require.Equal(t, flow.StepInit, tr.Steps[0].Kind)
}

func TestRunStepYAML(t *testing.T) {
	out, err := execute(t, "", "run", "-p", "textbook", "--step", "-1", "-o", "yaml")
	require.NoError(t, err)

	var v flow.View
	require.NoError(t, yaml.Unmarshal([]byte(out), &v))
	require.Equal(t, flow.NoSelection, v.Index)
	require.Equal(t, "Initial network.", v.Description)
	require.Len(t, v.Edges, 8)
}

func TestRunStepText(t *testing.T) {
	out, err := execute(t, chainYAML, "run", "--file", "-", "-a", "push-relabel", "--step", "3")
	require.NoError(t, err)
	require.Contains(t, out, "Step 3 [push]")
	require.Contains(t, out, "Pushing 2 from 'a' (h:1) to 't' (h:0).")
	require.Contains(t, out, "a->t 2/2  *")
	require.Contains(t, out, "a h=1 excess=1")
}

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte(chainYAML), 0o600))

	out, err := execute(t, "", "run", "-f", path)
	require.NoError(t, err)
	require.Contains(t, out, "edmonds-karp trace ")
	require.Contains(t, out, "Found augmenting path s → a → t. Bottleneck is 2.")
	require.Contains(t, out, "Max flow: 2")
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "", "run")
	require.ErrorIs(t, err, errInputChoice)

	_, err = execute(t, "", "run", "-p", "textbook", "-f", "x.yaml")
	require.ErrorIs(t, err, errInputChoice)

	_, err = execute(t, "", "run", "-p", "nope")
	require.ErrorIs(t, err, network.ErrPresetNotFound)

	_, err = execute(t, "", "run", "-p", "textbook", "-a", "simplex")
	require.ErrorIs(t, err, flow.ErrUnknownAlgorithm)

	_, err = execute(t, "", "run", "-p", "textbook", "-o", "xml")
	require.Error(t, err)

	_, err = execute(t, "", "run", "-p", "textbook", "--max-steps", "1")
	require.ErrorIs(t, err, flow.ErrStepBudgetExceeded)

	_, err = execute(t, "", "run", "-p", "textbook", "--step", "42")
	require.ErrorIs(t, err, flow.ErrStepOutOfRange)

	_, err = execute(t, "source: s\nsink: t\nedges: []\n", "run", "-f", "-")
	require.ErrorIs(t, err, network.ErrNoEdges)
}

func TestCompare(t *testing.T) {
	out, err := execute(t, "", "compare", "-p", "textbook")
	require.NoError(t, err)
	require.Contains(t, out, "6 nodes, 8 edges")
	for _, alg := range flow.Algorithms() {
		require.Contains(t, out, string(alg))
	}
	require.Contains(t, out, "2 phases")
	require.NotContains(t, out, "disagree")

	out, err = execute(t, "", "compare", "-p", "long-chain", "-o", "json")
	require.NoError(t, err)
	var c flow.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	require.Len(t, c.Summaries, 3)
	require.True(t, c.Agree())
	require.Equal(t, int64(10), c.Summaries[0].MaxFlow)
}

func TestPresets(t *testing.T) {
	out, err := execute(t, "", "presets")
	require.NoError(t, err)
	for _, name := range network.PresetNames() {
		require.Contains(t, out, name)
	}

	out, err = execute(t, "", "presets", "long-chain")
	require.NoError(t, err)
	doc, err := network.DecodeBytes([]byte(out))
	require.NoError(t, err)
	require.Equal(t, "s", doc.Source)
	require.Len(t, doc.Edges, 5)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte("trace:\n  algorithm: dinic\n"), 0o600))
	out, err := execute(t, "", "--config", good, "run", "-p", "long-chain")
	require.NoError(t, err)
	require.Contains(t, out, "dinic trace ")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("trace:\n  duplicates: merge\n"), 0o600))
	_, err = execute(t, "", "--config", bad, "presets")
	require.Error(t, err)
}
