package network_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowtrace/network"
)

const textbookYAML = `
source: s
sink: t
edges:
  - {source: s, target: a, capacity: 10}
  - {source: s, target: b, capacity: 10}
  - {source: a, target: c, capacity: 4}
  - {source: a, target: d, capacity: 8}
  - {source: b, target: d, capacity: 9}
  - {source: c, target: t, capacity: 10}
  - {source: d, target: c, capacity: 6}
  - {source: d, target: t, capacity: 10}
`

func TestDecodeYAML(t *testing.T) {
	doc, err := network.Decode(strings.NewReader(textbookYAML))
	require.NoError(t, err)
	assert.Equal(t, "s", doc.Source)
	assert.Equal(t, "t", doc.Sink)
	require.Len(t, doc.Edges, 8)

	n, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"s", "a", "b", "c", "d", "t"}, n.Nodes())
}

func TestDecodeJSON(t *testing.T) {
	doc, err := network.DecodeBytes([]byte(`{"source":"s","sink":"t","nodes":["s","t"],"edges":[{"source":"s","target":"t","capacity":5}]}`))
	require.NoError(t, err)
	n, err := doc.Build()
	require.NoError(t, err)
	assert.Equal(t, 1, n.EdgeCount())
}

func TestDecodeMalformed(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"non-numeric":  "source: s\nsink: t\nedges:\n  - {source: s, target: t, capacity: lots}\n",
		"unknown-key":  "source: s\nsink: t\nweights: []\n",
		"not-a-object": "- 1\n- 2\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := network.DecodeBytes([]byte(input))
			require.ErrorIs(t, err, network.ErrMalformedDocument)
		})
	}
}

func TestBuildErrors(t *testing.T) {
	_, err := network.Document{Source: "s", Sink: "t"}.Build()
	require.ErrorIs(t, err, network.ErrNoEdges)

	doc := network.Document{Source: "s", Sink: "x", Edges: []network.DocumentEdge{{Source: "s", Target: "t", Capacity: 1}}}
	_, err = doc.Build()
	require.ErrorIs(t, err, network.ErrNodeNotFound)

	doc = network.Document{Source: "s", Sink: "t", Edges: []network.DocumentEdge{
		{Source: "s", Target: "t", Capacity: 1},
		{Source: "s", Target: "t", Capacity: 1},
	}}
	_, err = doc.Build(network.WithDuplicatePolicy(network.DuplicateReject))
	require.ErrorIs(t, err, network.ErrDuplicateEdge)
	require.Contains(t, err.Error(), "edge 1")
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := network.Preset("textbook")
	require.NoError(t, err)
	n, err := doc.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, network.DocumentOf(n, "s", "t").Encode(&buf))

	dir := t.TempDir()
	path := filepath.Join(dir, "net.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := network.LoadFile(path)
	require.NoError(t, err)
	m, err := loaded.Build()
	require.NoError(t, err)
	assert.Equal(t, n.Edges(), m.Edges())
	assert.Equal(t, n.Nodes(), m.Nodes())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := network.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestPresets(t *testing.T) {
	names := network.PresetNames()
	assert.Equal(t, []string{"default", "dense-graph", "ff-worst-case", "long-chain", "textbook"}, names)

	for _, name := range names {
		doc, err := network.Preset(name)
		require.NoError(t, err, name)
		_, err = doc.Build()
		require.NoError(t, err, name)
	}

	_, err := network.Preset("nope")
	require.ErrorIs(t, err, network.ErrPresetNotFound)
}

// TestPresetIsolation ensures callers cannot mutate the built-in tables.
func TestPresetIsolation(t *testing.T) {
	doc, err := network.Preset("long-chain")
	require.NoError(t, err)
	doc.Edges[0].Capacity = 1

	again, err := network.Preset("long-chain")
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Edges[0].Capacity)
}
