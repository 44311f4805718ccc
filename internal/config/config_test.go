package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, flow.EdmondsKarpAlgorithm, c.Algorithm())
	require.Equal(t, network.DuplicateSum, c.DuplicatePolicy())
	require.Equal(t, 100000, c.Trace.MaxSteps)
	require.Equal(t, 2048, c.Trace.MaxNodes)
	require.Equal(t, ":8080", c.Server.Addr)
	require.Equal(t, 256, c.Server.MaxStored)
	require.Equal(t, 10*time.Second, c.Server.ReadTimeout)

	empty, err := Load("")
	require.NoError(t, err)
	require.Equal(t, c, empty)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flowtrace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  no_color: true
trace:
  algorithm: pr
  max_steps: 50
  max_nodes: 64
  duplicates: reject
  verbose: true
server:
  addr: "127.0.0.1:9000"
  read_timeout: 2s
`), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.True(t, c.Log.NoColor)
	require.Equal(t, flow.PushRelabelAlgorithm, c.Algorithm())
	require.Equal(t, network.DuplicateReject, c.DuplicatePolicy())
	require.Equal(t, "127.0.0.1:9000", c.Server.Addr)
	require.Equal(t, 2*time.Second, c.Server.ReadTimeout)
	require.Equal(t, 30*time.Second, c.Server.WriteTimeout, "unset fields fall back to defaults")

	opts := c.FlowOptions(zerolog.Nop())
	require.True(t, opts.Verbose)
	require.Equal(t, 50, opts.MaxSteps)
	require.Equal(t, 64, opts.MaxNodes)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "trace:\n  algo: dinic\n",
		"bad level":      "log:\n  level: loud\n",
		"bad algorithm":  "trace:\n  algorithm: simplex\n",
		"negative steps": "trace:\n  max_steps: -1\n",
		"negative nodes": "trace:\n  max_nodes: -1\n",
		"bad duplicates": "trace:\n  duplicates: merge\n",
		"bad mode":       "server:\n  mode: prod\n",
		"not yaml":       "log: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
