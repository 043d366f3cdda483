package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
steps:
  - action: geometry
    width: 100
    height: 100
    stickWidth: 20
    stickHeight: 20
  - action: press
    label: down
    x: 50
    y: 50
  - action: move
    x: 50
    y: 35
  - action: move
    x: 50
    y: 20
  - action: move
    x: 50
    y: 10
  - action: release
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReplay(t *testing.T) {
	script := writeFile(t, "drag.yaml", testScript)

	out, err := execute(t, "replay", script)
	require.NoError(t, err)
	assert.Contains(t, out, "trace ")
	assert.Contains(t, out, "press (down)")
	assert.Contains(t, out, "drag(90.00, 0.75)")
	assert.Contains(t, out, "dragging")
}

func TestReplayWithConfig(t *testing.T) {
	script := writeFile(t, "drag.yaml", testScript)
	cfg := writeFile(t, "stick.yaml", "start_on_first_touch: false\nslop: 20\n")

	out, err := execute(t, "replay", "--json", "--config", cfg, script)
	require.NoError(t, err)

	var trace struct {
		ID      string `json:"id"`
		Records []struct {
			Action  string `json:"action"`
			Handled bool   `json:"handled"`
			State   string `json:"state"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &trace))
	assert.NotEmpty(t, trace.ID)
	require.Len(t, trace.Records, 6)

	// Slop 20: the move to y=35 stays within it, y=20 exceeds it.
	assert.Equal(t, "detecting", trace.Records[1].State)
	assert.False(t, trace.Records[2].Handled)
	assert.True(t, trace.Records[3].Handled)
	assert.Equal(t, "dragging", trace.Records[3].State)
	assert.Equal(t, "idle", trace.Records[5].State)
}

func TestReplayPlot(t *testing.T) {
	script := writeFile(t, "drag.yaml", testScript)

	out, err := execute(t, "replay", "--plot", script)
	require.NoError(t, err)
	assert.Contains(t, out, "offset")
}

func TestReplayErrors(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	empty := writeFile(t, "empty.yaml", "steps: []\n")
	_, err = execute(t, "replay", empty)
	assert.ErrorContains(t, err, "no steps")

	bad := writeFile(t, "bad.yaml", "steps:\n  - action: fly\n")
	_, err = execute(t, "replay", bad)
	assert.ErrorContains(t, err, "unknown action")

	script := writeFile(t, "drag.yaml", testScript)
	cfg := writeFile(t, "stick.yaml", "slop: -1\n")
	_, err = execute(t, "replay", "--config", cfg, script)
	assert.ErrorContains(t, err, "invalid config")

	_, err = execute(t, "replay")
	assert.Error(t, err)
}

func TestRadius(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"square", []string{"--width", "100", "--height", "100", "--stick-width", "20", "--stick-height", "20"}, "40"},
		{"horizontal", []string{"--width", "200", "--height", "100", "--stick-width", "20", "--constraint", "horizontal"}, "90"},
		{"degenerate", []string{"--width", "10", "--height", "10", "--stick-width", "40", "--stick-height", "40"}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"radius"}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, out, "radius")
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestRadiusBadConstraint(t *testing.T) {
	_, err := execute(t, "radius", "--constraint", "diagonal")
	assert.ErrorContains(t, err, "motion constraint")
}
