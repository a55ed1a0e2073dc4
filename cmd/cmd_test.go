package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"schrodinger/scenario"
)

const smallConfig = `
[grid]
length = 20
points = 201

[packet]
center = 5
width = 1

[well]
start = 10
width = 1
height = 5

[grid2d]
length = 4
points = 41

[slit]
barrier_x = 2
thickness = 0.2
width = 0.4
separation = 1.2
center = 2
screen_x = 3

[run2d]
steps = 5
workers = 1

[sweep]
energy_min = 4
energy_max = 8
count = 2
max_steps = 2000
workers = 2

[log]
level = error
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte(smallConfig), 0o644))

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", path}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestTunnelYAML(t *testing.T) {
	out, err := run(t, "tunnel", "--yaml")
	require.NoError(t, err)

	var points []scenario.TransmissionPoint
	require.NoError(t, yaml.Unmarshal([]byte(out), &points))
	require.Len(t, points, 2)
	assert.Equal(t, 4.0, points[0].Energy)
	assert.Equal(t, 8.0, points[1].Energy)
	assert.Less(t, points[0].Transmission, points[1].Transmission)
}

func TestTunnelFlagsOverride(t *testing.T) {
	out, err := run(t, "tunnel", "--count", "1", "--emin", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "6.0000")
}

func TestTunnelRejectsBadFlags(t *testing.T) {
	_, err := run(t, "tunnel", "--count", "0")
	assert.Error(t, err)
}

func TestSlitTable(t *testing.T) {
	out, err := run(t, "slit")
	require.NoError(t, err)
	assert.Contains(t, out, "column=30")
	assert.Contains(t, out, "steps=5")
}

func TestMissingConfig(t *testing.T) {
	root := NewRootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.ini"), "slit"})
	root.SetOut(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
