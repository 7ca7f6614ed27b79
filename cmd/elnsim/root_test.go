package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const divider = `
sim: {dt: 0.1, steps: 5}
nodes: [top, mid]
components:
  - {name: V1, kind: voltage, a: top, value: 10}
  - {name: R1, kind: resistor, a: top, b: mid, value: 100}
  - {name: R2, kind: resistor, a: mid, value: 100}
watchdogs:
  - {name: mid, node: mid, nominal: 5}
`

func writeConfig(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "net.yaml")
	require.NoError(t, os.WriteFile(path, []byte(divider), 0o644))
	return path
}

func TestConfigPath(t *testing.T) {
	p, err := configPath([]string{"a.yaml"})
	require.NoError(t, err)
	assert.Equal(t, "a.yaml", p)

	t.Setenv(configEnv, "env.yaml")
	p, err = configPath(nil)
	require.NoError(t, err)
	assert.Equal(t, "env.yaml", p)

	t.Setenv(configEnv, "")
	_, err = configPath(nil)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", writeConfig(t)})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "2 个节点, 3 个元件, 1 个看门狗")
}

func TestCheckWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	path := filepath.Join(dir, "net.yaml")
	data := divider + "output:\n  sqlite: " + filepath.Join(out, "run.db") + "\n  json: " + filepath.Join(out, "run.json") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"check", path})
	require.NoError(t, rootCmd.Execute())
	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"run", "--steps", "3", writeConfig(t)})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "3 步, 触发 0 次")
}
