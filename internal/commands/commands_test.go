package commands

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) (*Registry, *string, *[]string) {
	t.Helper()
	r := NewRegistry()
	var ran []string

	runFS := flag.NewFlagSet("run", flag.ContinueOnError)
	runFS.SetOutput(io.Discard)
	cfg := runFS.String("config", "default.yaml", "")
	r.Register("run", "start the playground", runFS, func() error {
		ran = append(ran, "run")
		return nil
	})

	writeFS := flag.NewFlagSet("write-config", flag.ContinueOnError)
	writeFS.SetOutput(io.Discard)
	r.Register("write-config", "write the default config", writeFS, func() error {
		ran = append(ran, "write-config")
		return nil
	})
	return r, cfg, &ran
}

func TestExecuteNamedCommand(t *testing.T) {
	r, cfg, ran := newRegistry(t)
	require.NoError(t, r.Execute([]string{"run", "-config", "x.yaml"}))
	assert.Equal(t, "x.yaml", *cfg)
	assert.Equal(t, []string{"run"}, *ran)
}

func TestExecuteFallsBackToDefault(t *testing.T) {
	r, cfg, ran := newRegistry(t)
	r.SetDefault("run")

	require.NoError(t, r.Execute(nil))
	require.NoError(t, r.Execute([]string{"-config", "y.yaml"}))
	assert.Equal(t, "y.yaml", *cfg)
	assert.Equal(t, []string{"run", "run"}, *ran)
}

func TestExecuteErrors(t *testing.T) {
	r, _, _ := newRegistry(t)
	assert.EqualError(t, r.Execute(nil), "missing subcommand")
	assert.EqualError(t, r.Execute([]string{"fly"}), "unknown command: fly")
	assert.Error(t, r.Execute([]string{"run", "-nope"}))
}

func TestHelpIsSorted(t *testing.T) {
	r, _, _ := newRegistry(t)
	assert.Equal(t, "  run            start the playground\n  write-config   write the default config\n", r.Help())
}
