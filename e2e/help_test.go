//go:build e2e && unix

package main

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	// Ensure the test binary exists (it should be built by TestMain)
	if _, err := os.Stat(binPath); os.IsNotExist(err) {
		t.Skip("Test binary not found - TestMain may not have run yet")
	}

	// Not through the PTY since it exits immediately
	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err, "Help command should run without error")

	output := string(out)
	require.Contains(t, output, "Usage")
	for _, flag := range []string{"--config", "--products", "--projects", "--watch", "--verbose", "--log-file"} {
		require.Contains(t, output, flag)
	}
	require.True(t, strings.Contains(output, "filters") && strings.Contains(output, "version"),
		"Help should list the subcommands")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(out), "shardview "))
}

func TestFiltersCommand(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	out, err := tf.RunCommand("filters")
	require.NoError(t, err, out)
	require.Contains(t, out, "products:")
	require.Contains(t, out, "Engine (engine)")
	require.Contains(t, out, "Cloud (cloud)")
	require.Contains(t, out, "projects:")
	require.Contains(t, out, "rust (rust)")
	require.Contains(t, out, "tui (tui)")
}

func TestFiltersCommandMissingSource(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)

	out, err := tf.RunCommand("filters", "--projects", "data/missing.json")
	require.NoError(t, err, "A missing source degrades instead of failing")
	require.Contains(t, out, "Engine (engine)")
	require.Contains(t, out, "Could not load projects")
}
