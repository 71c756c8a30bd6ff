//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShowcaseShowsProducts(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.True(t, tf.SeePlain("Shard Engine"), "Centre card should show the first product")
	require.True(t, tf.SeePlain("Realtime sync core"))
	require.True(t, tf.SeePlain("Press ? for help"))

	require.NoError(t, tf.SendKeys(KeyNext))
	err := tf.WaitForE(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), "Visual editor")
	}, 2*time.Second, "Next slide should bring the second product to the centre")
	require.NoError(t, err)
}

func TestListPages(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.NoError(t, tf.Tab(2))
	require.True(t, tf.SeePlain("All Products"), "Products page shows the category bar")
	require.True(t, tf.SeePlain("Shard Cloud"))

	require.NoError(t, tf.Tab(3))
	require.True(t, tf.SeePlain("All Projects"), "Projects page shows the category bar")
	require.True(t, tf.SeePlain("Gamma"))
	require.True(t, tf.SeePlain("[deprecated]"), "Deprecated projects are shown by default")
}

func TestSearchFiltersProjects(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.NoError(t, tf.Tab(3))
	require.True(t, tf.SeePlain("Beta"))

	require.NoError(t, tf.Search("zzz"))
	require.True(t, tf.SeePlain("No projects match your current filters."))
	require.True(t, tf.SeePlain("Press x to clear filters"))

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.SendKeys("x"))
	require.True(t, tf.SeePlain("3 shown"))
}

func TestHelpPopup(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.NoError(t, tf.SendKeys(KeyHelp))
	require.True(t, tf.SeePlain("shardview Help"))
	require.True(t, tf.SeePlain("Previous/next slide"))

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.Quit())
}

func TestMissingSourceDegrades(t *testing.T) {
	t.Parallel()
	tf := startReady(t, "--projects", "data/missing.json")

	require.NoError(t, tf.Tab(3))
	require.True(t, tf.SeePlain("Could not load projects: file not found."))
	require.True(t, tf.SeePlain("No projects match your current filters."))
}

func TestDetailPopup(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.NoError(t, tf.Tab(2))
	require.True(t, tf.SeePlain("Shard Studio"))

	require.NoError(t, tf.Down())
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlain("Key Features"), "Detail popup renders the product markdown")
	require.True(t, tf.SeePlain("themes"))

	require.NoError(t, tf.SendKeys(KeyEsc))
	require.NoError(t, tf.Quit())
}

func TestReloadShowsStatus(t *testing.T) {
	t.Parallel()
	tf := startReady(t)

	require.NoError(t, tf.SendKeys("r"))
	require.True(t, tf.WaitForStatusMessage("Reloading catalog...", 2*time.Second))
}

func TestWatchPicksUpEditedSource(t *testing.T) {
	t.Parallel()
	tf := startReady(t, "--watch")

	require.NoError(t, tf.Tab(3))
	require.True(t, tf.SeePlain("Gamma"))

	edited := strings.Replace(projectsJSON, `"title": "Beta"`, `"title": "Delta"`, 1)
	require.NoError(t, tf.WriteSource("projects.json", edited))
	require.True(t, tf.OutputContainsPlain("Delta", 5*time.Second), "Watcher should reload the edited file")
}
