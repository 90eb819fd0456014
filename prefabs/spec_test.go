package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadTuningMatchesDefaults(t *testing.T) {
	// the shipped tuning sheet mirrors the built-in defaults so a missing
	// or partial file never changes behavior silently
	tuning, err := LoadTuning()
	require.NoError(t, err)
	assert.Equal(t, DefaultTuning(), tuning)
}

func TestPartialTuningKeepsDefaults(t *testing.T) {
	tuning := DefaultTuning()
	require.NoError(t, yaml.Unmarshal([]byte("swipe:\n  reach: 0.9\n"), &tuning))

	assert.Equal(t, 0.9, tuning.Swipe.Reach)
	assert.Equal(t, DefaultTuning().Swipe.Startup, tuning.Swipe.Startup, "untouched keys keep defaults")
}

func TestLoadScene(t *testing.T) {
	scene, err := LoadScene()
	require.NoError(t, err)

	assert.Equal(t, [3]float64{0, 0, -1.5}, scene.Player.Position)
	require.NotEmpty(t, scene.Props)

	byName := make(map[string]PropSpec)
	for _, p := range scene.Props {
		byName[p.Name] = p
	}

	floor, ok := byName["floor"]
	require.True(t, ok)
	assert.Equal(t, "static", floor.Kind)
	// base-origin convention: the slab's top face is base plus full height
	assert.Equal(t, 0.0, floor.Position[1]+2*floor.HalfExtents[1])

	can, ok := byName["soda_can"]
	require.True(t, ok)
	assert.Equal(t, "knockable", can.Kind)
	assert.Equal(t, "sphere", can.Shape)
	assert.Greater(t, can.Density, 0.0)

	post, ok := byName["scratch_post"]
	require.True(t, ok)
	assert.Equal(t, "scratchable", post.Kind)
	assert.Equal(t, 5.0, post.Increment)
}

func TestLoadScript(t *testing.T) {
	src, err := LoadScript("vacuum_poked.tengo")
	require.NoError(t, err)
	assert.NotEmpty(t, src)

	// the scripts/ prefix is accepted too
	same, err := LoadScript("scripts/vacuum_poked.tengo")
	require.NoError(t, err)
	assert.Equal(t, src, same)

	_, err = LoadScript("no_such.tengo")
	assert.Error(t, err)
}

func TestWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tuning.yaml"), []byte("world:\n  bound: 2\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "tuning.yaml", name)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for the written file")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case name := <-w.Events:
		t.Fatalf("unexpected event %q", name)
	case <-time.After(300 * time.Millisecond):
	}
}
