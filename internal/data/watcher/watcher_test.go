package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/core/model"
	"github.com/penwyp/go-consensus-timeline/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

func TestFileWatcherReportsAppend(t *testing.T) {
	dir := t.TempDir()
	path := fixtures.WriteJSONL(t, dir, "events.jsonl", fixtures.SmallCluster())

	fw, err := NewFileWatcher([]string{path}, 20*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	fixtures.AppendJSONL(t, path, []model.Event{fixtures.StateChange("N0", model.StateNewRound, model.StatePrevote, 1300)})

	select {
	case change := <-fw.Events():
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, change.Path)
		assert.Contains(t, change.Operation, "WRITE")
	case <-time.After(waitFor):
		t.Fatal("no change reported")
	}
}

func TestFileWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := fixtures.WriteJSONL(t, dir, "events.jsonl", nil)

	fw, err := NewFileWatcher([]string{path}, 200*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	for i := 0; i < 5; i++ {
		fixtures.AppendJSONL(t, path, fixtures.Exchange("N0", "N1", model.MessageVote, 1, 0, int64(i*10), int64(i*10+1)))
	}

	select {
	case <-fw.Events():
	case <-time.After(waitFor):
		t.Fatal("no change reported")
	}

	select {
	case change := <-fw.Events():
		t.Fatalf("burst was not coalesced, got extra %+v", change)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestFileWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := fixtures.WriteJSONL(t, dir, "events.jsonl", nil)

	fw, err := NewFileWatcher([]string{path}, 20*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.jsonl"), []byte("{}\n"), 0644))

	select {
	case change := <-fw.Events():
		t.Fatalf("unexpected change %+v", change)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFileWatcherTracksReplacement(t *testing.T) {
	dir := t.TempDir()
	path := fixtures.WriteJSONL(t, dir, "events.jsonl", nil)

	fw, err := NewFileWatcher([]string{path}, 20*time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	tmp := fixtures.WriteJSONL(t, dir, "events.tmp", fixtures.SmallCluster())
	require.NoError(t, os.Rename(tmp, path))

	select {
	case change := <-fw.Events():
		assert.Equal(t, "events.jsonl", filepath.Base(change.Path))
	case <-time.After(waitFor):
		t.Fatal("replacement not reported")
	}
}

func TestFileWatcherClose(t *testing.T) {
	path := fixtures.WriteJSONL(t, t.TempDir(), "events.jsonl", nil)

	fw, err := NewFileWatcher([]string{path}, 0)
	require.NoError(t, err)

	require.NoError(t, fw.Close())
	_, ok := <-fw.Events()
	assert.False(t, ok)
	assert.NoError(t, fw.Close())
}

func TestNewFileWatcherMissingDirectory(t *testing.T) {
	_, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "nope", "events.jsonl")}, 0)
	assert.Error(t, err)
}
