package viewer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/penwyp/go-consensus-timeline/internal/data/parser"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/tui"
	"github.com/penwyp/go-consensus-timeline/internal/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 3 * time.Second

func newOrchestrator(t *testing.T, mutate func(*Config)) (*Orchestrator, string) {
	t.Helper()
	path := fixtures.WriteJSONL(t, t.TempDir(), "events.jsonl", fixtures.Window(0, 60000, 1000))
	cfg := &Config{Files: []string{path}, Watch: true, Debounce: 20 * time.Millisecond}
	if mutate != nil {
		mutate(cfg)
	}
	o, err := NewOrchestrator(cfg)
	require.NoError(t, err)
	t.Cleanup(o.Close)
	return o, path
}

func TestNewOrchestratorRejectsInvalidConfig(t *testing.T) {
	_, err := NewOrchestrator(&Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestPrepareInitialWindow(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantMode  window.WindowMode
		wantStart int64
		wantEnd   int64
	}{
		{"all", nil, window.ModeQuick, 0, 59010},
		{"last 5s", func(c *Config) { c.Range = "5s" }, window.ModeQuick, 54010, 59010},
		{"custom", func(c *Config) { c.Start, c.End = "100", "2000" }, window.ModeCustom, 100, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newOrchestrator(t, tt.mutate)
			require.NoError(t, o.Prepare())

			w := o.State().CurrentWindow()
			assert.Equal(t, tt.wantMode, w.Mode)
			assert.Equal(t, tt.wantStart, w.Start)
			assert.Equal(t, tt.wantEnd, w.End)

			_, total := o.State().Counts()
			assert.Equal(t, 120, total)
		})
	}
}

func TestPrepareErrors(t *testing.T) {
	o, _ := newOrchestrator(t, func(c *Config) { c.Start, c.End = "x", "10" })
	assert.ErrorIs(t, o.Prepare(), window.ErrInvalidRange)

	o, _ = newOrchestrator(t, func(c *Config) { c.Files = []string{filepath.Join(t.TempDir(), "gone.jsonl")} })
	assert.Error(t, o.Prepare())

	o, _ = newOrchestrator(t, func(c *Config) { c.Files = []string{filepath.Join(t.TempDir(), "events.csv")} })
	assert.ErrorIs(t, o.Prepare(), parser.ErrUnknownFormat)
}

func TestPrepareMergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := fixtures.WriteJSONL(t, dir, "a.jsonl", fixtures.SmallCluster())
	b := fixtures.WriteJSONL(t, dir, "b.jsonl", fixtures.Window(2000, 1000, 100))

	o, err := NewOrchestrator(&Config{Files: []string{a, b}})
	require.NoError(t, err)
	require.NoError(t, o.Prepare())

	_, total := o.State().Counts()
	assert.Equal(t, 5+20, total)
	assert.Equal(t, "2 files", o.source())
}

func TestWatchLoopReloads(t *testing.T) {
	o, path := newOrchestrator(t, nil)
	require.NoError(t, o.Prepare())
	require.NoError(t, o.startWatcher())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msgs := make(chan tea.Msg, 8)
	done := make(chan struct{})
	go func() {
		o.watchLoop(ctx, o.watcher.Events(), func(msg tea.Msg) { msgs <- msg })
		close(done)
	}()

	fixtures.AppendJSONL(t, path, fixtures.Exchange("N0", "N1", "Vote", 12, 0, 61000, 61010))

	select {
	case msg := <-msgs:
		reloaded, ok := msg.(tui.DataReloadedMsg)
		require.True(t, ok)
		assert.NoError(t, reloaded.Err)
		assert.GreaterOrEqual(t, reloaded.Reloads, 1)
	case <-time.After(waitFor):
		t.Fatal("no reload")
	}

	_, total := o.State().Counts()
	assert.Equal(t, 122, total)
	assert.Equal(t, int64(61010), o.State().CurrentWindow().End)
	assert.GreaterOrEqual(t, o.refreshCtrl.Refreshes(), 1)

	cancel()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("watch loop did not stop")
	}
}

func TestRefreshKeepsEventsOnError(t *testing.T) {
	o, path := newOrchestrator(t, nil)
	require.NoError(t, o.Prepare())

	o.loader.files = []string{path, filepath.Join(filepath.Dir(path), "missing.jsonl")}
	_, err := o.refreshCtrl.Refresh(path)
	require.Error(t, err)

	_, total := o.State().Counts()
	assert.Equal(t, 120, total)
	assert.Equal(t, 0, o.refreshCtrl.Refreshes())
}
