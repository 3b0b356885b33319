package viewer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/penwyp/go-consensus-timeline/internal/data/watcher"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/canvas"
	"github.com/penwyp/go-consensus-timeline/internal/presentation/tui"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// Orchestrator coordinates loading, file watching and the terminal UI
type Orchestrator struct {
	config *Config

	state       *window.StateManager
	loader      *DataLoader
	refreshCtrl *RefreshController

	watcher *watcher.FileWatcher
}

// NewOrchestrator validates config and creates the components
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	state := window.NewStateManager()
	loader := NewDataLoader(config, state)

	return &Orchestrator{
		config:      config,
		state:       state,
		loader:      loader,
		refreshCtrl: NewRefreshController(loader),
	}, nil
}

// State returns the window state shared with the UI
func (o *Orchestrator) State() *window.StateManager {
	return o.state
}

// Prepare loads the files and selects the initial window
func (o *Orchestrator) Prepare() error {
	if _, err := o.loader.Load(); err != nil {
		return err
	}

	if o.config.Start != "" {
		return o.state.SetCustomRange(o.config.Start, o.config.End)
	}
	q, err := window.ParseQuickRange(o.config.Range)
	if err != nil {
		return err
	}
	o.state.ApplyQuickRange(q)
	return nil
}

// Run shows the timeline until the user quits or ctx is canceled
func (o *Orchestrator) Run(ctx context.Context) error {
	defer o.Close()

	if err := o.Prepare(); err != nil {
		return err
	}

	model := tui.New(o.state, o.source(), canvas.CellFactory())
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)

	if o.config.Watch {
		if err := o.startWatcher(); err != nil {
			return err
		}
		go o.watchLoop(ctx, o.watcher.Events(), program.Send)
	}

	util.LogInfo("viewer started", util.Field{Key: "files", Value: strings.Join(o.loader.Files(), ",")})
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}

func (o *Orchestrator) startWatcher() error {
	fw, err := watcher.NewFileWatcher(o.loader.Files(), o.config.Debounce)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	o.watcher = fw
	return nil
}

// watchLoop reloads on every file change and posts the outcome to notify
func (o *Orchestrator) watchLoop(ctx context.Context, changes <-chan watcher.Change, notify func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			util.LogDebug("event file changed",
				util.Field{Key: "path", Value: change.Path},
				util.Field{Key: "op", Value: change.Operation})
			_, err := o.refreshCtrl.Refresh(change.Path)
			notify(tui.DataReloadedMsg{Err: err, Reloads: o.refreshCtrl.Refreshes()})
		}
	}
}

// Close stops the file watcher
func (o *Orchestrator) Close() {
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			util.LogWarn("failed to close file watcher", util.Field{Key: "error", Value: err.Error()})
		}
		o.watcher = nil
	}
}

// source is the header label: the file name, or a count for several files
func (o *Orchestrator) source() string {
	files := o.loader.Files()
	if len(files) == 1 {
		return filepath.Base(files[0])
	}
	return fmt.Sprintf("%d files", len(files))
}
