package viewer

import (
	"fmt"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/penwyp/go-consensus-timeline/internal/data/parser"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// LoadStats summarizes one pass over the event files
type LoadStats struct {
	Files    int
	Events   int
	Skipped  int
	Duration time.Duration
}

// DataLoader reads the configured files into the window state
type DataLoader struct {
	files  []string
	parser *parser.Parser
	state  *window.StateManager
}

// NewDataLoader creates a loader for the files of config
func NewDataLoader(config *Config, state *window.StateManager) *DataLoader {
	return &DataLoader{
		files:  config.Files,
		parser: parser.NewParser(config.Concurrency),
		state:  state,
	}
}

// Load parses every file and replaces the event stream. On error the
// previous stream is kept.
func (dl *DataLoader) Load() (LoadStats, error) {
	started := time.Now()

	events, skipped, err := dl.parser.LoadEvents(dl.files)
	if err != nil {
		return LoadStats{}, fmt.Errorf("failed to load events: %w", err)
	}
	dl.state.SetEvents(events, skipped)

	stats := LoadStats{
		Files:    len(dl.files),
		Events:   len(events),
		Skipped:  skipped,
		Duration: time.Since(started),
	}
	util.LogInfo("events loaded",
		util.Field{Key: "files", Value: stats.Files},
		util.Field{Key: "events", Value: stats.Events},
		util.Field{Key: "skipped", Value: stats.Skipped},
		util.Field{Key: "duration", Value: stats.Duration.String()})
	return stats, nil
}

// Invalidate drops cached parse results so the next Load rereads them
func (dl *DataLoader) Invalidate(paths ...string) {
	for _, p := range paths {
		dl.parser.Invalidate(p)
	}
}

// Files returns the watched event files
func (dl *DataLoader) Files() []string {
	return dl.files
}
