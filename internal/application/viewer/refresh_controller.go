package viewer

import (
	"sync"

	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// RefreshController serializes reloads triggered by file changes
type RefreshController struct {
	loader *DataLoader

	mu        sync.Mutex
	refreshes int
	lastStats LoadStats
}

// NewRefreshController creates a controller around loader
func NewRefreshController(loader *DataLoader) *RefreshController {
	return &RefreshController{loader: loader}
}

// Refresh rereads the changed files and reloads the stream. Concurrent
// calls run one after the other.
func (rc *RefreshController) Refresh(changed ...string) (LoadStats, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.loader.Invalidate(changed...)
	stats, err := rc.loader.Load()
	if err != nil {
		util.LogWarn("reload failed, keeping previous events", util.Field{Key: "error", Value: err.Error()})
		return rc.lastStats, err
	}

	rc.refreshes++
	rc.lastStats = stats
	util.LogDebugf("reload #%d after change to %v", rc.refreshes, changed)
	return stats, nil
}

// Refreshes returns the number of successful reloads
func (rc *RefreshController) Refreshes() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.refreshes
}
