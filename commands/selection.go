package commands

import (
	"github.com/penwyp/go-consensus-timeline/internal/application/viewer"
	"github.com/penwyp/go-consensus-timeline/internal/core/window"
	"github.com/spf13/cobra"
)

// selectionFlags pick the event files and the time window for the batch
// commands
type selectionFlags struct {
	files []string
	start string
	end   string
	rng   string
}

func (s *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&s.files, viewer.KeyFile, "f", nil,
		"Event file (.json, .jsonl, .msgpack); repeat to merge several files")
	cmd.Flags().StringVar(&s.start, viewer.KeyStart, "",
		"Window start in epoch milliseconds (requires --end)")
	cmd.Flags().StringVar(&s.end, viewer.KeyEnd, "",
		"Window end in epoch milliseconds (requires --start)")
	cmd.Flags().StringVar(&s.rng, viewer.KeyRange, "all",
		"Quick range (all, 5s, 30s, 60s)")
}

// load reads the files and applies the window, exactly as the viewer does
// on startup
func (s *selectionFlags) load() (*window.StateManager, error) {
	cfg := &viewer.Config{
		Files: s.files,
		Start: s.start,
		End:   s.end,
		Range: s.rng,
	}
	o, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return nil, err
	}
	if err := o.Prepare(); err != nil {
		return nil, err
	}
	return o.State(), nil
}
