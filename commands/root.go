package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/penwyp/go-consensus-timeline/internal/application/viewer"
	"github.com/penwyp/go-consensus-timeline/internal/data/watcher"
	"github.com/penwyp/go-consensus-timeline/internal/util"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	configFile string
	debug      bool
	logFormat  string
	logFile    string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "go-consensus-timeline [flags]",
		Short: "Interactive timeline of consensus protocol events",
		Long: `go-consensus-timeline draws the messages exchanged between consensus nodes and
their state transitions on a time axis, one horizontal lane per node.

The default command opens an interactive terminal viewer. Hover an arrow or a
state change for details, drag across the canvas to zoom into a time window,
and use the number keys to jump between quick ranges.

Examples:
  go-consensus-timeline --file events.jsonl                  # Open the viewer
  go-consensus-timeline --file a.jsonl --file b.msgpack      # Merge several files
  go-consensus-timeline --file events.jsonl --range 30s      # Start on the last 30 seconds
  go-consensus-timeline --file events.jsonl --start 1679048123401 --end 1679048125401`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runViewer(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "",
		"Config file (default "+viewer.DefaultConfigDir+"/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, viewer.KeyDebug, false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, viewer.KeyLogFormat, "text",
		"Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, viewer.KeyLogFile, viewer.DefaultLogFile,
		"Log file path")

	rootCmd.Flags().StringSliceP(viewer.KeyFile, "f", nil,
		"Event file (.json, .jsonl, .msgpack); repeat to merge several files")
	rootCmd.Flags().String(viewer.KeyStart, "",
		"Initial window start in epoch milliseconds (requires --end)")
	rootCmd.Flags().String(viewer.KeyEnd, "",
		"Initial window end in epoch milliseconds (requires --start)")
	rootCmd.Flags().String(viewer.KeyRange, "all",
		"Initial quick range (all, 5s, 30s, 60s)")
	rootCmd.Flags().Bool(viewer.KeyNoWatch, false,
		"Do not reload when the event files change")
	rootCmd.Flags().Duration(viewer.KeyDebounce, watcher.DefaultDebounce,
		"Quiet period before reloading changed files")
	rootCmd.Flags().Int(viewer.KeyConcurrency, 0,
		"Files parsed in parallel (0 = number of CPUs)")

	rootCmd.AddCommand(
		newRenderCmd(opts),
		newInspectCmd(opts),
		newGenerateCmd(opts),
	)
	return rootCmd
}

// Execute runs the command line
func Execute() error {
	return NewRootCmd().Execute()
}

func runViewer(cmd *cobra.Command, opts *globalOptions) error {
	cfg, err := viewer.LoadConfig(opts.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// the terminal belongs to the viewer, so console logging is opt-in
	if err := initLogging(cfg.Debug, cfg.LogFormat, cfg.LogFile, cfg.Debug); err != nil {
		return err
	}
	defer util.CloseLogger()

	if !util.IsTerminal(os.Stdout) {
		return fmt.Errorf("the interactive viewer needs a terminal; use the render or inspect command instead")
	}

	orchestrator, err := viewer.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}

// initLogging installs the global logger writing to logFile and, when
// console is set, to stderr
func initLogging(debug bool, format, logFile string, console bool) error {
	level := "info"
	if debug {
		level = "debug"
	}

	logFormat, err := util.ParseLogFormat(format)
	if err != nil {
		return err
	}

	if logFile == "" {
		logFile = viewer.DefaultLogFile
	}
	logFile = viewer.ExpandPath(logFile)
	if err := viewer.EnsureDir(filepath.Dir(logFile)); err != nil {
		return err
	}

	return util.InitLogger(util.LoggerOptions{
		Level:   level,
		File:    logFile,
		Format:  logFormat,
		Console: console,
	})
}
