package commands

import (
	"fmt"

	"github.com/penwyp/go-consensus-timeline/internal/data/generator"
	"github.com/penwyp/go-consensus-timeline/internal/data/parser"
	"github.com/penwyp/go-consensus-timeline/internal/util"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		out string
		cfg = generator.DefaultConfig()
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic consensus event stream",
		Long: `Generates message exchanges between nodes N0..N(n-1) with random send
intervals and delivery delays, plus occasional state transitions. The output
encoding follows the file extension (.json, .jsonl, .msgpack).`,
		Example: `  go-consensus-timeline generate --out events.jsonl
  go-consensus-timeline generate --out events.msgpack --nodes 7 --pairs 500 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogging(opts.debug, opts.logFormat, opts.logFile, opts.debug); err != nil {
				return err
			}
			defer util.CloseLogger()

			events, err := generator.Generate(cfg)
			if err != nil {
				return err
			}
			if err := parser.WriteFile(out, events); err != nil {
				return err
			}

			util.LogInfo("generated events",
				util.Field{Key: "path", Value: out},
				util.Field{Key: "events", Value: len(events)})
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d events to %s\n", len(events), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (.json, .jsonl, .msgpack)")
	cmd.Flags().IntVar(&cfg.Nodes, "nodes", cfg.Nodes, "Number of nodes")
	cmd.Flags().IntVar(&cfg.Pairs, "pairs", cfg.Pairs, "Number of send/receive pairs")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 0, "Random seed (0 = time based)")
	cmd.Flags().Int64Var(&cfg.StartTime, "start-time", cfg.StartTime, "Timestamp of the first send in epoch milliseconds")
	cmd.Flags().Float64Var(&cfg.StateChangeProbability, "state-change-probability", cfg.StateChangeProbability,
		"Chance of a state change after each pair")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
