package commands

import (
	"github.com/penwyp/go-consensus-timeline/internal/presentation/formatter"
	"github.com/penwyp/go-consensus-timeline/internal/util"
	"github.com/spf13/cobra"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var (
		sel    selectionFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List the arrows and state changes of a time window",
		Long: `Pairs every send with its receive and lists the resulting message arrows and
state changes of the selected window, together with the number of sends that
found no receive.`,
		Example: `  go-consensus-timeline inspect --file events.jsonl
  go-consensus-timeline inspect --file events.jsonl --range 5s --output csv
  go-consensus-timeline inspect --file events.jsonl --output summary`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter.New(output, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if err := initLogging(opts.debug, opts.logFormat, opts.logFile, opts.debug); err != nil {
				return err
			}
			defer util.CloseLogger()

			state, err := sel.load()
			if err != nil {
				return err
			}

			w := state.CurrentWindow()
			report := formatter.NewReport(state.Filtered(), w.Start, w.End, state.Skipped())
			return f.Format(report)
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", formatter.OutputTable,
		"Output format (table, json, csv, summary)")
	return cmd
}
