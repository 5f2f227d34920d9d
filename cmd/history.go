package cmd

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rpgo/estate-calculator/internal/output"
	"github.com/rpgo/estate-calculator/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List saved runs, or print one run's full result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "Maximum number of runs to list (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	history, err := store.Open(flagDB)
	if err != nil {
		return err
	}
	defer func() { _ = history.Close() }()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		run, err := history.GetRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, run.Payload, "", "  "); err != nil {
			return fmt.Errorf("run %s has a corrupt payload: %w", run.ID, err)
		}
		buf.WriteByte('\n')
		_, err = buf.WriteTo(out)
		return err
	}

	runs, err := history.ListRuns(cmd.Context(), flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs.")
		return nil
	}
	fmt.Fprintf(out, "%-36s  %-20s  %-10s  %16s  %16s  %s\n", "ID", "Created", "Kind", "Gross Estate", "Total Tax", "Recommended")
	for _, r := range runs {
		fmt.Fprintf(out, "%-36s  %-20s  %-10s  %16s  %16s  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind,
			output.FormatCurrency(r.GrossEstate), output.FormatCurrency(r.TotalTax), r.Recommended)
	}
	return nil
}
