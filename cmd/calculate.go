package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/output"
	"github.com/rpgo/estate-calculator/internal/store"
)

var (
	flagFormat    string
	flagOutputDir string
	flagSave      bool
)

var calculateCmd = &cobra.Command{
	Use:   "calculate <config-file>",
	Short: "Run the baseline and every strategy scenario in a configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalculate,
}

func init() {
	calculateCmd.Flags().StringVarP(&flagFormat, "format", "f", "console",
		"Output format (console, console-lite, json, csv, detailed-csv, html, or all with --output-dir)")
	calculateCmd.Flags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Write timestamped report files to this directory instead of stdout")
	calculateCmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
	rootCmd.AddCommand(calculateCmd)
}

func runCalculate(cmd *cobra.Command, args []string) error {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	logger.Info("configuration loaded", zap.String("file", args[0]), zap.Int("scenarios", len(cfg.Scenarios)))

	engine, err := newEngine()
	if err != nil {
		return err
	}
	results, err := engine.RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("calculation failed: %w", err)
	}

	if flagSave {
		history, err := store.Open(flagDB)
		if err != nil {
			return err
		}
		defer func() { _ = history.Close() }()
		run, err := history.SaveComparison(cmd.Context(), results)
		if err != nil {
			return err
		}
		logger.Info("run saved", zap.String("id", run.ID), zap.String("db", flagDB))
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s\n", run.ID)
	}

	if flagOutputDir != "" {
		paths, err := output.GenerateReport(results, flagFormat, flagOutputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", p)
		}
		return nil
	}

	f, err := output.LookupFormatter(flagFormat)
	if err != nil {
		return err
	}
	return output.WriteTo(cmd.OutOrStdout(), f, results)
}
