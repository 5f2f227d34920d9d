package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/estate-calculator/internal/calculation"
	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/logging"
)

var (
	flagLogLevel  string
	flagLogFormat string
	flagRules     string
	flagDB        string

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "estatecalc",
	Short: "Estate tax projection calculator",
	Long: "Project an estate forward to the expected year of death and estimate federal and state\n" +
		"estate taxes, settlement liquidity, heir income tax and the effect of planning strategies.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(flagLogLevel, flagLogFormat)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultDB := filepath.Join(homeDir, ".estatecalc", "history.db")

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", logging.FormatConsole, "Log format (console or json)")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "Tax rules file (YAML, TOML or JSON) merged over the built-in tables")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", defaultDB, "Run history database")
}

// newEngine builds a calculation engine from the effective tax rules
func newEngine() (*calculation.CalculationEngine, error) {
	rules, err := config.LoadRules(flagRules)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngineWithRules(rules)
	engine.SetLogger(logger.Sugar())
	return engine, nil
}
