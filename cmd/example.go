package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/estate-calculator/internal/config"
	"github.com/rpgo/estate-calculator/internal/output"
)

var flagExampleOut string

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Write an example configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.NewInputParser().CreateExampleConfiguration()
		if err := output.SaveConfiguration(cfg, flagExampleOut); err != nil {
			return fmt.Errorf("failed to write example configuration: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", flagExampleOut)
		return nil
	},
}

func init() {
	exampleCmd.Flags().StringVar(&flagExampleOut, "out", "example_config.yaml", "Destination file")
	rootCmd.AddCommand(exampleCmd)
}
