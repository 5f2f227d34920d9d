package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rpgo/estate-calculator/internal/server"
	"github.com/rpgo/estate-calculator/internal/store"
)

var (
	flagAddr    string
	flagHistory bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		var history *store.Store
		if flagHistory {
			history, err = store.Open(flagDB)
			if err != nil {
				return err
			}
			defer func() { _ = history.Close() }()
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.New(engine, history, logger).ListenAndServe(ctx, flagAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&flagHistory, "history", false, "Save every result in the history database and expose /v1/runs")
	rootCmd.AddCommand(serveCmd)
}
