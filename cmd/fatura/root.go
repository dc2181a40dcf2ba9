package main

import (
	"fmt"

	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/observability/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fatura",
		Short: "Invoice authoring service",
		Long: `fatura keeps a single working invoice draft, computes its totals, and renders it
as an HTML preview, a print document, or a PDF.

Run "fatura serve" for the HTTP API, or use the totals and render commands on a
draft stored as JSON.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("log-level", "warn", "log level for one-shot commands")

	root.AddCommand(
		newServeCmd(),
		newTotalsCmd(),
		newRenderCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

// cliLogger logs to stderr so command output stays clean on stdout.
func cliLogger(cmd *cobra.Command, cfg config.Config) (*zap.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return logger.New(nil, logger.Config{
		ServiceName: cfg.AppName,
		Environment: cfg.Environment,
		Version:     version,
		Level:       level,
		Format:      "console",
		Output:      "stderr",
	})
}
