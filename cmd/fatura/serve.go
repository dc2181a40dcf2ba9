package main

import (
	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/history"
	"github.com/smallbiznis/fatura/internal/i18n"
	"github.com/smallbiznis/fatura/internal/idgen"
	"github.com/smallbiznis/fatura/internal/invoice/export"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	"github.com/smallbiznis/fatura/internal/invoicedefaults"
	"github.com/smallbiznis/fatura/internal/invoicetemplate"
	"github.com/smallbiznis/fatura/internal/kvstore"
	"github.com/smallbiznis/fatura/internal/observability"
	"github.com/smallbiznis/fatura/internal/providers/pdf"
	"github.com/smallbiznis/fatura/internal/server"
	"github.com/smallbiznis/fatura/internal/workspace"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			newApp().Run()
		},
	}
}

func newApp() *fx.App {
	return fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		clock.Module,
		idgen.Module,
		kvstore.Module,

		// Invoicing
		i18n.Module,
		history.Module,
		invoicedefaults.Module,
		invoicetemplate.Module,
		render.Module,
		pdf.Module,
		export.Module,
		workspace.Module,

		server.Module,
	)
}
