package invoicedefaults

import (
	"github.com/smallbiznis/fatura/internal/invoicedefaults/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoicedefaults.service",
	fx.Provide(service.NewService),
)
