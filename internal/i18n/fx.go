package i18n

import (
	"github.com/smallbiznis/fatura/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("i18n",
	fx.Provide(func(holder *config.LabelsHolder) *Catalog {
		return NewCatalog(holder)
	}),
)
