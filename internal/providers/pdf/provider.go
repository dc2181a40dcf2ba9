package pdf

import (
	"context"

	"github.com/smallbiznis/fatura/internal/invoice/render"
	"go.uber.org/fx"
)

var Module = fx.Module("pdf.provider",
	fx.Provide(New),
)

// Provider rasterizes a laid out invoice into PDF bytes.
type Provider interface {
	GenerateInvoice(ctx context.Context, doc render.Document) ([]byte, error)
}

// NoOpProvider returns an empty document. Useful where exports are disabled.
type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(ctx context.Context, doc render.Document) ([]byte, error) {
	return []byte{}, nil
}
