package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/smallbiznis/fatura/internal/idgen"
	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
	templatedomain "github.com/smallbiznis/fatura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/fatura/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log     *zap.Logger
	IDs     idgen.Generator
	Repo    templatedomain.Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	log     *zap.Logger
	ids     idgen.Generator
	repo    templatedomain.Repository
	metrics *metrics.Metrics

	// serializes read-modify-write of the stored list
	mu sync.Mutex
}

func NewService(p Params) templatedomain.Service {
	return &Service{
		log:     p.Log.Named("invoicetemplate.service"),
		ids:     p.IDs,
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) List(ctx context.Context) ([]templatedomain.Template, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("load templates failed", zap.Error(err))
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return items, nil
}

func (s *Service) Save(ctx context.Context, name string, d invoicedomain.Draft) (*templatedomain.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, templatedomain.ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	tmpl := templatedomain.Template{
		ID:      s.ids.Token(),
		Name:    name,
		Invoice: invoicedomain.PatchFromDraft(d),
	}
	if err := s.repo.Replace(ctx, append(items, tmpl)); err != nil {
		s.log.Error("save template failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("save template: %w", err)
	}

	s.metrics.RecordTemplateOp(ctx, "save")
	return &tmpl, nil
}

func (s *Service) Apply(ctx context.Context, id string, current invoicedomain.Draft) (invoicedomain.Draft, bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return current, false, err
	}

	for _, tmpl := range items {
		if tmpl.ID != id {
			continue
		}
		merged := invoicedomain.Merge(current, tmpl.Invoice)
		merged.ID = current.ID
		merged.InvoiceNumber = current.InvoiceNumber
		merged.Date = current.Date
		merged.DueDate = current.DueDate

		s.metrics.RecordTemplateOp(ctx, "apply")
		return merged, true, nil
	}

	s.log.Debug("template not found", zap.String("template_id", id))
	return current, false, nil
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]templatedomain.Template, 0, len(items))
	for _, tmpl := range items {
		if tmpl.ID != id {
			kept = append(kept, tmpl)
		}
	}
	if err := s.repo.Replace(ctx, kept); err != nil {
		s.log.Error("delete template failed", zap.String("template_id", id), zap.Error(err))
		return false, fmt.Errorf("delete template: %w", err)
	}

	deleted := len(kept) < len(items)
	if deleted {
		s.metrics.RecordTemplateOp(ctx, "delete")
	}
	return deleted, nil
}
