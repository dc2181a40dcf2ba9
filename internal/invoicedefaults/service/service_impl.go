package service

import (
	"context"
	"fmt"

	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
	defaultsdomain "github.com/smallbiznis/fatura/internal/invoicedefaults/domain"
	"github.com/smallbiznis/fatura/internal/kvstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Store kvstore.Store
	Log   *zap.Logger
}

type Service struct {
	store kvstore.Store
	log   *zap.Logger
}

func NewService(p Params) defaultsdomain.Service {
	return &Service{
		store: p.Store,
		log:   p.Log.Named("invoicedefaults.service"),
	}
}

func (s *Service) Save(ctx context.Context, d invoicedomain.Draft) error {
	if err := kvstore.Save(ctx, s.store, defaultsdomain.StorageKey, defaultsdomain.FromDraft(d)); err != nil {
		s.log.Error("save defaults failed", zap.Error(err))
		return fmt.Errorf("save defaults: %w", err)
	}
	return nil
}

func (s *Service) Load(ctx context.Context) (*invoicedomain.DraftPatch, error) {
	var patch invoicedomain.DraftPatch
	found, err := kvstore.Load(ctx, s.store, defaultsdomain.StorageKey, &patch)
	if err != nil {
		s.log.Warn("load defaults failed", zap.Error(err))
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if !found {
		return nil, nil
	}
	restricted := defaultsdomain.Restrict(patch)
	return &restricted, nil
}
