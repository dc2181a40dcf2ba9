package repository

import (
	"context"

	templatedomain "github.com/smallbiznis/fatura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/fatura/internal/kvstore"
)

type repo struct {
	store kvstore.Store
}

func Provide(store kvstore.Store) templatedomain.Repository {
	return &repo{store: store}
}

func (r *repo) List(ctx context.Context) ([]templatedomain.Template, error) {
	var items []templatedomain.Template
	if _, err := kvstore.Load(ctx, r.store, templatedomain.StorageKey, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []templatedomain.Template{}
	}
	return items, nil
}

func (r *repo) Replace(ctx context.Context, templates []templatedomain.Template) error {
	if templates == nil {
		templates = []templatedomain.Template{}
	}
	return kvstore.Save(ctx, r.store, templatedomain.StorageKey, templates)
}
