package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/idgen"
	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
	templatedomain "github.com/smallbiznis/fatura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/fatura/internal/invoicetemplate/repository"
	"github.com/smallbiznis/fatura/internal/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, store kvstore.Store) templatedomain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	return NewService(Params{
		Log:  zap.NewNop(),
		IDs:  idgen.New(node, clk),
		Repo: repository.Provide(store),
	})
}

func templateSource() invoicedomain.Draft {
	return invoicedomain.Draft{
		ID:            "100",
		InvoiceNumber: "T-1",
		Date:          "2020-01-01",
		DueDate:       "2020-01-31",
		CompanyName:   "Template Co",
		ClientName:    "Repeat Client",
		Items:         []invoicedomain.LineItem{{Description: "Hosting", Quantity: 1, Rate: 50}},
		Tax:           20,
		Currency:      "GBP",
		Theme:         "elegant",
	}
}

func currentDraft() invoicedomain.Draft {
	return invoicedomain.Draft{
		ID:            "555",
		InvoiceNumber: "7",
		Date:          "2024-03-01",
		DueDate:       "2024-03-31",
		Notes:         "keep me",
		Items:         []invoicedomain.LineItem{{Quantity: 1}},
		Currency:      "TRY",
	}
}

func TestSaveRejectsBlankName(t *testing.T) {
	store := kvstore.NewMemoryStore()
	svc := newTestService(t, store)

	_, err := svc.Save(context.Background(), "   ", templateSource())
	assert.ErrorIs(t, err, templatedomain.ErrInvalidName)

	_, getErr := store.Get(context.Background(), templatedomain.StorageKey)
	assert.ErrorIs(t, getErr, kvstore.ErrNotFound)
}

func TestSaveAppendsTrimmedName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kvstore.NewMemoryStore())

	first, err := svc.Save(ctx, "  Monthly  ", templateSource())
	require.NoError(t, err)
	second, err := svc.Save(ctx, "Yearly", templateSource())
	require.NoError(t, err)

	assert.Equal(t, "Monthly", first.Name)
	assert.NotEqual(t, first.ID, second.ID)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Monthly", items[0].Name)
	assert.Equal(t, "Yearly", items[1].Name)
}

func TestApplyPreservesIdentityFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kvstore.NewMemoryStore())

	tmpl, err := svc.Save(ctx, "Monthly", templateSource())
	require.NoError(t, err)

	current := currentDraft()
	merged, applied, err := svc.Apply(ctx, tmpl.ID, current)
	require.NoError(t, err)
	require.True(t, applied)

	assert.Equal(t, current.ID, merged.ID)
	assert.Equal(t, current.InvoiceNumber, merged.InvoiceNumber)
	assert.Equal(t, current.Date, merged.Date)
	assert.Equal(t, current.DueDate, merged.DueDate)

	assert.Equal(t, "Template Co", merged.CompanyName)
	assert.Equal(t, "Repeat Client", merged.ClientName)
	assert.Equal(t, "GBP", merged.Currency)
	assert.Equal(t, []invoicedomain.LineItem{{Description: "Hosting", Quantity: 1, Rate: 50}}, merged.Items)
}

func TestApplyUnknownIDIsNoOp(t *testing.T) {
	svc := newTestService(t, kvstore.NewMemoryStore())
	current := currentDraft()

	got, applied, err := svc.Apply(context.Background(), "missing", current)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, current, got)
}

func TestApplyLegacyTemplateOnlyOverridesPresentKeys(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	legacy := `[{"id":"old","name":"Legacy","invoice":{"companyName":"Old Co","shipping":12}}]`
	require.NoError(t, store.Set(ctx, templatedomain.StorageKey, []byte(legacy)))

	svc := newTestService(t, store)
	current := currentDraft()
	merged, applied, err := svc.Apply(ctx, "old", current)
	require.NoError(t, err)
	require.True(t, applied)

	assert.Equal(t, "Old Co", merged.CompanyName)
	assert.Equal(t, "keep me", merged.Notes)
	assert.Equal(t, current.Items, merged.Items)
	assert.Nil(t, merged.Shipping)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, kvstore.NewMemoryStore())

	keep, err := svc.Save(ctx, "Keep", templateSource())
	require.NoError(t, err)
	drop, err := svc.Save(ctx, "Drop", templateSource())
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, deleted)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ID)
}

func TestCorruptListSurfacesError(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(ctx, templatedomain.StorageKey, []byte("{not json")))

	svc := newTestService(t, store)
	_, err := svc.List(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, invoicedomain.ErrCorruptRecord))

	_, err = svc.Save(ctx, "New", templateSource())
	require.Error(t, err)

	raw, getErr := store.Get(ctx, templatedomain.StorageKey)
	require.NoError(t, getErr)
	assert.Equal(t, "{not json", string(raw))
}
