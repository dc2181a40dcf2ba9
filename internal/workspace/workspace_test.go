package workspace

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/history"
	"github.com/smallbiznis/fatura/internal/i18n"
	"github.com/smallbiznis/fatura/internal/idgen"
	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/draft"
	"github.com/smallbiznis/fatura/internal/invoice/export"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	defaultsdomain "github.com/smallbiznis/fatura/internal/invoicedefaults/domain"
	defaultsservice "github.com/smallbiznis/fatura/internal/invoicedefaults/service"
	templaterepo "github.com/smallbiznis/fatura/internal/invoicetemplate/repository"
	templateservice "github.com/smallbiznis/fatura/internal/invoicetemplate/service"
	"github.com/smallbiznis/fatura/internal/kvstore"
	"github.com/smallbiznis/fatura/internal/providers/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	ws       *Workspace
	store    *kvstore.MemoryStore
	clock    *clock.FakeClock
	defaults defaultsdomain.Service
	dir      string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	ids := idgen.New(node, clk)
	store := kvstore.NewMemoryStore()
	log := zap.NewNop()
	dir := t.TempDir()

	cfg := config.Config{
		ExportDir: dir,
		Invoice: config.InvoiceConfig{
			DefaultLanguage:       "tr",
			DefaultThemeMode:      "dark",
			DefaultCurrency:       "TRY",
			DefaultTheme:          "classic",
			DueDays:               30,
			InvoiceNumberTemplate: "{SEQ}",
		},
	}
	defaults := defaultsservice.NewService(defaultsservice.Params{Store: store, Log: log})
	templates := templateservice.NewService(templateservice.Params{
		Log:  log,
		IDs:  ids,
		Repo: templaterepo.Provide(store),
	})
	exporter := export.NewExporter(export.Params{
		Config:   cfg,
		Log:      log,
		Clock:    clk,
		IDs:      ids,
		Provider: &pdf.NoOpProvider{},
	})

	ws, err := New(Params{
		Config:    cfg,
		Log:       log,
		Clock:     clk,
		IDs:       ids,
		Catalog:   i18n.NewCatalog(nil),
		History:   history.New(),
		Defaults:  defaults,
		Templates: templates,
		Renderer:  render.NewRenderer(),
		Exporter:  exporter,
	})
	require.NoError(t, err)
	return fixture{ws: ws, store: store, clock: clk, defaults: defaults, dir: dir}
}

func setField(field, value string) Mutation {
	return func(d domain.Draft) (domain.Draft, error) {
		return draft.SetField(d, field, value)
	}
}

func TestInitialState(t *testing.T) {
	f := newFixture(t)
	state := f.ws.State()

	assert.Equal(t, i18n.Turkish, state.Language)
	assert.Equal(t, ThemeDark, state.ThemeMode)
	assert.Equal(t, TabCreate, state.Tab)
	assert.Equal(t, "1", state.Draft.InvoiceNumber)
	assert.Equal(t, "2024-01-15", state.Draft.Date)
	assert.Equal(t, "2024-02-14", state.Draft.DueDate)
	assert.Equal(t, "Vergi", state.Draft.TaxLabel)
	assert.Equal(t, []domain.LineItem{{Quantity: 1}}, state.Draft.Items)
	assert.NotEmpty(t, state.Draft.ID)
}

func TestInitMergesStoredDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.defaults.Save(ctx, domain.Draft{CompanyName: "Fatura Ltd", Currency: "USD", Tax: 18}))

	f.ws.Init(ctx)
	d := f.ws.Draft()
	assert.Equal(t, "Fatura Ltd", d.CompanyName)
	assert.Equal(t, "USD", d.Currency)
	assert.Equal(t, 18.0, d.Tax)
}

func TestEditKeepsIDAndRecomputesTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.ws.Draft().ID

	_, err := f.ws.Edit(ctx, "item.update", func(d domain.Draft) (domain.Draft, error) {
		d, err := draft.UpdateItem(d, 0, "quantity", "3")
		if err != nil {
			return d, err
		}
		return draft.UpdateItem(d, 0, "rate", "10")
	})
	require.NoError(t, err)
	_, err = f.ws.Edit(ctx, "field", setField("discount", "10"))
	require.NoError(t, err)
	_, err = f.ws.Edit(ctx, "field", setField("tax", "18"))
	require.NoError(t, err)

	totals := f.ws.Totals()
	assert.InDelta(t, 30.0, totals.Subtotal, 1e-9)
	assert.InDelta(t, 31.86, totals.Total, 1e-9)
	assert.Equal(t, id, f.ws.Draft().ID)
}

func TestEditErrorLeavesDraftUnchanged(t *testing.T) {
	f := newFixture(t)
	before := f.ws.Draft()

	_, err := f.ws.Edit(context.Background(), "item.remove", func(d domain.Draft) (domain.Draft, error) {
		return draft.RemoveItem(d, 0)
	})
	assert.ErrorIs(t, err, domain.ErrLastItem)
	assert.Equal(t, before, f.ws.Draft())
}

func TestNewInvoiceNumbersAfterHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.ws.Draft()
	assert.False(t, f.ws.SaveToHistory(ctx))
	assert.True(t, f.ws.SaveToHistory(ctx))

	_, err := f.ws.SetTab("history")
	require.NoError(t, err)

	next, err := f.ws.NewInvoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", next.InvoiceNumber)
	assert.NotEqual(t, first.ID, next.ID)
	assert.Equal(t, TabCreate, f.ws.State().Tab)
}

func TestLoadFromHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ws.Edit(ctx, "field", setField("clientName", "ACME"))
	require.NoError(t, err)
	saved := f.ws.Draft()
	f.ws.SaveToHistory(ctx)

	_, err = f.ws.NewInvoice(ctx)
	require.NoError(t, err)

	loaded, err := f.ws.LoadFromHistory(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Equal(t, TabPreview, f.ws.State().Tab)

	_, err = f.ws.LoadFromHistory(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
	assert.Equal(t, saved.ID, f.ws.Draft().ID)

	summaries := f.ws.History()
	require.Len(t, summaries, 1)
	assert.Equal(t, "ACME", summaries[0].ClientName)
}

func TestApplyDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, applied, err := f.ws.ApplyDefaults(ctx)
	require.NoError(t, err)
	assert.False(t, applied)

	_, err = f.ws.Edit(ctx, "field", setField("companyName", "Fatura Ltd"))
	require.NoError(t, err)
	require.NoError(t, f.ws.SaveDefaults(ctx))

	_, err = f.ws.NewInvoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fatura Ltd", f.ws.Draft().CompanyName)

	_, err = f.ws.Edit(ctx, "field", setField("companyName", "Other"))
	require.NoError(t, err)
	d, applied, err := f.ws.ApplyDefaults(ctx)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Fatura Ltd", d.CompanyName)
}

func TestCorruptDefaultsLeaveDraftIntact(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Set(ctx, defaultsdomain.StorageKey, []byte("{broken")))

	_, err := f.ws.Edit(ctx, "field", setField("notes", "keep"))
	require.NoError(t, err)

	_, applied, err := f.ws.ApplyDefaults(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)
	assert.False(t, applied)
	assert.Equal(t, "keep", f.ws.Draft().Notes)

	d, err := f.ws.NewInvoice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TRY", d.Currency)
}

func TestTemplates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ws.Edit(ctx, "field", setField("clientName", "Repeat"))
	require.NoError(t, err)
	tmpl, err := f.ws.SaveTemplate(ctx, "Monthly")
	require.NoError(t, err)

	fresh, err := f.ws.NewInvoice(ctx)
	require.NoError(t, err)

	d, applied, err := f.ws.ApplyTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "Repeat", d.ClientName)
	assert.Equal(t, fresh.ID, d.ID)
	assert.Equal(t, fresh.InvoiceNumber, d.InvoiceNumber)

	deleted, err := f.ws.DeleteTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	items, err := f.ws.Templates(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPresentationSwitches(t *testing.T) {
	f := newFixture(t)

	_, err := f.ws.SetLanguage("de")
	assert.ErrorIs(t, err, domain.ErrInvalidLanguage)
	lang, err := f.ws.SetLanguage("EN")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, lang)

	assert.Equal(t, ThemeLight, f.ws.ToggleTheme())
	assert.Equal(t, ThemeDark, f.ws.ToggleTheme())
	_, err = f.ws.SetThemeMode("sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidThemeMode)

	_, err = f.ws.SetTab("settings")
	assert.ErrorIs(t, err, domain.ErrInvalidTab)

	language, labels := f.ws.Labels()
	assert.Equal(t, i18n.English, language)
	assert.Equal(t, "Tax", labels["tax"])
}

func TestPrintHTML(t *testing.T) {
	f := newFixture(t)
	out, err := f.ws.PrintHTML()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<html><head><title>Invoice</title><style>"))
	assert.True(t, strings.HasSuffix(out, "</body></html>"))
}

func TestExportSnapshotsDraft(t *testing.T) {
	f := newFixture(t)
	job, err := f.ws.Export()
	require.NoError(t, err)
	assert.Equal(t, "fatura-1.pdf", job.FileName)

	_, err = job.Wait()
	require.NoError(t, err)

	found, ok := f.ws.ExportJob(job.ID)
	require.True(t, ok)
	assert.Equal(t, export.StatusSucceeded, found.View().Status)
}
