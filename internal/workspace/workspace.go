// Package workspace holds the single editing session: the working draft plus the
// language, theme mode and tab the user has selected. All draft changes go through here.
package workspace

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/smallbiznis/fatura/internal/clock"
	"github.com/smallbiznis/fatura/internal/config"
	"github.com/smallbiznis/fatura/internal/history"
	"github.com/smallbiznis/fatura/internal/i18n"
	"github.com/smallbiznis/fatura/internal/idgen"
	"github.com/smallbiznis/fatura/internal/invoice/calc"
	"github.com/smallbiznis/fatura/internal/invoice/domain"
	"github.com/smallbiznis/fatura/internal/invoice/draft"
	"github.com/smallbiznis/fatura/internal/invoice/export"
	"github.com/smallbiznis/fatura/internal/invoice/format"
	"github.com/smallbiznis/fatura/internal/invoice/render"
	defaultsdomain "github.com/smallbiznis/fatura/internal/invoicedefaults/domain"
	templatedomain "github.com/smallbiznis/fatura/internal/invoicetemplate/domain"
	"github.com/smallbiznis/fatura/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("workspace",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)

type Tab string

const (
	TabCreate  Tab = "create"
	TabPreview Tab = "preview"
	TabHistory Tab = "history"
)

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// State is a snapshot of the session handed to callers.
type State struct {
	Draft     domain.Draft  `json:"draft"`
	Totals    domain.Totals `json:"totals"`
	Language  i18n.Language `json:"language"`
	ThemeMode ThemeMode     `json:"themeMode"`
	Tab       Tab           `json:"tab"`
}

type Params struct {
	fx.In

	Config    config.Config
	Log       *zap.Logger
	Clock     clock.Clock
	IDs       idgen.Generator
	Catalog   *i18n.Catalog
	History   *history.List
	Defaults  defaultsdomain.Service
	Templates templatedomain.Service
	Renderer  render.Renderer
	Exporter  *export.Exporter  `optional:"true"`
	Metrics   *metrics.Metrics `optional:"true"`
}

type Workspace struct {
	cfg       config.InvoiceConfig
	log       *zap.Logger
	clock     clock.Clock
	ids       idgen.Generator
	catalog   *i18n.Catalog
	history   *history.List
	defaults  defaultsdomain.Service
	templates templatedomain.Service
	renderer  render.Renderer
	exporter  *export.Exporter
	metrics   *metrics.Metrics
	policy    calc.Policy

	mu        sync.Mutex
	draft     domain.Draft
	language  i18n.Language
	themeMode ThemeMode
	tab       Tab
}

// New builds a workspace holding a blank draft. Stored defaults are merged in by Init.
func New(p Params) (*Workspace, error) {
	language, err := i18n.ParseLanguage(p.Config.Invoice.DefaultLanguage)
	if err != nil {
		language = i18n.Turkish
	}
	themeMode := ThemeMode(strings.ToLower(p.Config.Invoice.DefaultThemeMode))
	if themeMode != ThemeLight && themeMode != ThemeDark {
		themeMode = ThemeDark
	}

	w := &Workspace{
		cfg:       p.Config.Invoice,
		log:       p.Log.Named("workspace"),
		clock:     p.Clock,
		ids:       p.IDs,
		catalog:   p.Catalog,
		history:   p.History,
		defaults:  p.Defaults,
		templates: p.Templates,
		renderer:  p.Renderer,
		exporter:  p.Exporter,
		metrics:   p.Metrics,
		policy:    calc.Policy{ClampPercentages: p.Config.Invoice.ClampPercentages},
		language:  language,
		themeMode: themeMode,
		tab:       TabCreate,
	}

	d, err := w.blankDraft()
	if err != nil {
		return nil, err
	}
	w.draft = d
	return w, nil
}

func registerHooks(lc fx.Lifecycle, w *Workspace) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Init(ctx)
			return nil
		},
	})
}

// Init merges stored defaults into the initial draft. A failed load is logged and the
// draft stays blank.
func (w *Workspace) Init(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = w.withDefaults(ctx, w.draft)
}

func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

func (w *Workspace) stateLocked() State {
	d := w.draft.Clone()
	return State{
		Draft:     d,
		Totals:    w.policy.Compute(d),
		Language:  w.language,
		ThemeMode: w.themeMode,
		Tab:       w.tab,
	}
}

// Draft returns a copy of the working draft.
func (w *Workspace) Draft() domain.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Totals recomputes the totals of the working draft.
func (w *Workspace) Totals() domain.Totals {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.policy.Compute(w.draft)
}

// Mutation replaces a draft with an edited copy.
type Mutation func(domain.Draft) (domain.Draft, error)

// Edit applies fn to the working draft. On error the draft is left as it was.
func (w *Workspace) Edit(ctx context.Context, operation string, fn Mutation) (domain.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next, err := fn(w.draft.Clone())
	if err != nil {
		return w.draft.Clone(), err
	}
	next.ID = w.draft.ID
	w.draft = next
	w.metrics.RecordDraftEdit(ctx, operation)
	return next.Clone(), nil
}

// NewInvoice discards the working draft and starts a fresh one numbered after the
// history, with stored defaults merged in.
func (w *Workspace) NewInvoice(ctx context.Context) (domain.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, err := w.blankDraft()
	if err != nil {
		return w.draft.Clone(), err
	}
	w.draft = w.withDefaults(ctx, d)
	w.tab = TabCreate
	w.log.Info("new invoice started",
		zap.String("draft_id", w.draft.ID),
		zap.String("invoice_number", w.draft.InvoiceNumber),
	)
	return w.draft.Clone(), nil
}

func (w *Workspace) blankDraft() (domain.Draft, error) {
	now := w.clock.Now()
	template := w.cfg.InvoiceNumberTemplate
	if template == "" {
		template = format.DefaultInvoiceNumberTemplate
	}
	number, err := format.FormatInvoiceNumber(template, now, int64(w.history.Len()+1))
	if err != nil {
		return domain.Draft{}, err
	}
	return draft.New(draft.Seed{
		ID:            w.ids.DraftID(),
		InvoiceNumber: number,
		Today:         now,
		DueDays:       w.cfg.DueDays,
		TaxLabel:      w.catalog.Lookup(w.language, "tax"),
		Currency:      w.cfg.DefaultCurrency,
		Theme:         w.cfg.DefaultTheme,
	}), nil
}

func (w *Workspace) withDefaults(ctx context.Context, d domain.Draft) domain.Draft {
	stored, err := w.defaults.Load(ctx)
	if err != nil {
		w.metrics.RecordLoadFailure(ctx, "defaults")
		w.log.Warn("defaults not applied to new draft", zap.Error(err))
		return d
	}
	return defaultsdomain.Merge(d, stored)
}

// SaveToHistory upserts the working draft into the history list.
func (w *Workspace) SaveToHistory(ctx context.Context) (replaced bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	replaced = w.history.Save(w.draft)
	w.metrics.RecordHistorySave(ctx, replaced)
	w.log.Debug("invoice saved to history",
		zap.String("draft_id", w.draft.ID),
		zap.Bool("replaced", replaced),
	)
	return replaced
}

// LoadFromHistory replaces the working draft with a stored snapshot and shows its preview.
func (w *Workspace) LoadFromHistory(ctx context.Context, id string) (domain.Draft, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	d, err := w.history.Load(id)
	if err != nil {
		return w.draft.Clone(), err
	}
	w.draft = d
	w.tab = TabPreview
	return d.Clone(), nil
}

func (w *Workspace) History() []history.Summary {
	return w.history.Summaries()
}

func (w *Workspace) SaveDefaults(ctx context.Context) error {
	d := w.Draft()
	if err := w.defaults.Save(ctx, d); err != nil {
		return err
	}
	w.metrics.RecordDefaultsOp(ctx, "save")
	return nil
}

// StoredDefaults returns the saved defaults record, or nil when none exists.
func (w *Workspace) StoredDefaults(ctx context.Context) (*domain.DraftPatch, error) {
	stored, err := w.defaults.Load(ctx)
	if err != nil {
		w.metrics.RecordLoadFailure(ctx, "defaults")
		return nil, err
	}
	return stored, nil
}

// ApplyDefaults merges stored defaults into the working draft. applied is false when
// nothing was ever saved. A load failure leaves the draft unchanged.
func (w *Workspace) ApplyDefaults(ctx context.Context) (domain.Draft, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored, err := w.defaults.Load(ctx)
	if err != nil {
		w.metrics.RecordLoadFailure(ctx, "defaults")
		return w.draft.Clone(), false, err
	}
	if stored == nil {
		return w.draft.Clone(), false, nil
	}
	w.draft = defaultsdomain.Merge(w.draft, stored)
	w.metrics.RecordDefaultsOp(ctx, "apply")
	return w.draft.Clone(), true, nil
}

func (w *Workspace) Templates(ctx context.Context) ([]templatedomain.Template, error) {
	items, err := w.templates.List(ctx)
	if err != nil {
		w.metrics.RecordLoadFailure(ctx, "templates")
	}
	return items, err
}

func (w *Workspace) SaveTemplate(ctx context.Context, name string) (*templatedomain.Template, error) {
	return w.templates.Save(ctx, name, w.Draft())
}

func (w *Workspace) ApplyTemplate(ctx context.Context, id string) (domain.Draft, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	merged, applied, err := w.templates.Apply(ctx, id, w.draft.Clone())
	if err != nil {
		w.metrics.RecordLoadFailure(ctx, "templates")
		return w.draft.Clone(), false, err
	}
	if applied {
		w.draft = merged
	}
	return w.draft.Clone(), applied, nil
}

func (w *Workspace) DeleteTemplate(ctx context.Context, id string) (bool, error) {
	return w.templates.Delete(ctx, id)
}

func (w *Workspace) SetLanguage(raw string) (i18n.Language, error) {
	language, err := i18n.ParseLanguage(raw)
	if err != nil {
		return "", err
	}
	w.mu.Lock()
	w.language = language
	w.mu.Unlock()
	return language, nil
}

func (w *Workspace) SetThemeMode(raw string) (ThemeMode, error) {
	mode := ThemeMode(strings.ToLower(strings.TrimSpace(raw)))
	if mode != ThemeLight && mode != ThemeDark {
		return "", domain.ErrInvalidThemeMode
	}
	w.mu.Lock()
	w.themeMode = mode
	w.mu.Unlock()
	return mode, nil
}

// ToggleTheme flips between light and dark.
func (w *Workspace) ToggleTheme() ThemeMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.themeMode == ThemeDark {
		w.themeMode = ThemeLight
	} else {
		w.themeMode = ThemeDark
	}
	return w.themeMode
}

func (w *Workspace) SetTab(raw string) (Tab, error) {
	tab := Tab(strings.ToLower(strings.TrimSpace(raw)))
	switch tab {
	case TabCreate, TabPreview, TabHistory:
	default:
		return "", domain.ErrInvalidTab
	}
	w.mu.Lock()
	w.tab = tab
	w.mu.Unlock()
	return tab, nil
}

// Labels returns the resolved label table for the active language.
func (w *Workspace) Labels() (i18n.Language, i18n.Table) {
	w.mu.Lock()
	language := w.language
	w.mu.Unlock()
	return language, w.catalog.Table(language)
}

// Document lays out the working draft in the active language.
func (w *Workspace) Document() render.Document {
	w.mu.Lock()
	d := w.draft.Clone()
	language := w.language
	themeMode := w.themeMode
	w.mu.Unlock()

	return render.Build(d, w.policy.Compute(d), w.catalog.Table(language), language, string(themeMode))
}

// PreviewHTML renders the working draft as a standalone page.
func (w *Workspace) PreviewHTML() (string, error) {
	return w.renderer.RenderHTML(w.Document())
}

// Markup renders only the invoice element of the working draft.
func (w *Workspace) Markup() (string, error) {
	return w.renderer.RenderMarkup(w.Document())
}

// PrintHTML renders the print document handed to the platform print flow.
func (w *Workspace) PrintHTML() (string, error) {
	markup, err := w.Markup()
	if err != nil {
		return "", err
	}
	return render.PrintHTML(markup, render.Styles), nil
}

var ErrExportUnavailable = errors.New("export_unavailable")

// Export starts a PDF export of the draft as it is right now.
func (w *Workspace) Export() (*export.Job, error) {
	if w.exporter == nil {
		return nil, ErrExportUnavailable
	}
	doc := w.Document()
	job := w.exporter.Start(doc)
	w.log.Info("export started",
		zap.String("export_job_id", job.ID),
		zap.String("file", job.FileName),
	)
	return job, nil
}

// ExportJob looks up an export started earlier.
func (w *Workspace) ExportJob(id string) (*export.Job, bool) {
	if w.exporter == nil {
		return nil, false
	}
	return w.exporter.Job(id)
}
