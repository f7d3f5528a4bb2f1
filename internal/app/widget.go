// Package app contains the quote widget and the services it is built from.
package app

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/platform/metrics"
	"github.com/jsamuelsen/quotebox/internal/ports"
)

// Widget owns the in-memory quote collection and runs every user-facing
// operation against it. Operations are serialized: each runs to completion
// before the next one starts.
//
// Operations render to a ports.Surface passed per call, and session-scoped
// operations take the session store for the calling user.
type Widget struct {
	mu      sync.Mutex
	quotes  domain.Collection
	bridge  *StorageBridge
	mutator *mutator
	pick    func(n int) int
	metrics *metrics.Widget
	logger  *slog.Logger

	onImportState func(ImportState)
}

// WidgetConfig contains configuration for the widget.
type WidgetConfig struct {
	// Bridge persists the collection. Required.
	Bridge *StorageBridge

	// Picker returns a uniform index in [0, n). Defaults to rand.IntN.
	Picker func(n int) int

	// Metrics records operation counters. Nil disables them.
	Metrics *metrics.Widget

	// ImportObserver receives every import state transition. Optional.
	ImportObserver func(ImportState)

	Logger *slog.Logger
}

// NewWidget creates a widget and loads the collection from durable storage.
func NewWidget(ctx context.Context, cfg WidgetConfig) *Widget {
	if cfg.Bridge == nil {
		panic("app: Widget requires a storage bridge")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.Widget"))

	pick := cfg.Picker
	if pick == nil {
		pick = rand.IntN
	}

	w := &Widget{
		bridge:        cfg.Bridge,
		mutator:       &mutator{bridge: cfg.Bridge, logger: logger},
		pick:          pick,
		metrics:       cfg.Metrics,
		logger:        logger,
		onImportState: cfg.ImportObserver,
	}

	w.quotes = cfg.Bridge.Load(ctx)
	w.metrics.CollectionSize(w.quotes.Len())

	logger.InfoContext(ctx, "quote collection loaded", slog.Int("size", w.quotes.Len()))

	return w
}

// Quotes returns a copy of the current collection.
func (w *Widget) Quotes() domain.Collection {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.quotes.Clone()
}

// Categories returns the current category filter options.
func (w *Widget) Categories() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	return domain.CategoryOptions(w.quotes)
}

// UpdateCategoryFilter replaces the surface's category options with the
// options computed from the current collection.
func (w *Widget) UpdateCategoryFilter(ui ports.Surface) {
	w.mu.Lock()
	defer w.mu.Unlock()

	surfaceOrDiscard(ui).SetCategoryOptions(domain.CategoryOptions(w.quotes))
}

// ShowRandomQuote displays a uniformly chosen quote matching filter and
// records it as the session's last shown quote. When nothing matches, the
// empty message is displayed and the session is left untouched.
func (w *Widget) ShowRandomQuote(ctx context.Context, ui ports.Surface, session ports.KeyValueStore, filter string) (domain.Quote, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ui = surfaceOrDiscard(ui)

	q, ok := domain.PickRandom(w.quotes, filter, w.pick)
	if !ok {
		ui.Display(domain.NoQuotesMessage)
		w.metrics.RandomPick(metrics.ResultEmpty)

		w.logger.DebugContext(ctx, "no quotes match filter", slog.String("category", filter))

		return domain.Quote{}, false
	}

	ui.Display(q.Format())
	w.metrics.RandomPick(metrics.ResultShown)

	if err := w.bridge.SaveLastShown(ctx, session, q); err != nil {
		w.logger.WarnContext(ctx, "failed to record last shown quote", slog.Any("error", err))
	}

	return q, true
}

// RestoreLastQuote displays the session's last shown quote if there is one.
// When there is none the surface is left untouched.
func (w *Widget) RestoreLastQuote(ctx context.Context, ui ports.Surface, session ports.KeyValueStore) (domain.Quote, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	q, ok := w.bridge.LoadLastShown(ctx, session)
	if !ok {
		return domain.Quote{}, false
	}

	surfaceOrDiscard(ui).Display(q.Format())

	return q, true
}

// AddNewQuote appends a quote built from the trimmed inputs, persists the
// collection, clears the inputs and refreshes the category options.
// Returns a domain.ValidationError when either input is blank.
func (w *Widget) AddNewQuote(ctx context.Context, ui ports.Surface, text, category string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	ui = surfaceOrDiscard(ui)

	q := domain.Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	next, err := w.mutator.run(ctx, mutation{
		name: "add_quote",
		validate: func() error {
			if q.Text == "" {
				return domain.NewValidationErrorWithValue("text", "must not be blank", text)
			}

			if q.Category == "" {
				return domain.NewValidationErrorWithValue("category", "must not be blank", category)
			}

			return nil
		},
		perform: func(current domain.Collection) (domain.Collection, error) {
			return current.Append(q), nil
		},
	}, w.quotes)
	if err != nil {
		return w.rejectAdd(ctx, ui, err)
	}

	w.commit(next)
	w.metrics.Add(metrics.ResultSuccess)

	ui.ClearInputs()
	ui.SetCategoryOptions(domain.CategoryOptions(w.quotes))
	ui.Notify(domain.Success(domain.MsgQuoteAdded))

	return nil
}

func (w *Widget) rejectAdd(ctx context.Context, ui ports.Surface, err error) error {
	if step, _ := GetMutationStep(err); step == StepArchive {
		w.metrics.Add(metrics.ResultStorageError)
		ui.Notify(domain.Failure(domain.MsgStorageFailure))

		return domain.NewUnavailableError("durable storage", err.Error())
	}

	w.metrics.Add(metrics.ResultRejected)
	ui.Notify(domain.Failure(domain.MsgMissingFields))

	w.logger.DebugContext(ctx, "add quote rejected", slog.Any("error", err))

	return err
}

// commit replaces the in-memory collection. Callers hold w.mu.
func (w *Widget) commit(next domain.Collection) {
	w.quotes = next
	w.metrics.CollectionSize(next.Len())
}

// surfaceOrDiscard lets callers pass a nil surface when they only need results.
func surfaceOrDiscard(ui ports.Surface) ports.Surface {
	if ui == nil {
		return discardSurface{}
	}

	return ui
}

type discardSurface struct{}

func (discardSurface) Display(string) {}
func (discardSurface) SetCategoryOptions([]string) {}
func (discardSurface) ClearInputs() {}
func (discardSurface) Notify(domain.Notification) {}
