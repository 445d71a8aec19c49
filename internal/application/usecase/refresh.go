package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Navneet2569/WebScraper-Bot/internal/application/service"
	"github.com/Navneet2569/WebScraper-Bot/internal/concurrency/worker"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// RefreshOptions bounds a batch run.
type RefreshOptions struct {
	FetchTimeout time.Duration
	BatchBudget  time.Duration
	Workers      int
}

// RefreshUseCase drives one batch over every tracked product: fetch, merge
// history, aggregate, persist, decide, notify. Per-product failures are
// isolated into outcomes; only a failed product listing aborts the run.
type RefreshUseCase struct {
	store    port.ProductStore
	source   port.SnapshotSource
	notifier port.Notifier
	cache    port.SnapshotCache
	engine   *service.DecisionEngine
	logger   *slog.Logger
	opts     RefreshOptions
}

func NewRefreshUseCase(
	store port.ProductStore,
	source port.SnapshotSource,
	notifier port.Notifier,
	cache port.SnapshotCache,
	engine *service.DecisionEngine,
	logger *slog.Logger,
	opts RefreshOptions,
) *RefreshUseCase {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	if opts.BatchBudget <= 0 {
		opts.BatchBudget = 5 * time.Minute
	}
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	return &RefreshUseCase{
		store:    store,
		source:   source,
		notifier: notifier,
		cache:    cache,
		engine:   engine,
		logger:   logger,
		opts:     opts,
	}
}

// Run executes one refresh batch. The returned error is non-nil only for a
// systemic failure: the store could not even list products. Individual
// product failures are embedded in the result.
func (u *RefreshUseCase) Run(ctx context.Context) (model.BatchResult, error) {
	runID := uuid.NewString()
	start := time.Now().UTC()

	products, err := u.store.ListAll(ctx)
	if err != nil {
		return model.BatchResult{}, fmt.Errorf("%w: list products: %v", model.ErrStoreUnavailable, err)
	}

	u.logger.Info("refresh batch starting",
		"run_id", runID,
		"products", len(products),
		"workers", u.opts.Workers,
		"source", u.source.Name())

	batchCtx, cancel := context.WithTimeout(ctx, u.opts.BatchBudget)
	defer cancel()

	pool := worker.NewPool(u.opts.Workers, u.logger)
	outcomes := pool.Run(batchCtx, products, u.refreshOne)

	result := model.BatchResult{
		RunID:     runID,
		StartedAt: start,
		Duration:  time.Since(start),
		Outcomes:  outcomes,
	}
	for _, o := range outcomes {
		if o.Status == model.OutcomeUpdated {
			result.Updated++
		} else {
			result.Failed++
		}
	}

	u.logger.Info("refresh batch finished",
		"run_id", runID,
		"updated", result.Updated,
		"failed", result.Failed,
		"duration", result.Duration)

	return result, nil
}

// refreshOne is the independent unit of work for a single product. It owns
// its product record exclusively for the duration of the run and persists
// only after merge and aggregation are complete in memory, so abandoning it
// never tears a persisted record.
func (u *RefreshUseCase) refreshOne(ctx context.Context, prev model.Product) model.Outcome {
	fetchCtx, cancel := context.WithTimeout(ctx, u.opts.FetchTimeout)
	defer cancel()

	snap, err := u.source.Fetch(fetchCtx, prev.URL)
	if err != nil {
		u.logger.Warn("snapshot fetch failed", "product", prev.URL, "error", err)
		return model.Outcome{
			ProductURL: prev.URL,
			Status:     model.OutcomeFailed,
			Detail:     fmt.Sprintf("source unavailable: %v", err),
		}
	}

	point := model.PricePoint{Price: snap.Price, ObservedAt: time.Now().UTC()}
	history := make([]model.PricePoint, 0, len(prev.PriceHistory)+1)
	history = append(history, prev.PriceHistory...)
	history = append(history, point)

	stats := service.Aggregate(history)

	merged := prev
	merged.Title = snap.Title
	merged.CurrentPrice = snap.Price
	merged.Currency = snap.Currency
	merged.ImageURL = snap.ImageURL
	merged.OutOfStock = snap.OutOfStock
	merged.PriceHistory = history
	merged.LowestPrice = stats.Lowest
	merged.HighestPrice = stats.Highest
	merged.AveragePrice = stats.Average

	updated, err := u.store.Upsert(ctx, merged, point)
	if err != nil {
		u.logger.Error("product upsert failed", "product", prev.URL, "error", err)
		return model.Outcome{
			ProductURL: prev.URL,
			Status:     model.OutcomeFailed,
			Detail:     fmt.Sprintf("store unavailable: %v", err),
		}
	}

	if u.cache != nil {
		if err := u.cache.SetLatest(ctx, snap); err != nil {
			u.logger.Warn("latest snapshot cache write failed", "product", prev.URL, "error", err)
		}
	}

	outcome := model.Outcome{ProductURL: prev.URL, Status: model.OutcomeUpdated}

	// The decision runs against the pre-update record; the subscriber list
	// comes from the freshly persisted one.
	category := u.engine.Decide(prev, snap)
	outcome.Category = category

	if category != model.CategoryNone && len(updated.Subscribers) > 0 {
		info := model.ProductInfo{Title: updated.Title, URL: updated.URL}
		if err := u.notifier.Send(ctx, category, info, updated.SubscriberEmails()); err != nil {
			// The price data is already persisted; only the notification leg
			// is degraded.
			u.logger.Error("notification delivery failed",
				"product", prev.URL,
				"category", category,
				"recipients", len(updated.Subscribers),
				"error", err)
			outcome.NotifyDegraded = true
			outcome.Detail = fmt.Sprintf("notify failed: %v", err)
		} else {
			u.logger.Info("notification sent",
				"product", prev.URL,
				"category", category,
				"recipients", len(updated.Subscribers))
		}
	}

	return outcome
}
