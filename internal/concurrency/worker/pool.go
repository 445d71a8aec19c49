package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// UnitFunc processes a single product refresh unit and reports its outcome.
// Implementations must not return early on another unit's behalf: failure
// isolation happens inside the unit.
type UnitFunc func(ctx context.Context, p model.Product) model.Outcome

// Pool fans a batch of products out over a fixed number of workers. Each
// product is exclusively owned by its unit for the duration of the run; the
// only shared state is the outcome channel drained by a single collector.
type Pool struct {
	workers int
	logger  *slog.Logger
}

func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers, logger: logger}
}

// Run processes every product concurrently and returns one outcome per
// product. When ctx expires before a unit was picked up, that unit is
// abandoned without touching its persisted state and reported as failed.
func (p *Pool) Run(ctx context.Context, products []model.Product, unit UnitFunc) []model.Outcome {
	workCh := make(chan model.Product)
	out := make(chan model.Outcome)

	go func() {
		defer close(workCh)
		for _, prod := range products {
			select {
			case <-ctx.Done():
				return
			case workCh <- prod:
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func(id int) {
			defer wg.Done()
			p.workerLoop(ctx, id, workCh, out, unit)
		}(i)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	outcomes := make([]model.Outcome, 0, len(products))
	for o := range out {
		outcomes = append(outcomes, o)
	}

	return fillAbandoned(outcomes, products)
}

func (p *Pool) workerLoop(ctx context.Context, id int, in <-chan model.Product, out chan<- model.Outcome, unit UnitFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case prod, ok := <-in:
			if !ok {
				return
			}
			o := unit(ctx, prod)
			p.logger.Debug("worker: unit finished", "worker", id, "product", prod.URL, "status", o.Status)
			// The collector drains out until every worker has returned, so
			// this send cannot block indefinitely.
			out <- o
		}
	}
}

// fillAbandoned appends failed outcomes for products that never produced one,
// so a budget-exhausted run still accounts for every product.
func fillAbandoned(outcomes []model.Outcome, products []model.Product) []model.Outcome {
	if len(outcomes) >= len(products) {
		return outcomes
	}
	seen := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		seen[o.ProductURL] = true
	}
	for _, prod := range products {
		if !seen[prod.URL] {
			outcomes = append(outcomes, model.Outcome{
				ProductURL: prod.URL,
				Status:     model.OutcomeFailed,
				Detail:     "batch budget exceeded before unit started",
			})
		}
	}
	return outcomes
}
