package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func products(n int) []model.Product {
	out := make([]model.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Product{URL: fmt.Sprintf("p%03d", i)})
	}
	return out
}

func TestPoolOneOutcomePerProduct(t *testing.T) {
	pool := NewPool(4, testLogger())
	outcomes := pool.Run(context.Background(), products(50), func(ctx context.Context, p model.Product) model.Outcome {
		return model.Outcome{ProductURL: p.URL, Status: model.OutcomeUpdated}
	})
	if len(outcomes) != 50 {
		t.Fatalf("expected 50 outcomes, got %d", len(outcomes))
	}
	seen := map[string]bool{}
	for _, o := range outcomes {
		if seen[o.ProductURL] {
			t.Fatalf("duplicate outcome for %s", o.ProductURL)
		}
		seen[o.ProductURL] = true
	}
}

func TestPoolRunsUnitsConcurrently(t *testing.T) {
	var inFlight, peak int32
	var mu sync.Mutex

	pool := NewPool(8, testLogger())
	pool.Run(context.Background(), products(32), func(ctx context.Context, p model.Product) model.Outcome {
		cur := atomic.AddInt32(&inFlight, 1)
		mu.Lock()
		if cur > peak {
			peak = cur
		}
		mu.Unlock()
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return model.Outcome{ProductURL: p.URL, Status: model.OutcomeUpdated}
	})

	if peak < 2 {
		t.Fatalf("expected concurrent execution, peak was %d", peak)
	}
}

func TestPoolBudgetExhaustionAccountsForEveryProduct(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	pool := NewPool(2, testLogger())
	outcomes := pool.Run(ctx, products(100), func(ctx context.Context, p model.Product) model.Outcome {
		select {
		case <-time.After(20 * time.Millisecond):
		case <-ctx.Done():
		}
		return model.Outcome{ProductURL: p.URL, Status: model.OutcomeUpdated}
	})

	if len(outcomes) != 100 {
		t.Fatalf("expected every product accounted for, got %d", len(outcomes))
	}
	var failed int
	for _, o := range outcomes {
		if o.Status == model.OutcomeFailed {
			failed++
		}
	}
	if failed == 0 {
		t.Fatalf("expected abandoned units to be reported failed")
	}
}

func TestPoolZeroWorkersClamped(t *testing.T) {
	pool := NewPool(0, testLogger())
	outcomes := pool.Run(context.Background(), products(3), func(ctx context.Context, p model.Product) model.Outcome {
		return model.Outcome{ProductURL: p.URL, Status: model.OutcomeUpdated}
	})
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
}

func TestPoolFailureDoesNotCancelOthers(t *testing.T) {
	pool := NewPool(4, testLogger())
	outcomes := pool.Run(context.Background(), products(10), func(ctx context.Context, p model.Product) model.Outcome {
		if p.URL == "p003" {
			return model.Outcome{ProductURL: p.URL, Status: model.OutcomeFailed, Detail: "source unavailable"}
		}
		return model.Outcome{ProductURL: p.URL, Status: model.OutcomeUpdated}
	})

	var updated, failed int
	for _, o := range outcomes {
		switch o.Status {
		case model.OutcomeUpdated:
			updated++
		case model.OutcomeFailed:
			failed++
		}
	}
	if updated != 9 || failed != 1 {
		t.Fatalf("expected 9 updated / 1 failed, got %d/%d", updated, failed)
	}
}
