package service

import (
	"testing"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

func history(prices ...float64) []model.PricePoint {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]model.PricePoint, 0, len(prices))
	for i, p := range prices {
		out = append(out, model.PricePoint{Price: p, ObservedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	return out
}

func TestAggregateSingleEntry(t *testing.T) {
	got := Aggregate(history(42.5))
	if got.Lowest != 42.5 || got.Highest != 42.5 || got.Average != 42.5 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAggregateMinMaxAverage(t *testing.T) {
	got := Aggregate(history(100, 80, 120, 90))
	if got.Lowest != 80 {
		t.Fatalf("lowest: expected 80, got %v", got.Lowest)
	}
	if got.Highest != 120 {
		t.Fatalf("highest: expected 120, got %v", got.Highest)
	}
	if got.Average != 97.5 {
		t.Fatalf("average: expected 97.5, got %v", got.Average)
	}
}

func TestAggregateBounds(t *testing.T) {
	h := history(3, 1, 4, 1, 5, 9, 2, 6)
	got := Aggregate(h)
	if got.Lowest > got.Average || got.Average > got.Highest {
		t.Fatalf("bounds violated: %+v", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	h := history(10.1, 10.2, 10.3)
	first := Aggregate(h)
	for i := 0; i < 100; i++ {
		if got := Aggregate(h); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestAggregateTiedExtremes(t *testing.T) {
	got := Aggregate(history(50, 50, 50))
	if got.Lowest != 50 || got.Highest != 50 || got.Average != 50 {
		t.Fatalf("unexpected stats for flat history: %+v", got)
	}
}

func TestAggregateEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on empty history")
		}
	}()
	Aggregate(nil)
}
