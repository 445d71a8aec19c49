package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

func point(price float64) model.PricePoint {
	return model.PricePoint{Price: price, ObservedAt: time.Now().UTC()}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreCreateIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	p := model.Product{URL: "p1", Title: "first", PriceHistory: []model.PricePoint{point(10)}}
	if err := s.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	p.Title = "second"
	if err := s.Create(context.Background(), p); err != nil {
		t.Fatalf("create again: %v", err)
	}
	got, _ := s.Get(context.Background(), "p1")
	if got.Title != "first" {
		t.Fatalf("create overwrote existing record: %+v", got)
	}
}

func TestMemoryStoreUpsertKeepsSubscribers(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Create(ctx, model.Product{URL: "p1", PriceHistory: []model.PricePoint{point(10)}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.AddSubscriber(ctx, "p1", "a@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	merged := model.Product{URL: "p1", CurrentPrice: 9, PriceHistory: []model.PricePoint{point(10), point(9)}}
	updated, err := s.Upsert(ctx, merged, point(9))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if len(updated.Subscribers) != 1 || updated.Subscribers[0].Email != "a@example.com" {
		t.Fatalf("subscribers lost on upsert: %+v", updated.Subscribers)
	}
}

func TestMemoryStoreAddSubscriberUnique(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Create(ctx, model.Product{URL: "p1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := s.AddSubscriber(ctx, "p1", "a@example.com"); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}
	got, _ := s.Get(ctx, "p1")
	if len(got.Subscribers) != 1 {
		t.Fatalf("duplicate subscribers: %+v", got.Subscribers)
	}
}

func TestMemoryStoreAddSubscriberUnknownProduct(t *testing.T) {
	s := NewMemoryStore()
	if err := s.AddSubscriber(context.Background(), "nope", "a@example.com"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Create(ctx, model.Product{URL: "p1", PriceHistory: []model.PricePoint{point(10)}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	got, _ := s.Get(ctx, "p1")
	got.PriceHistory[0].Price = 999

	again, _ := s.Get(ctx, "p1")
	if again.PriceHistory[0].Price == 999 {
		t.Fatalf("store leaked internal state")
	}
}

func TestMemoryStoreListAllSorted(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for _, url := range []string{"c", "a", "b"} {
		if err := s.Create(ctx, model.Product{URL: url}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].URL != "a" || all[2].URL != "c" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestMemoryStoreConcurrentUpserts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Create(ctx, model.Product{URL: "p1", PriceHistory: []model.PricePoint{point(1)}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p, _ := s.Get(ctx, "p1")
			pt := point(float64(n))
			p.PriceHistory = append(p.PriceHistory, pt)
			if _, err := s.Upsert(ctx, p, pt); err != nil {
				t.Errorf("upsert: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if _, err := s.Get(ctx, "p1"); err != nil {
		t.Fatalf("get after concurrent upserts: %v", err)
	}
}
