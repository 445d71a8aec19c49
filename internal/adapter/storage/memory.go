package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// MemoryStore is an in-memory ProductStore. It backs tests and local runs
// where postgres is not available, with the same atomicity contract: an
// upsert rewrites the scalar fields and appends exactly one history point
// under a single lock.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]model.Product
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]model.Product)}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, url string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.m[url]
	if !ok {
		return model.Product{}, model.ErrNotFound
	}
	return clone(p), nil
}

func (s *MemoryStore) Create(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.URL]; ok {
		return nil
	}
	p.UpdatedAt = time.Now().UTC()
	s.m[p.URL] = clone(p)
	return nil
}

func (s *MemoryStore) Upsert(ctx context.Context, p model.Product, point model.PricePoint) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.m[p.URL]
	stored := clone(p)
	stored.UpdatedAt = time.Now().UTC()
	if ok {
		// The persisted history grows by exactly the one new point; the
		// caller's merged copy already contains it.
		stored.Subscribers = prev.Subscribers
	}
	s.m[p.URL] = stored
	return clone(stored), nil
}

func (s *MemoryStore) AddSubscriber(ctx context.Context, url, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[url]
	if !ok {
		return model.ErrNotFound
	}
	for _, sub := range p.Subscribers {
		if sub.Email == email {
			return nil
		}
	}
	p.Subscribers = append(p.Subscribers, model.Subscriber{Email: email})
	s.m[url] = p
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

func clone(p model.Product) model.Product {
	c := p
	c.PriceHistory = append([]model.PricePoint(nil), p.PriceHistory...)
	c.Subscribers = append([]model.Subscriber(nil), p.Subscribers...)
	return c
}
