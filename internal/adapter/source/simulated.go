package source

import (
	"context"
	"hash/fnv"
	"math/rand"
	"sync"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/port"
)

// SimulatedSource generates synthetic snapshots so the whole pipeline can run
// without a live scrape endpoint. Each product follows its own random walk
// seeded from its URL, with an occasional stock flip.
type SimulatedSource struct {
	name string
	mu   sync.Mutex
	r    *rand.Rand
	last map[string]simState
}

type simState struct {
	price      float64
	outOfStock bool
}

func NewSimulatedSource(name string, seed int64) port.SnapshotSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SimulatedSource{
		name: name,
		r:    rand.New(rand.NewSource(seed)),
		last: make(map[string]simState),
	}
}

func (s *SimulatedSource) Name() string { return s.name }

func (s *SimulatedSource) Fetch(ctx context.Context, productURL string) (model.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.last[productURL]
	if !ok {
		st = simState{price: basePrice(productURL)}
	}

	// Drift up to ±5% per observation, flip stock status ~2% of the time.
	st.price *= 1 + (s.r.Float64()-0.5)*0.1
	if st.price < 1 {
		st.price = 1
	}
	if s.r.Float64() < 0.02 {
		st.outOfStock = !st.outOfStock
	}
	s.last[productURL] = st

	return model.Snapshot{
		URL:        productURL,
		Title:      "Simulated " + productURL,
		Price:      st.price,
		Currency:   "USD",
		OutOfStock: st.outOfStock,
		FetchedAt:  time.Now().UTC(),
	}, nil
}

// basePrice derives a stable starting price in [10, 1010) from the URL.
func basePrice(url string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	return 10 + float64(h.Sum32()%100000)/100
}
