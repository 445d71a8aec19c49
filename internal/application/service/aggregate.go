package service

import (
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// Aggregate computes the lowest, highest and average price over a full
// history. It is pure and recomputes from scratch on every call, so repeated
// aggregation never accumulates rounding drift.
//
// The history must be non-empty: callers append the newly observed price
// before aggregating. An empty history is a programming error.
func Aggregate(history []model.PricePoint) model.PriceStats {
	if len(history) == 0 {
		panic("aggregate: empty price history")
	}

	lowest := history[0].Price
	highest := history[0].Price
	var sum float64

	for _, p := range history {
		if p.Price < lowest {
			lowest = p.Price
		}
		if p.Price > highest {
			highest = p.Price
		}
		sum += p.Price
	}

	return model.PriceStats{
		Lowest:  lowest,
		Highest: highest,
		Average: sum / float64(len(history)),
	}
}
