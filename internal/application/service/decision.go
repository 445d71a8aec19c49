package service

import (
	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// DefaultThresholdDropPercent is used when no cutoff is configured.
const DefaultThresholdDropPercent = 10.0

// DecisionEngine classifies a fetched snapshot against the previous product
// record into a notification category. It is pure: it never touches the
// store and never sends mail.
type DecisionEngine struct {
	thresholdPct float64
}

func NewDecisionEngine(thresholdPct float64) *DecisionEngine {
	if thresholdPct <= 0 {
		thresholdPct = DefaultThresholdDropPercent
	}
	return &DecisionEngine{thresholdPct: thresholdPct}
}

// ThresholdPercent returns the configured threshold-drop cutoff.
func (e *DecisionEngine) ThresholdPercent() float64 { return e.thresholdPct }

// Decide evaluates the categories in fixed precedence order; the first match
// wins, so at most one category fires per product per run.
//
//  1. STOCK_CHANGE: the stock status flipped in either direction.
//  2. LOWEST_PRICE: a new record low that is also a decrease from the last
//     observed price. A price equal to the recorded low qualifies only if it
//     still decreased, which stops repeat alerts while the price sits flat
//     at an already-recorded low.
//  3. THRESHOLD_DROP: the price dropped from the last observation by at
//     least the configured percentage.
//  4. NONE: everything else.
func (e *DecisionEngine) Decide(prev model.Product, snap model.Snapshot) model.NotificationCategory {
	if prev.OutOfStock != snap.OutOfStock {
		return model.CategoryStockChange
	}

	if snap.Price <= prev.LowestPrice && snap.Price < prev.CurrentPrice {
		return model.CategoryLowestPrice
	}

	if prev.CurrentPrice > 0 {
		dropPct := (prev.CurrentPrice - snap.Price) / prev.CurrentPrice * 100
		if dropPct >= e.thresholdPct {
			return model.CategoryThresholdDrop
		}
	}

	return model.CategoryNone
}
