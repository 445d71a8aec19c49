package model

import "time"

// OutcomeStatus is the terminal state of one product's refresh unit.
type OutcomeStatus string

const (
	OutcomeUpdated OutcomeStatus = "updated"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome reports what happened to a single product during a batch run.
// NotifyDegraded marks an updated product whose notification leg failed; the
// price data itself was persisted.
type Outcome struct {
	ProductURL     string               `json:"product_url"`
	Status         OutcomeStatus        `json:"status"`
	Detail         string               `json:"detail,omitempty"`
	Category       NotificationCategory `json:"category,omitempty"`
	NotifyDegraded bool                 `json:"notify_degraded,omitempty"`
}

// BatchResult is the aggregate report of one pipeline run. Outcomes appear in
// completion order; ProductURL is the stable key, not the position.
type BatchResult struct {
	RunID     string        `json:"run_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Updated   int           `json:"updated"`
	Failed    int           `json:"failed"`
	Outcomes  []Outcome     `json:"outcomes"`
}
