package model

import "errors"

// Failure taxonomy for the refresh pipeline. Source and store failures are
// downgraded to failed outcomes at the unit boundary; a notifier failure only
// degrades the notification leg; failing to list products at all is the one
// systemic failure that aborts a run.
var (
	ErrNotFound          = errors.New("product not found")
	ErrSourceUnavailable = errors.New("snapshot source unavailable")
	ErrStoreUnavailable  = errors.New("product store unavailable")
	ErrNotifierFailure   = errors.New("notification delivery failed")
)
