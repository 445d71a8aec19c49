package model

// NotificationCategory classifies the outcome of the decision engine for one
// product in one run. At most one category fires per product per run.
type NotificationCategory string

const (
	// CategoryStockChange fires when the stock status flipped.
	CategoryStockChange NotificationCategory = "STOCK_CHANGE"
	// CategoryLowestPrice fires on a new record low that is also a decrease
	// from the last observed price.
	CategoryLowestPrice NotificationCategory = "LOWEST_PRICE"
	// CategoryThresholdDrop fires when the price dropped by at least the
	// configured percentage since the last observation.
	CategoryThresholdDrop NotificationCategory = "THRESHOLD_DROP"
	// CategoryNone suppresses notification.
	CategoryNone NotificationCategory = "NONE"

	// CategoryWelcome is never produced by the decision engine; it is used by
	// the subscription flow to greet a new subscriber.
	CategoryWelcome NotificationCategory = "WELCOME"
)

func (c NotificationCategory) String() string { return string(c) }
