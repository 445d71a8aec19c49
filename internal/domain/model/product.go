package model

import "time"

// PricePoint is a single observation in a product's price history.
type PricePoint struct {
	Price      float64   `json:"price"`
	ObservedAt time.Time `json:"observed_at"`
}

// Subscriber is a user watching a product, unique by email.
type Subscriber struct {
	Email string `json:"email"`
}

// Product is the persisted state of a tracked product. URL is the canonical
// identifier. PriceHistory is append-only and chronological; the three
// aggregate fields are always recomputed from the full history whenever a
// point is appended.
type Product struct {
	URL          string       `json:"url"`
	Title        string       `json:"title"`
	CurrentPrice float64      `json:"current_price"`
	Currency     string       `json:"currency"`
	ImageURL     string       `json:"image_url"`
	OutOfStock   bool         `json:"out_of_stock"`
	PriceHistory []PricePoint `json:"price_history"`
	LowestPrice  float64      `json:"lowest_price"`
	HighestPrice float64      `json:"highest_price"`
	AveragePrice float64      `json:"average_price"`
	Subscribers  []Subscriber `json:"subscribers,omitempty"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SubscriberEmails returns the plain list of subscriber addresses.
func (p Product) SubscriberEmails() []string {
	emails := make([]string, 0, len(p.Subscribers))
	for _, s := range p.Subscribers {
		emails = append(emails, s.Email)
	}
	return emails
}

// Snapshot is the result of one fetch from the snapshot source. It is
// consumed immediately to build the next history point and to feed the
// decision engine, and is never persisted as-is.
type Snapshot struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Price      float64   `json:"price"`
	Currency   string    `json:"currency"`
	ImageURL   string    `json:"image_url"`
	OutOfStock bool      `json:"out_of_stock"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// PriceStats holds the aggregates derived from a price history.
type PriceStats struct {
	Lowest  float64 `json:"lowest"`
	Highest float64 `json:"highest"`
	Average float64 `json:"average"`
}

// ProductInfo is the minimal product reference handed to the notifier.
type ProductInfo struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
