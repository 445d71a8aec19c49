package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

// PostgresAdapter persists products, their append-only price history and
// their subscriber sets.
type PostgresAdapter struct {
	db *sql.DB
}

func NewPostgresAdapter(connStr string) (*PostgresAdapter, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresAdapter{db: db}, nil
}

func (a *PostgresAdapter) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS products (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		current_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		currency TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		out_of_stock BOOLEAN NOT NULL DEFAULT FALSE,
		lowest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		highest_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		average_price DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE TABLE IF NOT EXISTS price_history (
		id BIGSERIAL PRIMARY KEY,
		product_url TEXT NOT NULL REFERENCES products(url) ON DELETE CASCADE,
		price DOUBLE PRECISION NOT NULL,
		observed_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history(product_url, observed_at);
	CREATE TABLE IF NOT EXISTS subscribers (
		product_url TEXT NOT NULL REFERENCES products(url) ON DELETE CASCADE,
		email TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (product_url, email)
	);
	`
	_, err := a.db.ExecContext(ctx, query)
	return err
}

// ListAll returns every tracked product with its full price history and
// subscriber set. History rows come back in insertion order.
func (a *PostgresAdapter) ListAll(ctx context.Context) ([]model.Product, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT url, title, current_price, currency, image_url, out_of_stock,
		       lowest_price, highest_price, average_price, updated_at
		FROM products ORDER BY url`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	index := make(map[string]int)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.URL, &p.Title, &p.CurrentPrice, &p.Currency, &p.ImageURL,
			&p.OutOfStock, &p.LowestPrice, &p.HighestPrice, &p.AveragePrice, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		index[p.URL] = len(products)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	histRows, err := a.db.QueryContext(ctx, `
		SELECT product_url, price, observed_at
		FROM price_history ORDER BY product_url, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	defer histRows.Close()

	for histRows.Next() {
		var url string
		var pt model.PricePoint
		if err := histRows.Scan(&url, &pt.Price, &pt.ObservedAt); err != nil {
			return nil, fmt.Errorf("failed to scan price point: %w", err)
		}
		if i, ok := index[url]; ok {
			products[i].PriceHistory = append(products[i].PriceHistory, pt)
		}
	}
	if err := histRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate price history: %w", err)
	}

	subRows, err := a.db.QueryContext(ctx, `
		SELECT product_url, email FROM subscribers ORDER BY product_url, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var url, email string
		if err := subRows.Scan(&url, &email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		if i, ok := index[url]; ok {
			products[i].Subscribers = append(products[i].Subscribers, model.Subscriber{Email: email})
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}

	return products, nil
}

func (a *PostgresAdapter) Get(ctx context.Context, url string) (model.Product, error) {
	var p model.Product
	err := a.db.QueryRowContext(ctx, `
		SELECT url, title, current_price, currency, image_url, out_of_stock,
		       lowest_price, highest_price, average_price, updated_at
		FROM products WHERE url = $1`, url).
		Scan(&p.URL, &p.Title, &p.CurrentPrice, &p.Currency, &p.ImageURL,
			&p.OutOfStock, &p.LowestPrice, &p.HighestPrice, &p.AveragePrice, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, model.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}

	histRows, err := a.db.QueryContext(ctx, `
		SELECT price, observed_at FROM price_history
		WHERE product_url = $1 ORDER BY id`, url)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to load price history: %w", err)
	}
	defer histRows.Close()
	for histRows.Next() {
		var pt model.PricePoint
		if err := histRows.Scan(&pt.Price, &pt.ObservedAt); err != nil {
			return model.Product{}, fmt.Errorf("failed to scan price point: %w", err)
		}
		p.PriceHistory = append(p.PriceHistory, pt)
	}
	if err := histRows.Err(); err != nil {
		return model.Product{}, fmt.Errorf("failed to iterate price history: %w", err)
	}

	subs, err := a.subscribers(ctx, a.db, url)
	if err != nil {
		return model.Product{}, err
	}
	p.Subscribers = subs

	return p, nil
}

// Create inserts a brand-new product together with its seed history. An
// already-tracked URL is left untouched.
func (a *PostgresAdapter) Create(ctx context.Context, p model.Product) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO products (url, title, current_price, currency, image_url, out_of_stock,
		                      lowest_price, highest_price, average_price, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		ON CONFLICT (url) DO NOTHING`,
		p.URL, p.Title, p.CurrentPrice, p.Currency, p.ImageURL, p.OutOfStock,
		p.LowestPrice, p.HighestPrice, p.AveragePrice)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	for _, pt := range p.PriceHistory {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO price_history (product_url, price, observed_at)
			VALUES ($1,$2,$3)`, p.URL, pt.Price, pt.ObservedAt); err != nil {
			return fmt.Errorf("failed to insert price point: %w", err)
		}
	}

	return tx.Commit()
}

// Upsert writes the merged record and appends exactly one history point in a
// single transaction, then returns the record with its current subscriber
// set. The existing history rows are never rewritten.
func (a *PostgresAdapter) Upsert(ctx context.Context, p model.Product, point model.PricePoint) (model.Product, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products (url, title, current_price, currency, image_url, out_of_stock,
		                      lowest_price, highest_price, average_price, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			current_price = EXCLUDED.current_price,
			currency = EXCLUDED.currency,
			image_url = EXCLUDED.image_url,
			out_of_stock = EXCLUDED.out_of_stock,
			lowest_price = EXCLUDED.lowest_price,
			highest_price = EXCLUDED.highest_price,
			average_price = EXCLUDED.average_price,
			updated_at = NOW()`,
		p.URL, p.Title, p.CurrentPrice, p.Currency, p.ImageURL, p.OutOfStock,
		p.LowestPrice, p.HighestPrice, p.AveragePrice); err != nil {
		return model.Product{}, fmt.Errorf("failed to upsert product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO price_history (product_url, price, observed_at)
		VALUES ($1,$2,$3)`, p.URL, point.Price, point.ObservedAt); err != nil {
		return model.Product{}, fmt.Errorf("failed to append price point: %w", err)
	}

	subs, err := a.subscribers(ctx, tx, p.URL)
	if err != nil {
		return model.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Product{}, fmt.Errorf("failed to commit upsert: %w", err)
	}

	p.Subscribers = subs
	return p, nil
}

func (a *PostgresAdapter) AddSubscriber(ctx context.Context, url, email string) error {
	_, err := a.db.ExecContext(ctx, `
		INSERT INTO subscribers (product_url, email)
		VALUES ($1,$2)
		ON CONFLICT (product_url, email) DO NOTHING`, url, email)
	if err != nil {
		return fmt.Errorf("failed to add subscriber: %w", err)
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (a *PostgresAdapter) subscribers(ctx context.Context, q querier, url string) ([]model.Subscriber, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT email FROM subscribers WHERE product_url = $1 ORDER BY created_at`, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscribers: %w", err)
	}
	defer rows.Close()

	var subs []model.Subscriber
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, model.Subscriber{Email: email})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subs, nil
}

func (a *PostgresAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

func (a *PostgresAdapter) Close() error {
	return a.db.Close()
}
