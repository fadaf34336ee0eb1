package valuation

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"taxsale-agent/internal/models"
)

const cacheSchema = `
CREATE TABLE IF NOT EXISTS valuations (
	address_key TEXT PRIMARY KEY,
	value       REAL NOT NULL,
	source      TEXT NOT NULL,
	fetched_at  INTEGER NOT NULL
);`

// CachedEstimator wraps another estimator with a sqlite-backed cache so
// repeated runs do not re-hit a paid valuation service. Cache read/write
// failures fall through to the wrapped estimator; a broken cache must
// never block enrichment.
type CachedEstimator struct {
	db    *sql.DB
	inner Estimator
}

// NewCachedEstimator opens (and if needed initializes) the cache at path.
func NewCachedEstimator(path string, inner Estimator) (*CachedEstimator, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open valuation cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init valuation cache: %w", err)
	}
	return &CachedEstimator{db: db, inner: inner}, nil
}

// Close releases the cache database.
func (c *CachedEstimator) Close() error {
	return c.db.Close()
}

// Estimate implements Estimator.
func (c *CachedEstimator) Estimate(ctx context.Context, rec models.PropertyRecord) (*Result, error) {
	key := cacheKey(rec)
	if key == "" {
		return c.inner.Estimate(ctx, rec)
	}

	var value float64
	var source string
	err := c.db.QueryRowContext(ctx,
		"SELECT value, source FROM valuations WHERE address_key = ?", key,
	).Scan(&value, &source)
	if err == nil {
		return &Result{Value: value, Source: source}, nil
	}

	res, err := c.inner.Estimate(ctx, rec)
	if err != nil || res == nil {
		return res, err
	}

	// Best-effort write; a failed insert only costs a future lookup.
	_, _ = c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO valuations (address_key, value, source, fetched_at) VALUES (?, ?, ?, ?)",
		key, res.Value, res.Source, time.Now().Unix(),
	)
	return res, nil
}

func cacheKey(rec models.PropertyRecord) string {
	if rec.Address == "" {
		return ""
	}
	parts := []string{rec.Address, rec.City, rec.State, rec.Zip}
	return strings.ToUpper(strings.TrimSpace(strings.Join(parts, "|")))
}
