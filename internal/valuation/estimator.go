// Package valuation attaches a market-value estimate to property records
// by trying an ordered chain of estimators.
package valuation

import (
	"context"

	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
)

// Result is a successful estimate. A nil *Result with a nil error means
// the estimator confirmed it has no value for the property, which is
// distinct from a lookup failure (non-nil error, possibly transient).
type Result struct {
	Value  float64
	Source string
}

// Estimator produces a market-value estimate for one property.
type Estimator interface {
	// Estimate returns (nil, nil) when no estimate is available, and an
	// error only for lookup failures. It must never panic on malformed
	// responses.
	Estimate(ctx context.Context, rec models.PropertyRecord) (*Result, error)
}

// Chain tries estimators in order and short-circuits on the first
// non-nil result. Lookup failures are logged and skipped so that a
// flaky primary source degrades to the fallback instead of aborting
// enrichment; the chain itself never returns an error.
type Chain struct {
	estimators []Estimator
	log        logger.Logger
}

// NewChain builds an estimator chain.
func NewChain(log logger.Logger, estimators ...Estimator) *Chain {
	return &Chain{estimators: estimators, log: log}
}

// Estimate runs the chain for one property.
func (c *Chain) Estimate(ctx context.Context, rec models.PropertyRecord) *Result {
	for _, est := range c.estimators {
		res, err := est.Estimate(ctx, rec)
		if err != nil {
			c.log.Warn("valuation lookup failed, trying next estimator", "address", rec.Address, "err", err)
			continue
		}
		if res != nil {
			return res
		}
	}
	return nil
}

// EstimateAll enriches every record in place with the first available
// estimate. Records with no estimate are left untouched.
func (c *Chain) EstimateAll(ctx context.Context, recs []models.PropertyRecord) {
	for i := range recs {
		if res := c.Estimate(ctx, recs[i]); res != nil {
			v := res.Value
			recs[i].EstValue = &v
			recs[i].EstValueSource = res.Source
		}
	}
}
