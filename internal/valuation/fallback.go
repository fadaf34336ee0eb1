package valuation

import (
	"context"

	"taxsale-agent/internal/models"
)

// SourceAdjudged tags estimates taken from the jurisdiction's own
// adjudged value, distinguishing them from market estimates.
const SourceAdjudged = "adjudged_value"

// AdjudgedFallback estimates from the jurisdiction's adjudged value.
// It is the crude last link in the chain and never fails.
type AdjudgedFallback struct{}

func (AdjudgedFallback) Estimate(_ context.Context, rec models.PropertyRecord) (*Result, error) {
	if rec.AdjudgedValue == nil || *rec.AdjudgedValue <= 0 {
		return nil, nil
	}
	return &Result{Value: *rec.AdjudgedValue, Source: SourceAdjudged}, nil
}
