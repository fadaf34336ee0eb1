// Package scoring ranks tax-sale properties by combining equity potential
// with surviving-lien risk into one bounded deal score.
package scoring

import (
	"fmt"
	"math"

	"taxsale-agent/internal/textutil"
)

// Weights splits the combined score between the equity and risk
// components. The two must sum to 1.0.
type Weights struct {
	Equity float64 `yaml:"equity" json:"equity"`
	Risk   float64 `yaml:"risk" json:"risk"`
}

// Config is the process-wide scoring configuration. It is pure data:
// construct once, validate, and thread through calls unmutated.
type Config struct {
	// TargetMarginPct is the fraction of estimated value treated as a
	// full-credit equity margin; equity at or above it saturates the
	// equity component.
	TargetMarginPct float64 `yaml:"target_margin_pct" json:"target_margin_pct"`
	// MaxScore is the scale ceiling of the returned score.
	MaxScore float64 `yaml:"max_score" json:"max_score"`
	Weights  Weights `yaml:"weights" json:"weights"`
	// RiskPenalties maps a risk-flag token to penalty points out of 100.
	// Flags missing from the map penalize nothing.
	RiskPenalties map[string]int `yaml:"risk_penalties" json:"risk_penalties"`
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		TargetMarginPct: 0.35,
		MaxScore:        100,
		Weights:         Weights{Equity: 0.65, Risk: 0.35},
		RiskPenalties: map[string]int{
			"irs_present": 18,
			"state_ch61":  20,
			"municipal":   12,
			"tax_loan":    15,
			"doj":         25,
			"hoa":         6,
			"mechanics":   8,
			"judgment":    5,
		},
	}
}

// Validate rejects configurations the scorer cannot interpret.
func (c Config) Validate() error {
	if math.Abs(c.Weights.Equity+c.Weights.Risk-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %f", c.Weights.Equity+c.Weights.Risk)
	}
	if c.TargetMarginPct <= 0 {
		return fmt.Errorf("target_margin_pct must be positive, got %f", c.TargetMarginPct)
	}
	if c.MaxScore <= 0 {
		return fmt.Errorf("max_score must be positive, got %f", c.MaxScore)
	}
	return nil
}

// Engine computes deal scores under one validated configuration.
type Engine struct {
	cfg Config
}

// NewEngine creates a scoring engine, rejecting invalid configuration.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Score combines estimated value, minimum bid, surviving-lien exposure
// and risk flags into a score in [0, MaxScore]. Both estimated value and
// minimum bid are required: without them no score can be computed and
// the result is 0. Surviving liens are a direct cost to the buyer and
// subtract from equity alongside the bid; net equity never goes below
// zero. Unknown flags contribute zero penalty.
func (e *Engine) Score(estValue, minBid *float64, surviveTotal float64, flags []string) float64 {
	if estValue == nil || minBid == nil || *estValue <= 0 || *minBid <= 0 {
		return 0
	}

	netEquity := math.Max(0, *estValue-(*minBid+surviveTotal))
	equityFraction := netEquity / *estValue
	equityScore := clamp(equityFraction/e.cfg.TargetMarginPct, 0, 1)

	penaltyPoints := 0
	for _, flag := range flags {
		penaltyPoints += e.cfg.RiskPenalties[flag]
	}
	riskScore := 1 - clamp(float64(penaltyPoints)/100, 0, 1)

	combined := e.cfg.Weights.Equity*equityScore + e.cfg.Weights.Risk*riskScore
	return textutil.Round2(combined * e.cfg.MaxScore)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
