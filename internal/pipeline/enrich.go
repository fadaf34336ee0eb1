// Package pipeline wires the scraping, aggregation and scoring stages
// into the enrichment step that turns property records into scored rows.
package pipeline

import (
	"strings"

	"taxsale-agent/internal/liens"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/scoring"
)

// Enricher applies lien summaries and deal scores to property records.
type Enricher struct {
	table  liens.SurvivabilityTable
	engine *scoring.Engine
	log    logger.Logger
}

// NewEnricher builds an enricher from immutable configuration.
func NewEnricher(table liens.SurvivabilityTable, engine *scoring.Engine, log logger.Logger) *Enricher {
	return &Enricher{table: table, engine: engine, log: log}
}

// Enrich summarizes the lien rows and scores every property.
//
// When any lien row carries a property key, summaries apply strictly
// per property (matched against the address or account number the row
// was queried by) and unattributed rows are dropped with a warning:
// per-key and pooled exposure never mix. Only when no row at all is
// attributable does the enricher fall back to the degraded mode and
// apply one pooled summary to every property. That mode overstates risk
// for clean properties and understates it for encumbered ones, so it is
// logged loudly.
func (e *Enricher) Enrich(props []models.PropertyRecord, lienRows []models.LienRecord) []models.ScoredProperty {
	// Keys are normalized before grouping so case and whitespace variants
	// of the same query land in one group instead of shadowing each other.
	rows := make([]models.LienRecord, len(lienRows))
	copy(rows, lienRows)
	for i := range rows {
		rows[i].PropertyKey = normalizeKey(rows[i].PropertyKey)
	}
	grouped := liens.SummarizeByProperty(rows, e.table)

	unkeyed, hasUnkeyed := grouped[""]
	keyed := make(map[string]models.LienSummary, len(grouped))
	for key, summary := range grouped {
		if key != "" {
			keyed[key] = summary
		}
	}

	var pooled models.LienSummary
	degraded := false
	switch {
	case len(keyed) == 0 && len(lienRows) > 0:
		degraded = true
		pooled = liens.Summarize(lienRows, e.table)
		e.log.Warn("no lien rows carry a property key; applying one pooled summary to every property",
			"rows", len(lienRows))
	case hasUnkeyed:
		e.log.Warn("dropping lien rows without a property key to avoid mixing pooled and per-property exposure",
			"dropped_items", len(unkeyed.Items))
	}

	scored := make([]models.ScoredProperty, 0, len(props))
	for _, prop := range props {
		summary := emptySummary()
		if degraded {
			summary = pooled
		} else if match, ok := e.lookup(keyed, prop); ok {
			summary = match
		}

		scored = append(scored, models.ScoredProperty{
			PropertyRecord: prop,
			SurviveTotal:   summary.SurviveTotal,
			RiskFlags:      summary.RiskFlags,
			DealScore:      e.engine.Score(prop.EstValue, prop.MinBid, summary.SurviveTotal, summary.RiskFlags),
		})
	}
	return scored
}

// lookup matches a property to a per-key summary by the fields the
// scrapers query with: street address first, then account number.
func (e *Enricher) lookup(keyed map[string]models.LienSummary, prop models.PropertyRecord) (models.LienSummary, bool) {
	for _, candidate := range []string{prop.Address, prop.AccountNo} {
		if candidate == "" {
			continue
		}
		if summary, ok := keyed[normalizeKey(candidate)]; ok {
			return summary, true
		}
	}
	return models.LienSummary{}, false
}

func normalizeKey(key string) string {
	return strings.ToUpper(strings.Join(strings.Fields(key), " "))
}

func emptySummary() models.LienSummary {
	return models.LienSummary{Items: []models.LienItem{}, RiskFlags: []string{}}
}
