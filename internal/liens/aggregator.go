package liens

import (
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/textutil"
)

// Summarize classifies every lien in one scope and aggregates the ones
// that survive a tax sale. Surviving liens contribute an itemized entry,
// their amount (missing amounts count as zero), and a deduplicated risk
// flag in insertion order. Conditional liens only raise FlagIRSPresent.
// Extinguished liens are dropped entirely: they are irrelevant to a
// buyer and must not pollute the total.
//
// An empty or nil input yields an empty summary, never an error.
func Summarize(recs []models.LienRecord, table SurvivabilityTable) models.LienSummary {
	summary := models.LienSummary{
		Items:     []models.LienItem{},
		RiskFlags: []string{},
	}

	for _, rec := range recs {
		lien := ClassifyRecord(rec)
		switch table[Category(lien.Category)] {
		case Survives:
			summary.Items = append(summary.Items, models.LienItem{
				Category:    lien.Category,
				Amount:      lien.Amount,
				Description: rec.Description(),
			})
			if lien.Amount != nil {
				summary.SurviveTotal += *lien.Amount
			}
			summary.RiskFlags = appendFlag(summary.RiskFlags, lien.Category)
		case Conditional:
			summary.RiskFlags = appendFlag(summary.RiskFlags, FlagIRSPresent)
		}
	}

	summary.SurviveTotal = textutil.Round2(summary.SurviveTotal)
	return summary
}

// SummarizeByProperty groups liens by their PropertyKey and summarizes
// each group separately. This is the preferred mode: a lien only counts
// against the property it was actually retrieved for. Rows without a key
// cannot be attributed and are returned pooled under the empty key; the
// caller decides whether to apply that pooled summary globally (degraded
// mode) or discard it.
func SummarizeByProperty(recs []models.LienRecord, table SurvivabilityTable) map[string]models.LienSummary {
	grouped := make(map[string][]models.LienRecord)
	var order []string
	for _, rec := range recs {
		if _, seen := grouped[rec.PropertyKey]; !seen {
			order = append(order, rec.PropertyKey)
		}
		grouped[rec.PropertyKey] = append(grouped[rec.PropertyKey], rec)
	}

	out := make(map[string]models.LienSummary, len(grouped))
	for _, key := range order {
		out[key] = Summarize(grouped[key], table)
	}
	return out
}

func appendFlag(flags []string, flag string) []string {
	for _, f := range flags {
		if f == flag {
			return flags
		}
	}
	return append(flags, flag)
}
