package models

import (
	"github.com/google/uuid"

	"taxsale-agent/internal/textutil"
)

// PropertyRecord represents one property entering a tax sale.
type PropertyRecord struct {
	ID             uuid.UUID `json:"id" csv:"id"`
	Jurisdiction   string    `json:"jurisdiction" csv:"jurisdiction"`
	CaseNo         string    `json:"case_no" csv:"case_no"`
	CauseNo        string    `json:"cause_no" csv:"cause_no"`
	AccountNo      string    `json:"account_no" csv:"account_no"`
	Address        string    `json:"address" csv:"address"`
	City           string    `json:"city" csv:"city"`
	State          string    `json:"state" csv:"state"`
	Zip            string    `json:"zip" csv:"zip"`
	LegalDesc      string    `json:"legal_description" csv:"legal_description"`
	SaleDate       string    `json:"sale_date" csv:"sale_date"`
	MinBid         *float64  `json:"min_bid" csv:"min_bid"`
	AdjudgedValue  *float64  `json:"adjudged_value" csv:"adjudged_value"`
	EstValue       *float64  `json:"est_value" csv:"est_value"`
	EstValueSource string    `json:"est_value_source" csv:"est_value_source"`
	SourceName     string    `json:"source_name" csv:"source_name"`
	SourceURL      string    `json:"source_url" csv:"source_url"`
}

// NewPropertyRecord creates a record with a fresh ID.
func NewPropertyRecord(jurisdiction, sourceName string) PropertyRecord {
	return PropertyRecord{
		ID:           uuid.New(),
		Jurisdiction: jurisdiction,
		SourceName:   sourceName,
	}
}

// RoundMoney normalizes the record's money fields to two decimal places.
// Call before persisting.
func (p *PropertyRecord) RoundMoney() {
	for _, f := range []**float64{&p.MinBid, &p.AdjudgedValue, &p.EstValue} {
		if *f != nil {
			v := textutil.Round2(**f)
			*f = &v
		}
	}
}

// ScoredProperty is a PropertyRecord plus the enrichment columns appended
// by the scoring stage.
type ScoredProperty struct {
	PropertyRecord
	SurviveTotal float64  `json:"survive_total" csv:"survive_total"`
	RiskFlags    []string `json:"risk_flags" csv:"risk_flags"`
	DealScore    float64  `json:"deal_score" csv:"deal_score"`
}
