package models

// LienRecord is one raw recorded-instrument row as produced by a lien
// source. Every field is free text and any field may be empty.
type LienRecord struct {
	Grantor      string `json:"grantor" csv:"grantor"`
	Grantee      string `json:"grantee" csv:"grantee"`
	DocType      string `json:"doc_type" csv:"doc_type"`
	InstrumentNo string `json:"instrument_no" csv:"instrument_no"`
	RecordedDate string `json:"recorded_date" csv:"recorded_date"`
	Legal        string `json:"legal" csv:"legal"`
	Notes        string `json:"notes" csv:"notes"`
	LienType     string `json:"lien_type" csv:"lien_type"`
	Amount       string `json:"amount" csv:"amount"`

	// PropertyKey identifies which property the row was retrieved for
	// (the query string that produced it). Empty when the source cannot
	// attribute rows to a property.
	PropertyKey string `json:"property_key" csv:"property_key"`
}

// Description returns the best available human-readable label for the
// instrument: the document type, falling back to the lien type.
func (r LienRecord) Description() string {
	if r.DocType != "" {
		return r.DocType
	}
	return r.LienType
}

// ClassifiedLien is a LienRecord tagged with exactly one category from
// the lien taxonomy and its parsed dollar amount, when one was present.
type ClassifiedLien struct {
	LienRecord
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
}

// LienItem is one surviving lien inside a summary.
type LienItem struct {
	Category    string   `json:"category"`
	Amount      *float64 `json:"amount"`
	Description string   `json:"description"`
}

// LienSummary aggregates the liens for one scope: a single property, or
// a whole batch in the pooled degraded mode.
type LienSummary struct {
	Items        []LienItem `json:"items"`
	SurviveTotal float64    `json:"survive_total"`
	RiskFlags    []string   `json:"risk_flags"`
}
