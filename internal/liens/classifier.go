// Package liens classifies recorded instruments into a lien taxonomy and
// aggregates the liens that survive a tax sale into a per-property risk
// summary.
package liens

import (
	"strings"

	"taxsale-agent/internal/models"
	"taxsale-agent/internal/textutil"
)

// Category is one entry in the fixed lien taxonomy.
type Category string

const (
	CategoryIRS        Category = "irs"
	CategoryDOJ        Category = "doj"
	CategoryStateCh61  Category = "state_ch61"
	CategoryStateOther Category = "state_other"
	CategoryTaxLoan    Category = "tax_loan"
	CategoryHOA        Category = "hoa"
	CategoryMechanics  Category = "mechanics"
	CategoryMunicipal  Category = "municipal"
	CategoryJudgment   Category = "judgment"
	CategoryUnknown    Category = "unknown"
)

// FlagIRSPresent marks a summary containing an IRS lien. IRS exposure is
// conditional, so it surfaces as a risk flag rather than a dollar figure.
const FlagIRSPresent = "irs_present"

// keyword groups evaluated in order; categories overlap in free text, so
// more specific groups must run first (a state tax lien citing chapter 61
// has to resolve to state_ch61, never state_other).
var (
	irsKeywords       = []string{"internal revenue service", "irs"}
	dojKeywords       = []string{"department of justice"}
	stateKeywords     = []string{"state tax lien", "texas comptroller", "workforce commission"}
	ch61Keywords      = []string{"chapter 61", "ch. 61", "§61"}
	taxLoanKeywords   = []string{"transfer tax lien", "32.06", "property tax loan", "tax payment transfer"}
	hoaKeywords       = []string{"hoa", "homeowner association", "property owners association", "poa"}
	mechanicsKeywords = []string{"mechanic", "materialman", "contractor lien"}
	municipalKeywords = []string{"city of", "weed", "mow", "abatement", "board-up", "demolition", "municipal"}
	judgmentKeywords  = []string{"abstract of judgment", "judgment"}
)

// Classify maps one raw instrument to exactly one lien category. It is a
// pure function over the record's text fields.
func Classify(rec models.LienRecord) Category {
	txt := strings.ToLower(strings.Join([]string{
		rec.DocType, rec.Grantor, rec.Grantee, rec.Notes, rec.Legal, rec.LienType,
	}, " "))

	switch {
	case containsAny(txt, irsKeywords):
		return CategoryIRS
	case containsAny(txt, dojKeywords):
		return CategoryDOJ
	case containsAny(txt, stateKeywords):
		if containsAny(txt, ch61Keywords) {
			return CategoryStateCh61
		}
		return CategoryStateOther
	case containsAny(txt, taxLoanKeywords):
		return CategoryTaxLoan
	case containsAny(txt, hoaKeywords):
		return CategoryHOA
	case containsAny(txt, mechanicsKeywords):
		return CategoryMechanics
	case containsAny(txt, municipalKeywords):
		return CategoryMunicipal
	case containsAny(txt, judgmentKeywords):
		return CategoryJudgment
	default:
		return CategoryUnknown
	}
}

// ClassifyRecord tags a record with its category and parsed amount.
func ClassifyRecord(rec models.LienRecord) models.ClassifiedLien {
	return models.ClassifiedLien{
		LienRecord: rec,
		Category:   string(Classify(rec)),
		Amount:     textutil.ParseMoney(rec.Amount),
	}
}

func containsAny(txt string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(txt, kw) {
			return true
		}
	}
	return false
}
