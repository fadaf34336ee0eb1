package liens

// Survivability describes what a tax sale does to a lien category.
type Survivability int

const (
	// Extinguished liens are wiped out by the sale and irrelevant to a buyer.
	Extinguished Survivability = iota
	// Survives liens remain attached and become the buyer's liability.
	Survives
	// Conditional liens (IRS) may or may not attach; their exposure is
	// unknown and is surfaced as a risk flag instead of a dollar total.
	Conditional
)

// SurvivabilityTable maps each lien category to its post-sale fate.
// Categories absent from the table are treated as extinguished.
type SurvivabilityTable map[Category]Survivability

// DefaultSurvivability returns the standard Texas tax-sale table.
// Construct once at process start and thread through calls; the table is
// never mutated after construction.
func DefaultSurvivability() SurvivabilityTable {
	return SurvivabilityTable{
		CategoryMunicipal:  Survives,
		CategoryStateCh61:  Survives,
		CategoryTaxLoan:    Survives,
		CategoryDOJ:        Survives,
		CategoryIRS:        Conditional,
		CategoryHOA:        Extinguished,
		CategoryMechanics:  Extinguished,
		CategoryJudgment:   Extinguished,
		CategoryStateOther: Extinguished,
	}
}
