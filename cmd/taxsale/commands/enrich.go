package commands

import (
	"context"

	"github.com/spf13/cobra"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/liens"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/pipeline"
	"taxsale-agent/internal/scoring"
	"taxsale-agent/internal/valuation"
	"taxsale-agent/pkg/config"
)

var (
	enrichIn         *string
	enrichClerkLiens *string
	enrichMuniLiens  *string
	enrichOut        *string
	enrichScoringCfg *string
	enrichSkipValue  *bool
)

func init() {
	registerEnrichFlags(enrichCmd)
	rootCmd.AddCommand(enrichCmd)
}

func registerEnrichFlags(cmd *cobra.Command) {
	enrichIn = cmd.Flags().String("in", "properties.csv", "Property CSV to enrich.")
	enrichClerkLiens = cmd.Flags().String("clerk-liens", "clerk_liens.csv", "Clerk lien CSV (optional).")
	enrichMuniLiens = cmd.Flags().String("muni-liens", "muni_liens.csv", "Municipal lien CSV (optional).")
	enrichOut = cmd.Flags().String("out", "scored.csv", "Path to write the scored CSV to.")
	enrichScoringCfg = cmd.Flags().String("scoring-config", "", "YAML scoring config overriding the defaults.")
	enrichSkipValue = cmd.Flags().Bool("skip-valuation", false, "Skip valuation lookups and score with existing values.")
}

var enrichCmd = &cobra.Command{
	Use:   "enrich [--in <properties.csv>] [--out <scored.csv>]",
	Short: "Values properties, aggregates liens and writes deal scores.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnrich(cmd.Context())
	},
}

func runEnrich(ctx context.Context) error {
	cfg := config.New()
	log := logger.New()

	props, err := export.ReadProperties(*enrichIn)
	if err != nil {
		return err
	}
	lienRows, err := readLienFiles(log, *enrichClerkLiens, *enrichMuniLiens)
	if err != nil {
		return err
	}

	scored, err := enrichRecords(ctx, cfg, log, props, lienRows, *enrichScoringCfg, *enrichSkipValue)
	if err != nil {
		return err
	}

	if err := export.WriteScored(*enrichOut, scored); err != nil {
		return err
	}
	log.Info("enrichment complete", "properties", len(scored), "liens", len(lienRows), "path", *enrichOut)
	return nil
}

// enrichRecords is the enrich stage proper: valuation, lien aggregation
// and scoring, shared by the enrich and run commands.
func enrichRecords(ctx context.Context, cfg *config.Config, log logger.Logger, props []models.PropertyRecord, lienRows []models.LienRecord, scoringCfgPath string, skipValuation bool) ([]models.ScoredProperty, error) {
	scoringCfg := scoring.DefaultConfig()
	if scoringCfgPath != "" {
		var err error
		if scoringCfg, err = scoring.LoadConfig(scoringCfgPath); err != nil {
			return nil, err
		}
	}
	engine, err := scoring.NewEngine(scoringCfg)
	if err != nil {
		return nil, err
	}

	if !skipValuation {
		chain, err := buildValuationChain(cfg, log)
		if err != nil {
			return nil, err
		}
		chain.EstimateAll(ctx, props)
	}

	enricher := pipeline.NewEnricher(liens.DefaultSurvivability(), engine, log)
	return enricher.Enrich(props, lienRows), nil
}

// readLienFiles merges the clerk and municipal lien CSVs; either file
// may be absent.
func readLienFiles(log logger.Logger, paths ...string) ([]models.LienRecord, error) {
	var rows []models.LienRecord
	for _, path := range paths {
		recs, err := export.ReadLiens(path)
		if err != nil {
			return nil, err
		}
		if recs == nil {
			log.Info("lien file absent, continuing without it", "path", path)
			continue
		}
		rows = append(rows, recs...)
	}
	return rows, nil
}

// buildValuationChain assembles the estimator chain: the valuation API
// (cached, when credentials exist) first, adjudged value as fallback.
func buildValuationChain(cfg *config.Config, log logger.Logger) (*valuation.Chain, error) {
	estimators := []valuation.Estimator{}
	if cfg.HasRapidAPICredentials() {
		var est valuation.Estimator = valuation.NewRapidAPIEstimator(cfg.RapidAPIHost, cfg.RapidAPIKey)
		if cfg.ValuationCachePath != "" {
			cached, err := valuation.NewCachedEstimator(cfg.ValuationCachePath, est)
			if err != nil {
				return nil, err
			}
			est = cached
		}
		estimators = append(estimators, est)
	} else {
		log.Warn("no valuation API credentials; falling back to adjudged values")
	}
	estimators = append(estimators, valuation.AdjudgedFallback{})
	return valuation.NewChain(log, estimators...), nil
}
