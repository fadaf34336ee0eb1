package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/listing"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/scraper"
	"taxsale-agent/pkg/config"
)

var (
	runOutDir     *string
	runMuniConfig *string
	runScoringCfg *string
	runQueryField *string
	runSkipValue  *bool
)

func init() {
	runOutDir = runCmd.Flags().String("out-dir", ".", "Directory to write the stage CSVs to.")
	runMuniConfig = runCmd.Flags().String("muni-config", "", "Municipal site config; the stage is skipped when empty.")
	runScoringCfg = runCmd.Flags().String("scoring-config", "", "YAML scoring config overriding the defaults.")
	runQueryField = runCmd.Flags().String("query-field", "address", "Property field to search the clerk by: address or account.")
	runSkipValue = runCmd.Flags().Bool("skip-valuation", false, "Skip valuation lookups and score with existing values.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--out-dir <dir>] [--muni-config <muni.yaml>]",
	Short: "Runs the full pipeline: fetch, clerk, muni and enrich.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		log := logger.New()
		ctx := cmd.Context()

		client := scraper.NewClient(cfg.RequestsPerSecond)
		defer client.Close()

		adapter := listing.NewHarrisAdapter(client, cfg.ListingURL, cfg.DefaultState, log)
		props, err := adapter.Fetch(ctx)
		if err != nil {
			return err
		}
		propsPath := filepath.Join(*runOutDir, "properties.csv")
		if err := export.WriteProperties(propsPath, props); err != nil {
			return err
		}
		log.Info("stage complete: fetch", "properties", len(props), "path", propsPath)

		queries, err := buildQueries(props, *runQueryField)
		if err != nil {
			return err
		}
		clerk := scraper.NewClerkScraper(client, cfg.ClerkSearchURL, cfg.ClerkMaxPages, log)
		lienRows := clerk.SearchAll(ctx, queries)
		clerkPath := filepath.Join(*runOutDir, "clerk_liens.csv")
		if err := export.WriteLiens(clerkPath, lienRows); err != nil {
			return err
		}
		log.Info("stage complete: clerk", "liens", len(lienRows), "path", clerkPath)

		if *runMuniConfig != "" {
			siteCfg, err := scraper.LoadMunicipalConfig(*runMuniConfig)
			if err != nil {
				return err
			}
			muni := scraper.NewMunicipalScraper(client, siteCfg, log)
			muniRows, err := muni.Scrape(ctx)
			if err != nil {
				return err
			}
			muniPath := filepath.Join(*runOutDir, "muni_liens.csv")
			if err := export.WriteLiens(muniPath, muniRows); err != nil {
				return err
			}
			log.Info("stage complete: muni", "liens", len(muniRows), "path", muniPath)
			lienRows = append(lienRows, muniRows...)
		} else {
			log.Info("stage skipped: muni (no config given)")
		}

		scored, err := enrichRecords(ctx, cfg, log, props, lienRows, *runScoringCfg, *runSkipValue)
		if err != nil {
			return err
		}
		scoredPath := filepath.Join(*runOutDir, "scored.csv")
		if err := export.WriteScored(scoredPath, scored); err != nil {
			return err
		}
		log.Info("stage complete: enrich", "properties", len(scored), "path", scoredPath)
		return nil
	},
}
