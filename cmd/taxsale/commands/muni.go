package commands

import (
	"github.com/spf13/cobra"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/scraper"
	"taxsale-agent/pkg/config"
)

var (
	muniConfig *string
	muniOut    *string
)

func init() {
	muniConfig = muniCmd.Flags().String("config", "muni.yaml", "Municipal site config (selectors and pagination).")
	muniOut = muniCmd.Flags().String("out", "muni_liens.csv", "Path to write the municipal lien CSV to.")
	rootCmd.AddCommand(muniCmd)
}

var muniCmd = &cobra.Command{
	Use:   "muni --config <muni.yaml> [--out <muni_liens.csv>]",
	Short: "Scrapes a municipal lien site described by a YAML config.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		log := logger.New()

		siteCfg, err := scraper.LoadMunicipalConfig(*muniConfig)
		if err != nil {
			return err
		}

		client := scraper.NewClient(cfg.RequestsPerSecond)
		defer client.Close()

		muni := scraper.NewMunicipalScraper(client, siteCfg, log)
		recs, err := muni.Scrape(cmd.Context())
		if err != nil {
			return err
		}

		if err := export.WriteLiens(*muniOut, recs); err != nil {
			return err
		}
		log.Info("municipal scrape complete", "liens", len(recs), "path", *muniOut)
		return nil
	},
}
