package commands

import (
	"github.com/spf13/cobra"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/listing"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/scraper"
	"taxsale-agent/pkg/config"
)

var (
	fetchOut *string
	fetchURL *string
)

func init() {
	fetchOut = fetchCmd.Flags().String("out", "properties.csv", "Path to write the property CSV to.")
	fetchURL = fetchCmd.Flags().String("url", "", "Listing URL (defaults to LISTING_URL).")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [--out <properties.csv>]",
	Short: "Fetches the tax-sale listing and writes property records.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.New()
		log := logger.New()

		url := *fetchURL
		if url == "" {
			url = cfg.ListingURL
		}

		client := scraper.NewClient(cfg.RequestsPerSecond)
		defer client.Close()

		adapter := listing.NewHarrisAdapter(client, url, cfg.DefaultState, log)
		recs, err := adapter.Fetch(cmd.Context())
		if err != nil {
			log.Fatal("failed to fetch listing", err, "url", url)
		}
		if err := export.WriteProperties(*fetchOut, recs); err != nil {
			log.Fatal("failed to write properties", err, "path", *fetchOut)
		}
		log.Info("listing fetched", "properties", len(recs), "path", *fetchOut)
	},
}
