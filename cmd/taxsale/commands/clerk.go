package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxsale-agent/internal/export"
	"taxsale-agent/internal/logger"
	"taxsale-agent/internal/models"
	"taxsale-agent/internal/scraper"
	"taxsale-agent/pkg/config"
)

var (
	clerkIn         *string
	clerkOut        *string
	clerkQueryField *string
	clerkLimit      *int
)

func init() {
	clerkIn = clerkCmd.Flags().String("in", "properties.csv", "Property CSV to build search queries from.")
	clerkOut = clerkCmd.Flags().String("out", "clerk_liens.csv", "Path to write the clerk lien CSV to.")
	clerkQueryField = clerkCmd.Flags().String("query-field", "address", "Property field to search by: address or account.")
	clerkLimit = clerkCmd.Flags().Int("limit", 0, "Search at most N properties (0 = all).")
	rootCmd.AddCommand(clerkCmd)
}

var clerkCmd = &cobra.Command{
	Use:   "clerk [--in <properties.csv>] [--out <clerk_liens.csv>]",
	Short: "Searches the county clerk records for liens on each property.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		log := logger.New()

		props, err := export.ReadProperties(*clerkIn)
		if err != nil {
			return err
		}
		queries, err := buildQueries(props, *clerkQueryField)
		if err != nil {
			return err
		}
		if *clerkLimit > 0 && len(queries) > *clerkLimit {
			queries = queries[:*clerkLimit]
		}
		if len(queries) == 0 {
			log.Warn("no usable search queries in input; writing empty lien file", "field", *clerkQueryField)
		}

		client := scraper.NewClient(cfg.RequestsPerSecond)
		defer client.Close()

		clerk := scraper.NewClerkScraper(client, cfg.ClerkSearchURL, cfg.ClerkMaxPages, log)
		recs := clerk.SearchAll(cmd.Context(), queries)

		if err := export.WriteLiens(*clerkOut, recs); err != nil {
			return err
		}
		log.Info("clerk search complete", "queries", len(queries), "liens", len(recs), "path", *clerkOut)
		return nil
	},
}

// buildQueries extracts the per-property search strings, skipping
// properties where the chosen field is blank. The field doubles as the
// lien rows' property key, so enrich must join on the same field.
func buildQueries(props []models.PropertyRecord, field string) ([]string, error) {
	var queries []string
	seen := make(map[string]bool)
	for _, p := range props {
		var q string
		switch field {
		case "address":
			q = p.Address
		case "account":
			q = p.AccountNo
		default:
			return nil, fmt.Errorf("unknown query field %q (want address or account)", field)
		}
		if q == "" || seen[q] {
			continue
		}
		seen[q] = true
		queries = append(queries, q)
	}
	return queries, nil
}
