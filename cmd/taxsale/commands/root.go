// Package commands defines the taxsale CLI: the pipeline stages as
// subcommands plus the deals API server.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taxsale",
	Short: "taxsale scrapes tax-sale listings, classifies liens and scores deals.",
	Long: `taxsale runs a tax-sale deal pipeline in four stages: fetch the
listing, scrape clerk lien records, scrape municipal lien pages, and
enrich properties with valuations and deal scores. Each stage reads and
writes CSV so stages can run independently or be composed with run.`,
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
