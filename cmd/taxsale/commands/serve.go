package commands

import (
	"github.com/spf13/cobra"

	"taxsale-agent/internal/api"
	"taxsale-agent/internal/logger"
	"taxsale-agent/pkg/config"
)

var serveScored *string

func init() {
	serveScored = serveCmd.Flags().String("scored", "scored.csv", "Scored CSV to serve deals from.")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve [--scored <scored.csv>]",
	Short: "Serves scored deals over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.New()
		log := logger.New()

		router := api.NewRouter(*serveScored, log)
		log.Info("serving deals", "port", cfg.Port, "scored", *serveScored)
		return router.Run(":" + cfg.Port)
	},
}
