package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/eol-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "eol-cli",
	Short: "EOL/EOSL product lifecycle harvester",
	Long:  "Discovers vendor lifecycle sections from the site's sitemap, scrapes paginated EOL/EOSL tables, normalizes dates to UTC, deduplicates by (vendor, model), and exports the result.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
