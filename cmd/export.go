package main

import (
	"errors"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/eol-cli/internal/model"
	"github.com/sells-group/eol-cli/internal/store"
)

var (
	exportRunID  string
	exportOutput string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export stored records without scraping",
	Long: `Export writes the record set of a stored run to a csv or xlsx file
without touching the site. The latest run is exported by default; pass
--run with a full run ID (see "runs list") to pick a specific one.

Examples:
  # Latest run to the configured output path
  eol-cli export

  # Specific run as xlsx
  eol-cli export --run 0c9d0a7e-3f2f-4a1c-9d8e-5b6a7c8d9e0f --format xlsx --output eol.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cmd.Flags().Changed("output") {
			cfg.Output.Path = exportOutput
		}
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = exportFormat
		}
		if err := cfg.Validate("store"); err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		var run *model.Run
		if exportRunID != "" {
			run, err = st.GetRun(ctx, exportRunID)
		} else {
			run, err = st.LatestRun(ctx)
		}
		if err != nil {
			if errors.Is(err, store.ErrRunNotFound) {
				if exportRunID != "" {
					return eris.Errorf("export: run not found: %s", exportRunID)
				}
				return eris.New("export: no stored runs to export")
			}
			return eris.Wrap(err, "export: load run")
		}

		records, err := st.ListRecords(ctx, run.ID)
		if err != nil {
			return eris.Wrap(err, "export: load records")
		}

		if err := exportRecords(records, cfg.Output.Path, cfg.Output.Format); err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("run_id", run.ID),
			zap.Int("records", len(records)),
			zap.String("output", cfg.Output.Path),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run ID to export (default: latest)")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output file path")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "output format: csv or xlsx")
	rootCmd.AddCommand(exportCmd)
}
