package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/eol-cli/internal/discovery"
	"github.com/sells-group/eol-cli/internal/fetcher"
	"github.com/sells-group/eol-cli/internal/model"
	"github.com/sells-group/eol-cli/internal/pipeline"
	"github.com/sells-group/eol-cli/internal/scrape"
	"github.com/sells-group/eol-cli/internal/store"
)

var (
	harvestVendors     []string
	harvestVendorFile  string
	harvestMaxPages    int
	harvestConcurrency int
	harvestOutput      string
	harvestFormat      string
	harvestPreview     int
	harvestNoStore     bool
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Harvest EOL/EOSL lifecycle tables for all vendors",
	Long: `Harvest runs the full pipeline: discover vendor sections from the
sitemap (or take them from --vendors / --vendor-file), scrape each
vendor's paginated lifecycle table, normalize dates to UTC ISO-8601,
deduplicate by (vendor, model), export the result, and record the run
in the store.

Examples:
  # Full run with sitemap discovery
  eol-cli harvest

  # Only two vendors, straight to xlsx, no store
  eol-cli harvest --vendors cisco,dell --format xlsx --output eol.xlsx --no-store

  # Vendors from a file, four at a time
  eol-cli harvest --vendor-file vendors.yaml --concurrency 4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Flags override config.
		if cmd.Flags().Changed("max-pages") {
			cfg.Harvest.MaxPages = harvestMaxPages
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Harvest.Concurrency = harvestConcurrency
		}
		if cmd.Flags().Changed("output") {
			cfg.Output.Path = harvestOutput
		}
		if cmd.Flags().Changed("format") {
			cfg.Output.Format = harvestFormat
		}
		if cmd.Flags().Changed("preview") {
			cfg.Output.PreviewRows = harvestPreview
		}
		if err := cfg.Validate("harvest"); err != nil {
			return err
		}

		f := newSiteFetcher()

		// Vendor selection: explicit flags beat discovery.
		var (
			vendors      []string
			fallbackUsed bool
		)
		switch {
		case len(harvestVendors) > 0:
			vendors = harvestVendors
		case harvestVendorFile != "":
			v, err := discovery.LoadVendorFile(harvestVendorFile)
			if err != nil {
				return err
			}
			vendors = v
		default:
			d := discovery.NewDiscoverer(f, cfg.Site.SitemapURL, cfg.Site.BasePath)
			vendors, fallbackUsed = discovery.DiscoverOrFallback(ctx, d, cfg.Harvest.FallbackVendors)
		}
		if len(vendors) == 0 {
			return eris.New("no vendors to harvest")
		}

		var (
			st  store.Store
			run *model.Run
		)
		if !harvestNoStore {
			s, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return eris.Wrap(err, "migrate store")
			}
			run, err = s.SaveRun(ctx)
			if err != nil {
				return eris.Wrap(err, "save run")
			}
			st = s

			zap.L().Info("run started", zap.String("run_id", run.ID))
		}

		// Fatal errors past this point mark the run failed before
		// propagating, so it never sits in "running" forever.
		failRun := func(cause error) error {
			if st != nil {
				run.Status = model.RunStatusFailed
				run.Error = cause.Error()
				if err := st.UpdateRun(ctx, run); err != nil {
					zap.L().Warn("mark run failed", zap.Error(err))
				}
			}
			return cause
		}

		scraper := scrape.NewVendorScraper(f, cfg.Harvest.MaxPages)
		h := pipeline.NewHarvester(scraper, cfg.Site.BasePath, cfg.Harvest.Concurrency)

		rows, stats := h.Harvest(ctx, vendors)
		stats.FallbackUsed = fallbackUsed

		records := pipeline.Dedup(pipeline.Normalize(rows))
		stats.Records = len(records)

		if st != nil {
			if err := st.ReplaceRecords(ctx, run.ID, records); err != nil {
				return failRun(eris.Wrap(err, "store records"))
			}
		}

		if err := exportRecords(records, cfg.Output.Path, cfg.Output.Format); err != nil {
			return failRun(err)
		}

		if cfg.Output.PreviewRows > 0 {
			pipeline.RenderPreview(os.Stdout, records, cfg.Output.PreviewRows)
		}

		zap.L().Info("harvest complete",
			zap.Int("vendors", len(stats.Vendors)),
			zap.Int("failed_vendors", len(stats.FailedVendors)),
			zap.Int("rows_scraped", stats.RowsScraped),
			zap.Int("records", stats.Records),
			zap.Bool("fallback_used", stats.FallbackUsed),
			zap.String("output", cfg.Output.Path),
		)

		if st != nil {
			run.Status = model.RunStatusComplete
			run.Stats = stats
			if err := st.UpdateRun(ctx, run); err != nil {
				return eris.Wrap(err, "update run")
			}
		}

		return nil
	},
}

func init() {
	harvestCmd.Flags().StringSliceVar(&harvestVendors, "vendors", nil, "comma-separated vendor slugs (skips discovery)")
	harvestCmd.Flags().StringVar(&harvestVendorFile, "vendor-file", "", "YAML file with a vendors list (skips discovery)")
	harvestCmd.Flags().IntVar(&harvestMaxPages, "max-pages", 0, "page cap per vendor")
	harvestCmd.Flags().IntVar(&harvestConcurrency, "concurrency", 0, "vendors scraped in parallel")
	harvestCmd.Flags().StringVar(&harvestOutput, "output", "", "output file path")
	harvestCmd.Flags().StringVar(&harvestFormat, "format", "", "output format: csv or xlsx")
	harvestCmd.Flags().IntVar(&harvestPreview, "preview", 0, "records to preview on stdout, 0 disables")
	harvestCmd.Flags().BoolVar(&harvestNoStore, "no-store", false, "skip recording the run in the store")
	rootCmd.AddCommand(harvestCmd)
}

// newSiteFetcher builds the shared rate-limited HTTP fetcher from site config.
func newSiteFetcher() *fetcher.HTTPFetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Headers:            fetcher.BrowserHeaders(cfg.Site.UserAgent, cfg.Site.Referer),
		Timeout:            time.Duration(cfg.Site.TimeoutSecs) * time.Second,
		InsecureSkipVerify: cfg.Site.InsecureSkipVerify,
		RateLimit:          rate.Limit(cfg.Site.RateLimit),
	})
}

// exportRecords writes records to path in the requested format.
func exportRecords(records []model.Record, path, format string) error {
	switch format {
	case "csv":
		return pipeline.ExportCSV(records, path)
	case "xlsx":
		return pipeline.ExportXLSX(records, path)
	default:
		return eris.Errorf("unsupported output format: %s", format)
	}
}
