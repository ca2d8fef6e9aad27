package pipeline

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/eol-cli/internal/model"
)

// Scraper walks one vendor section. Satisfied by scrape.VendorScraper.
type Scraper interface {
	Scrape(ctx context.Context, sectionURL string) ([]model.Row, error)
}

// Harvester runs the per-vendor scrape across all vendors and tags every
// row with its vendor.
type Harvester struct {
	scraper     Scraper
	basePath    string
	concurrency int
}

// NewHarvester creates a Harvester. Concurrency below 1 means sequential.
func NewHarvester(s Scraper, basePath string, concurrency int) *Harvester {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Harvester{scraper: s, basePath: basePath, concurrency: concurrency}
}

type vendorResult struct {
	rows []model.Row
	err  error
}

// Harvest scrapes every vendor in sorted order and returns the tagged rows
// in vendor-major, page-major order. A vendor failure is recorded in the
// stats and the harvest moves on; it never aborts the run. Pagination
// within a vendor stays sequential, so results are slot-indexed by vendor
// to keep output order independent of scheduling.
func (h *Harvester) Harvest(ctx context.Context, vendors []string) ([]model.VendorRow, *model.RunStats) {
	sorted := append([]string(nil), vendors...)
	sort.Strings(sorted)

	stats := &model.RunStats{Vendors: sorted}
	results := make([]vendorResult, len(sorted))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for i, vendor := range sorted {
		g.Go(func() error {
			sectionURL := h.basePath + vendor
			zap.L().Info("harvest: scraping vendor",
				zap.String("vendor", vendor),
				zap.String("url", sectionURL),
			)
			rows, err := h.scraper.Scrape(gCtx, sectionURL)
			results[i] = vendorResult{rows: rows, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var tagged []model.VendorRow
	for i, vendor := range sorted {
		res := results[i]
		switch {
		case res.err != nil:
			stats.FailedVendors = append(stats.FailedVendors, vendor)
			zap.L().Warn("harvest: vendor failed",
				zap.String("vendor", vendor),
				zap.Error(res.err),
			)
		case len(res.rows) == 0:
			stats.EmptyVendors = append(stats.EmptyVendors, vendor)
			zap.L().Info("harvest: no rows for vendor", zap.String("vendor", vendor))
		default:
			for _, row := range res.rows {
				tagged = append(tagged, model.VendorRow{Vendor: vendor, Row: row})
			}
			zap.L().Info("harvest: vendor scraped",
				zap.String("vendor", vendor),
				zap.Int("rows", len(res.rows)),
			)
		}
	}

	stats.RowsScraped = len(tagged)
	return tagged, stats
}
