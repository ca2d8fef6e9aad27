package scrape

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/eol-cli/internal/fetcher"
	"github.com/sells-group/eol-cli/internal/model"
)

// VendorScraper walks the paginated listing of one vendor section.
type VendorScraper struct {
	fetcher  fetcher.Fetcher
	maxPages int
}

// NewVendorScraper creates a VendorScraper that reads at most maxPages pages
// per section.
func NewVendorScraper(f fetcher.Fetcher, maxPages int) *VendorScraper {
	if maxPages < 1 {
		maxPages = 1
	}
	return &VendorScraper{fetcher: f, maxPages: maxPages}
}

// Scrape fetches section pages in order until a page yields no rows or the
// page cap is reached. Row order follows page order. A fetch error aborts
// the section; rows from earlier pages are discarded.
func (s *VendorScraper) Scrape(ctx context.Context, sectionURL string) ([]model.Row, error) {
	var rows []model.Row
	for page := 1; page <= s.maxPages; page++ {
		html, err := s.fetcher.FetchPage(ctx, sectionURL, page)
		if err != nil {
			return nil, eris.Wrapf(err, "scrape: page %d of %s", page, sectionURL)
		}

		pageRows, err := ExtractRows(html)
		if err != nil {
			return nil, err
		}
		if len(pageRows) == 0 {
			break
		}

		zap.L().Debug("scrape: page fetched",
			zap.String("url", sectionURL),
			zap.Int("page", page),
			zap.Int("rows", len(pageRows)),
		)
		rows = append(rows, pageRows...)
	}
	return rows, nil
}
