package pipeline

import (
	"context"
	"strings"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/eol-cli/internal/model"
)

// mockScraper implements Scraper for testing. Rows are keyed by the vendor
// slug at the end of the section URL.
type mockScraper struct {
	mu      sync.Mutex
	rows    map[string][]model.Row
	failing map[string]bool
	urls    []string
}

func (m *mockScraper) Scrape(_ context.Context, sectionURL string) ([]model.Row, error) {
	m.mu.Lock()
	m.urls = append(m.urls, sectionURL)
	m.mu.Unlock()

	slug := sectionURL[strings.LastIndex(sectionURL, "/")+1:]
	if m.failing[slug] {
		return nil, eris.Errorf("fetcher: unexpected status 500 from %s", sectionURL)
	}
	return m.rows[slug], nil
}
