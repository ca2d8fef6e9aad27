// Package discovery resolves the set of vendor sections to harvest, from the
// site's sitemap or from a fallback list when the sitemap is unusable.
package discovery

import (
	"context"
	"encoding/xml"
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/sells-group/eol-cli/internal/fetcher"
)

// ErrNoVendors is returned when the sitemap parses cleanly but contains no
// URLs under the lifecycle base path.
var ErrNoVendors = eris.New("discovery: no vendor sections in sitemap")

type urlSet struct {
	XMLName xml.Name     `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 urlset"`
	URLs    []sitemapURL `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 url"`
}

type sitemapURL struct {
	Loc string `xml:"http://www.sitemaps.org/schemas/sitemap/0.9 loc"`
}

// Discoverer extracts vendor slugs from the site's sitemap.
type Discoverer struct {
	fetcher    fetcher.Fetcher
	sitemapURL string
	basePath   string
}

// NewDiscoverer creates a Discoverer for the given sitemap URL and section
// base path.
func NewDiscoverer(f fetcher.Fetcher, sitemapURL, basePath string) *Discoverer {
	return &Discoverer{fetcher: f, sitemapURL: sitemapURL, basePath: basePath}
}

// Discover fetches the sitemap and returns the sorted set of vendor slugs
// found under the base path. Returns ErrNoVendors when the sitemap has no
// matching URLs.
func (d *Discoverer) Discover(ctx context.Context) ([]string, error) {
	body, err := d.fetcher.Fetch(ctx, d.sitemapURL)
	if err != nil {
		return nil, eris.Wrap(err, "discovery: fetch sitemap")
	}

	decoder := xml.NewDecoder(strings.NewReader(body))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "discovery: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var set urlSet
	if err := decoder.Decode(&set); err != nil {
		return nil, eris.Wrap(err, "discovery: parse sitemap")
	}

	vendors := vendorSlugs(set.URLs, d.basePath)
	if len(vendors) == 0 {
		return nil, ErrNoVendors
	}
	return vendors, nil
}

// vendorSlugs reduces sitemap locations to the unique first path segments
// under basePath. Deeper segments (pagination pages, detail pages) collapse
// onto their vendor.
func vendorSlugs(urls []sitemapURL, basePath string) []string {
	seen := make(map[string]struct{})
	for _, u := range urls {
		loc := strings.TrimSpace(u.Loc)
		if !strings.HasPrefix(loc, basePath) {
			continue
		}
		rest := strings.TrimLeft(strings.TrimPrefix(loc, basePath), "/")
		slug, _, _ := strings.Cut(rest, "/")
		if slug == "" {
			continue
		}
		seen[slug] = struct{}{}
	}

	vendors := make([]string, 0, len(seen))
	for v := range seen {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)
	return vendors
}
