package fetcher

import (
	"context"
	"crypto/tls"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	Headers            map[string]string
	Timeout            time.Duration
	InsecureSkipVerify bool
	RateLimit          rate.Limit
	Burst              int
}

// BrowserHeaders returns the header set sent with every request. The target
// site serves a reduced page to clients without a browser-like fingerprint,
// so these mimic a desktop Chrome session.
func BrowserHeaders(userAgent, referer string) map[string]string {
	return map[string]string{
		"User-Agent":                userAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7",
		"Accept-Language":           "en-US,en;q=0.9",
		"Referer":                   referer,
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "same-origin",
		"Sec-Fetch-User":            "?1",
		"Cache-Control":             "max-age=0",
	}
}

// HTTPFetcher implements Fetcher using resty with a shared rate limiter.
// Requests are not retried; callers decide what a failed fetch means.
type HTTPFetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 4
	}
	if opts.Burst == 0 {
		opts.Burst = 1
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	if len(opts.Headers) > 0 {
		client.SetHeaders(opts.Headers)
	}
	if opts.InsecureSkipVerify {
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec
		zap.L().Debug("fetcher: tls certificate verification disabled")
	}

	return &HTTPFetcher{
		client:  client,
		limiter: rate.NewLimiter(opts.RateLimit, opts.Burst),
	}
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string, page int) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "fetcher: rate limiter wait")
	}

	req := f.client.R().SetContext(ctx)
	if page > 1 {
		req.SetQueryParam("page", strconv.Itoa(page))
	}

	res, err := req.Get(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "fetcher: get %s", rawURL)
	}
	if res.IsError() {
		return "", eris.Errorf("fetcher: unexpected status %d from %s", res.StatusCode(), res.Request.URL)
	}

	return res.String(), nil
}

// Fetch downloads the URL and returns the response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	return f.get(ctx, rawURL, 1)
}

// FetchPage downloads one page of a paginated listing. Page 1 requests the
// bare URL so it matches what a browser sees on first load.
func (f *HTTPFetcher) FetchPage(ctx context.Context, rawURL string, page int) (string, error) {
	return f.get(ctx, rawURL, page)
}
