package fetcher

import (
	"context"
)

// Fetcher defines the interface for downloading pages from the target site.
type Fetcher interface {
	// Fetch downloads the URL and returns the response body as a string.
	Fetch(ctx context.Context, url string) (string, error)

	// FetchPage downloads one page of a paginated listing. Page 1 is the
	// bare URL; pages above 1 add a page query parameter.
	FetchPage(ctx context.Context, url string, page int) (string, error)
}
