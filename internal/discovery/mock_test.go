package discovery

import (
	"context"
)

// mockFetcher implements fetcher.Fetcher for testing.
type mockFetcher struct {
	body string
	err  error
}

func (m *mockFetcher) Fetch(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.body, nil
}

func (m *mockFetcher) FetchPage(_ context.Context, _ string, _ int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.body, nil
}
