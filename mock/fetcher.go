// Package mock provides function-field mock implementations of the domain
// interfaces for use in tests.
package mock

import (
	"context"

	"github.com/semdegroot/apotheek"
)

var _ apotheek.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of apotheek.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ apotheek.RobotsChecker = (*RobotsChecker)(nil)

// RobotsChecker is a mock implementation of apotheek.RobotsChecker.
type RobotsChecker struct {
	AllowedFn func(ctx context.Context, url string, userAgent string) bool
}

func (r *RobotsChecker) Allowed(ctx context.Context, url string, userAgent string) bool {
	return r.AllowedFn(ctx, url, userAgent)
}
