package mock

import (
	"context"

	"github.com/semdegroot/apotheek"
)

var _ apotheek.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of apotheek.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *apotheek.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *apotheek.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
