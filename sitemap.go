package apotheek

import (
	"context"
	"regexp"
)

// URLFilter restricts discovered URLs. A URL passes when it matches at
// least one Include pattern (or Include is empty).
type URLFilter struct {
	Include []*regexp.Regexp
}

// Match reports whether the URL passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil || len(f.Include) == 0 {
		return true
	}
	for _, re := range f.Include {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

// SitemapService discovers page URLs from a site's sitemap. Used as an
// alternative to a hand-maintained URL list when scraping in bulk.
type SitemapService interface {
	// DiscoverURLs finds all URLs reachable from the site's sitemap(s).
	// When baseURL has a non-root path, only URLs under that path prefix
	// are returned. Returns an empty slice when no sitemap exists.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}
