package apotheek

import "context"

// Fetcher retrieves raw HTML from URLs. apotheek.nl is server-rendered,
// so implementations do not need JavaScript execution.
type Fetcher interface {
	// Fetch performs a GET request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// RobotsChecker answers whether a URL may be fetched for a user agent,
// per the site's robots.txt.
type RobotsChecker interface {
	Allowed(ctx context.Context, url string, userAgent string) bool
}
