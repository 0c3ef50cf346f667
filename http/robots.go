package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/temoto/robotstxt"

	"github.com/semdegroot/apotheek"
)

// Ensure RobotsCache implements apotheek.RobotsChecker at compile time.
var _ apotheek.RobotsChecker = (*RobotsCache)(nil)

// RobotsCache checks robots.txt permission per URL, caching the parsed
// policy per host. An unreachable or missing robots.txt (status >= 400,
// network error) falls back to "allowed", the friendly interpretation the
// site convention expects.
type RobotsCache struct {
	client *http.Client

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData // key: scheme://host
}

// NewRobotsCache creates a RobotsCache using the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewRobotsCache(client *http.Client) *RobotsCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsCache{
		client: client,
		cache:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the user agent may fetch the URL. Unparseable
// URLs are allowed; the fetch itself will surface the real error.
func (r *RobotsCache) Allowed(ctx context.Context, rawURL string, userAgent string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := r.policy(ctx, u)
	if data == nil {
		return true
	}
	return data.TestAgent(u.Path, userAgent)
}

func (r *RobotsCache) policy(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	r.mu.Lock()
	data, ok := r.cache[key]
	r.mu.Unlock()
	if ok {
		return data
	}

	data = r.fetch(ctx, key+"/robots.txt")

	r.mu.Lock()
	r.cache[key] = data
	r.mu.Unlock()
	return data
}

// fetch retrieves and parses a robots.txt. Returns nil (allow everything)
// on any failure.
func (r *RobotsCache) fetch(ctx context.Context, robotsURL string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil
	}
	return data
}
