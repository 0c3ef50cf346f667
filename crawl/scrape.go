// Package crawl orchestrates scraping of medicine pages: robots checks,
// rate limiting, fetching with retry, extraction, and writing clean JSON.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/bloom"
)

// Seen-filter sizing for batch deduplication.
const (
	seenExpectedURLs      = 10000
	seenFalsePositiveRate = 0.01
)

// Scraper turns a list of resources (URLs or local HTML files) into clean
// JSON documents.
type Scraper struct {
	Fetcher   apotheek.Fetcher
	Robots    apotheek.RobotsChecker
	Extractor apotheek.Extractor
	Writer    apotheek.DocumentWriter

	// Limiter spaces requests per host. Nil disables rate limiting.
	Limiter *Limiter

	// UserAgent is the agent name used for robots.txt checks.
	UserAgent string

	// Concurrency bounds the number of resources processed at once.
	// Zero or negative means sequential.
	Concurrency int

	// RetryDelays overrides the fetch backoff schedule. Nil uses the
	// default 1s/2s/4s.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// Options control how each resource is scraped.
type Options struct {
	// IncludeChildren also fetches the derived kindertekst page for URLs.
	IncludeChildren bool

	// ChildrenInline appends children sections to the adult document with
	// a "[Kinderen] " title prefix instead of writing a separate file.
	ChildrenInline bool
}

// Result holds the outcome of a scrape run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressEvent reports progress during a scrape run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Resource  string
	Error     error
}

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

type scrapeResult struct {
	resource string
	err      error
}

// ScrapeAll processes each resource: robots check, rate limit, fetch with
// retry, extract, write. Duplicate URLs within the batch are skipped. The
// progress callback, if provided, receives events as scraping proceeds.
func (s *Scraper) ScrapeAll(ctx context.Context, resources []string, opts Options, progress ProgressFunc) (*Result, error) {
	var result Result

	seen := bloom.NewSeenFilter(seenExpectedURLs, seenFalsePositiveRate)
	unique := make([]string, 0, len(resources))
	for _, res := range resources {
		if seen.Seen(res) {
			result.Skipped++
			if progress != nil {
				progress(ProgressEvent{Type: ProgressSkipped, Resource: res})
			}
			continue
		}
		unique = append(unique, res)
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	resultCh := make(chan scrapeResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, res := range unique {
			res := res
			g.Go(func() error {
				resultCh <- scrapeResult{resource: res, err: s.scrapeResource(gctx, res, opts)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for r := range resultCh {
		completed.Add(1)
		if r.err != nil {
			result.Failed++
			if s.Logger != nil {
				s.Logger.Error("scrape failed",
					slog.String("resource", r.resource),
					slog.String("error", r.err.Error()))
			}
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					Resource:  r.resource,
					Error:     r.err,
				})
			}
			continue
		}

		result.Saved++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Resource:  r.resource,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &result, nil
}

// scrapeResource handles one resource, including the optional children page.
func (s *Scraper) scrapeResource(ctx context.Context, resource string, opts Options) error {
	doc, err := s.loadDocument(ctx, resource)
	if err != nil {
		return err
	}
	base := apotheek.BaseName(resource)

	if opts.IncludeChildren && apotheek.IsURL(resource) {
		childURL, err := ChildrenURL(resource)
		if err == nil {
			childDoc, childErr := s.loadDocument(ctx, childURL)
			switch {
			case childErr != nil:
				// No children text for this medicine. Save adults only.
				if s.Logger != nil {
					s.Logger.Debug("no children page",
						slog.String("url", childURL),
						slog.String("error", childErr.Error()))
				}
			case opts.ChildrenInline:
				for i := range childDoc.Sections {
					childDoc.Sections[i].Title = "[Kinderen] " + childDoc.Sections[i].Title
				}
				doc.Sections = append(doc.Sections, childDoc.Sections...)
			default:
				if err := s.Writer.WriteDocument(ctx, doc, base); err != nil {
					return err
				}
				return s.Writer.WriteDocument(ctx, childDoc, base+"_kindertekst")
			}
		}
	}

	return s.Writer.WriteDocument(ctx, doc, base)
}

// loadDocument fetches or reads a resource and extracts it.
func (s *Scraper) loadDocument(ctx context.Context, resource string) (*apotheek.Document, error) {
	html, err := s.resourceHTML(ctx, resource)
	if err != nil {
		return nil, err
	}
	return s.Extractor.Extract(html, resource)
}

// resourceHTML returns the raw HTML for a resource. Local files are read
// directly; URLs go through robots checks, rate limiting, and retry.
func (s *Scraper) resourceHTML(ctx context.Context, resource string) (string, error) {
	if !apotheek.IsURL(resource) {
		data, err := os.ReadFile(resource)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if s.Robots != nil && !s.Robots.Allowed(ctx, resource, s.UserAgent) {
		return "", apotheek.Errorf(apotheek.EUNAVAILABLE, "robots.txt disallows %s", resource)
	}

	if s.Limiter != nil {
		u, err := url.Parse(resource)
		if err != nil {
			return "", apotheek.Errorf(apotheek.EINVALID, "invalid url %q", resource)
		}
		if err := s.Limiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, resource, s.Fetcher.Fetch, s.Logger, delays)
}
