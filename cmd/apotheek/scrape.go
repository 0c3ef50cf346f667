package main

import (
	"fmt"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	opts := crawl.Options{
		IncludeChildren: c.IncludeChildren,
		ChildrenInline:  c.ChildrenInline,
	}
	return runScrape(deps, c.Inputs, opts)
}

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := crawl.LoadURLList(c.URLs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}
	if len(urls) == 0 {
		return apotheek.Errorf(apotheek.EINVALID, "no URLs in %s", c.URLs)
	}

	opts := crawl.Options{
		IncludeChildren: c.IncludeChildren,
		ChildrenInline:  c.ChildrenInline,
	}
	return runScrape(deps, urls, opts)
}

// runScrape drives the scraper over the resources with progress output.
func runScrape(deps *Dependencies, resources []string, opts crawl.Options) error {
	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d pages\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Resource)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  skip duplicate %s\n", event.Resource)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] FAIL %s: %v\n", event.Completed, event.Total, event.Resource, event.Error)
		}
	}

	result, err := deps.Scraper.ScrapeAll(deps.Ctx, resources, opts, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d saved, %d failed, %d skipped\n",
		result.Saved, result.Failed, result.Skipped)
	if result.Failed > 0 {
		return apotheek.Errorf(apotheek.EINTERNAL, "%d pages failed", result.Failed)
	}
	return nil
}
