package main

import (
	"fmt"
	"regexp"

	"github.com/semdegroot/apotheek"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	var urlFilter *apotheek.URLFilter
	if len(c.Filter) > 0 {
		urlFilter = &apotheek.URLFilter{}
		for _, pattern := range c.Filter {
			re, err := regexp.Compile(pattern)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: invalid filter pattern %q: %v\n", pattern, err)
				return err
			}
			urlFilter.Include = append(urlFilter.Include, re)
		}
	}

	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.URL, urlFilter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}

	for _, u := range urls {
		fmt.Fprintln(deps.Stdout, u)
	}
	return nil
}
