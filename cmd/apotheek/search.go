package main

import (
	"fmt"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/groq"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Search.Search(deps.Ctx, c.Query, apotheek.SearchOptions{
		Limit:    c.K,
		MinScore: c.MinScore,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results. Is the index built?")
		return nil
	}

	for i, r := range results {
		fmt.Fprintf(deps.Stdout, "%d. [%.3f] %s\n", i+1, r.Score, groq.Place(&r.Chunk))
		fmt.Fprintf(deps.Stdout, "   %s\n", r.Chunk.RawText)
		if r.Chunk.URL != "" {
			fmt.Fprintf(deps.Stdout, "   %s\n", r.Chunk.URL)
		}
	}
	return nil
}
