package main

import (
	"fmt"

	"github.com/semdegroot/apotheek"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, c.Question)
	if apotheek.ErrorCode(err) == apotheek.ENOTFOUND {
		fmt.Fprintln(deps.Stderr, "Geen context gevonden in de index. Bouw eerst de index met 'apotheek index'.")
		return err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
		return err
	}

	printAnswer(deps, answer)
	return nil
}

// printAnswer writes an answer and its source list.
func printAnswer(deps *Dependencies, answer *apotheek.Answer) {
	fmt.Fprintln(deps.Stdout, answer.Text)
	if len(answer.Sources) == 0 {
		return
	}
	fmt.Fprintln(deps.Stdout, "\nBRONNEN:")
	for i, s := range answer.Sources {
		fmt.Fprintf(deps.Stdout, "[%d] %s (%s)\n", i+1, s.Place, s.URL)
	}
}
