package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/semdegroot/apotheek"
)

// Run executes the interactive chat loop. It reads questions from stdin
// until EOF or an exit command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	fmt.Fprintln(deps.Stdout, "Apotheek chat. Typ een vraag, of 'exit' om te stoppen.")

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		fmt.Fprint(deps.Stdout, "\nVraag: ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			break
		}

		answer, err := deps.Asker.Ask(deps.Ctx, question)
		switch {
		case apotheek.ErrorCode(err) == apotheek.ENOTFOUND:
			fmt.Fprintln(deps.Stdout, "Geen context gevonden in de index voor deze vraag.")
			continue
		case err != nil:
			fmt.Fprintf(deps.Stderr, "error: %s\n", apotheek.ErrorMessage(err))
			continue
		}

		fmt.Fprintln(deps.Stdout)
		printAnswer(deps, answer)
	}
	return scanner.Err()
}
