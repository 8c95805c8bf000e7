package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/aivi"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	question := strings.Join(c.Question, " ")

	answer, err := deps.Answers.Search(deps.Ctx, question, deps.Strategy)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	if !answer.Found() {
		fmt.Fprintf(deps.Stderr, "error: no answer found for %q.\n", question)
		for _, se := range answer.Errors {
			fmt.Fprintf(deps.Stderr, "  %s: %s\n", se.Stage, aivi.ErrorMessage(se.Err))
		}
		return aivi.Errorf(aivi.ENOTFOUND, "no answer found for %q", question)
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	for _, ref := range answer.References {
		fmt.Fprintf(deps.Stdout, "  - %s %s\n", ref.Title, ref.URL)
	}
	fmt.Fprintf(deps.Stderr, "source: %s\n", answer.Source)
	return nil
}
