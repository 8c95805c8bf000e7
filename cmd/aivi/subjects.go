package main

import (
	"fmt"

	"github.com/fwojciec/aivi"
)

// Run executes the subjects command.
func (c *SubjectsCmd) Run(deps *Dependencies) error {
	subjects, err := deps.Knowledge.Categories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	if len(subjects) == 0 {
		fmt.Fprintln(deps.Stdout, "No subjects found. Use 'aivi seed' to load the built-in knowledge.")
		return nil
	}

	for _, subject := range subjects {
		recs, err := deps.Knowledge.FindRecords(deps.Ctx, aivi.RecordFilter{Category: &subject})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %d topics\n", subject, len(recs))
	}

	return nil
}
