package main

import (
	"fmt"

	"github.com/fwojciec/aivi"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	records, err := deps.Knowledge.CountRecords(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}
	subjects, err := deps.Knowledge.Categories(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}
	entries, err := deps.Cache.CountEntries(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Knowledge records: %d\n", records)
	fmt.Fprintf(deps.Stdout, "Subjects: %d\n", len(subjects))
	fmt.Fprintf(deps.Stdout, "Cached answers: %d\n", entries)

	if c.Top <= 0 || entries == 0 {
		return nil
	}
	top, err := deps.Cache.FindEntries(deps.Ctx, aivi.CacheFilter{SortBy: aivi.SortByAccessCount, Limit: c.Top})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, "Most used:")
	for _, e := range top {
		fmt.Fprintf(deps.Stdout, "  %4d  %s  (%s)\n", e.AccessCount, e.QueryText, e.Source)
	}
	return nil
}
