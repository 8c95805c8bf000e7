package main

import (
	"fmt"

	"github.com/fwojciec/aivi"
)

// Run executes the sweep command. With a schedule it keeps sweeping until
// the context is canceled.
func (c *SweepCmd) Run(deps *Dependencies) error {
	if c.Schedule == "" {
		n, err := deps.Sweeper.Sweep(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Removed %d cache entries\n", n)
		return nil
	}

	if err := deps.Sweeper.Start(deps.Ctx, c.Schedule); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}
	defer deps.Sweeper.Stop()

	fmt.Fprintf(deps.Stdout, "Sweeping on schedule %q. Press Ctrl+C to stop.\n", c.Schedule)
	<-deps.Ctx.Done()
	return nil
}
