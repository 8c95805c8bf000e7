package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/retrieval"
)

// Run executes the warm command.
func (c *WarmCmd) Run(deps *Dependencies) error {
	queries := c.Queries
	if c.File != "" {
		lines, err := readLines(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		queries = append(queries, lines...)
	}
	if len(queries) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no questions given. Pass them as arguments or with --file.")
		return aivi.Errorf(aivi.EINVALID, "no questions given")
	}

	progress := func(event retrieval.ProgressEvent) {
		switch event.Type {
		case retrieval.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Answering %d questions\n", event.Total)
		case retrieval.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s (%s)\n", event.Completed, event.Total, event.Query, event.Source)
		case retrieval.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] skip %s: %s\n", event.Completed, event.Total, event.Query, aivi.ErrorMessage(event.Error))
		}
	}

	result, err := deps.Warmer.Warm(deps.Ctx, queries, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Found %d, missed %d, failed %d\n", result.Found, result.Missed, result.Failed)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
