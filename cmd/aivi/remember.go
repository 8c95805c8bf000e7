package main

import (
	"fmt"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/retrieval"
)

// Run executes the remember command.
func (c *RememberCmd) Run(deps *Dependencies) error {
	category := c.Category
	if category == "" {
		category = deps.Learner.Category(c.Question)
	}
	keywords := c.Keywords
	if len(keywords) == 0 {
		keywords = retrieval.Keywords(c.Question)
	}

	rec := &aivi.KnowledgeRecord{
		Category:   category,
		Question:   c.Question,
		Answer:     c.Answer,
		Keywords:   keywords,
		Source:     aivi.RecordSourceUser,
		Confidence: aivi.DefaultUserConfidence,
	}
	if err := deps.Knowledge.CreateRecord(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Remembered %q under %s (%s)\n", rec.Question, rec.Category, rec.ID)
	return nil
}
