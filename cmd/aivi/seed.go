package main

import (
	"fmt"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/yaml"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	var seed *yaml.Seed
	var err error
	if c.Path == "" {
		seed, err = yaml.DefaultSeed()
	} else {
		seed, err = yaml.LoadSeed(c.Path)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	n, err := yaml.Import(deps.Ctx, deps.Knowledge, seed)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", aivi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d of %d records\n", n, len(seed.Records))
	return nil
}
