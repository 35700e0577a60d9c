package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	emails, err := deps.Extractor.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	if len(emails) == 0 {
		fmt.Fprintf(deps.Stderr, "No emails found on %s\n", c.URL)
		return nil
	}

	for _, email := range emails {
		fmt.Fprintln(deps.Stdout, email)
	}
	return nil
}
