package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	if c.Output == "" {
		if err := fs.WriteEmailsCSV(deps.Stdout, job.Emails); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		return nil
	}

	if err := fs.ExportEmails(c.Output, job.Emails); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stderr, "Exported %d emails to %s\n", len(job.Emails), c.Output)
	return nil
}
