package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	jobs, err := deps.Jobs.FindJobs(deps.Ctx, mailscout.JobFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	if len(jobs) == 0 {
		fmt.Fprintln(deps.Stdout, "No jobs found. Use 'mailscout add' to create one.")
		return nil
	}

	for _, j := range jobs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d/%d URLs  %d emails\n",
			j.ID, j.Name, j.Status, j.ProcessedURLs, j.TotalURLs(), len(j.Emails))
	}

	return nil
}
