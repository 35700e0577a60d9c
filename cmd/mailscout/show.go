package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/mailscout"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Job:      %s (%s)\n", job.Name, job.ID)
	fmt.Fprintf(deps.Stdout, "Status:   %s\n", job.Status)
	fmt.Fprintf(deps.Stdout, "Progress: %d/%d URLs (%d%%)\n", job.ProcessedURLs, job.TotalURLs(), job.Progress())
	if !job.Status.Done() {
		fmt.Fprintf(deps.Stdout, "ETA:      %s\n", job.Remaining(deps.now()).Round(time.Second))
	}

	if len(job.Emails) == 0 {
		fmt.Fprintln(deps.Stdout, "Emails:   none yet")
		return nil
	}
	fmt.Fprintf(deps.Stdout, "Emails:   %d\n", len(job.Emails))
	for _, email := range job.Emails {
		fmt.Fprintf(deps.Stdout, "  %s\n", email)
	}
	return nil
}
