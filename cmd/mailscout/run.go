package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/extract"
	"github.com/gofrs/flock"
)

// Run executes the run command. Only one run may hold the lock at a time.
func (c *RunCmd) Run(deps *Dependencies) error {
	lock := flock.New(deps.LockPath)
	locked, err := lock.TryLock()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		fmt.Fprintf(deps.Stderr, "error: another run is in progress\n")
		return mailscout.Errorf(mailscout.ECONFLICT, "another run is in progress")
	}
	defer lock.Unlock()

	runner := *deps.Runner
	if c.BatchSize > 0 {
		runner.BatchSize = c.BatchSize
	}
	if c.Jobs > 0 {
		runner.Concurrency = c.Jobs
	}

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "[%s] starting at %d/%d URLs\n", event.JobID, event.Completed, event.Total)
		case extract.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%s] %d/%d %s: %d emails\n", event.JobID, event.Completed, event.Total, event.URL, len(event.Emails))
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%s] skip %s: %s\n", event.JobID, event.URL, mailscout.ErrorMessage(event.Error))
		case extract.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	var results []*extract.Result
	if c.ID != "" {
		res, err := runner.RunJob(deps.Ctx, c.ID, progress)
		if res != nil {
			results = append(results, res)
		}
		if err != nil {
			printResults(deps, results)
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
			return err
		}
	} else {
		results, err = runner.RunPending(deps.Ctx, progress)
		if err != nil {
			printResults(deps, results)
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(deps.Stdout, "No pending jobs.")
			return nil
		}
	}

	printResults(deps, results)
	return nil
}

func printResults(deps *Dependencies, results []*extract.Result) {
	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "Job %s %s: processed %d URLs (%d failed), %d emails total\n",
			r.JobID, r.Status, r.Processed, r.Failed, r.Emails)
	}
}
