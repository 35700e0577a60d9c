package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	if (c.Sheet == "") != (c.Column == "") {
		fmt.Fprintf(deps.Stderr, "error: --sheet and --column must be used together\n")
		return mailscout.Errorf(mailscout.EINVALID, "--sheet and --column must be used together")
	}

	urls := make([]string, 0, len(c.URLs))
	seen := make(map[string]struct{}, len(c.URLs))
	add := func(u string) {
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	for _, u := range c.URLs {
		add(u)
	}

	if c.Sheet != "" {
		sheetURLs, err := deps.Sheets.URLs(deps.Ctx, c.Sheet, c.Column)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
			return err
		}
		for _, u := range sheetURLs {
			add(u)
		}
	}

	job := &mailscout.Job{
		Name: c.Name,
		URLs: urls,
	}
	if err := deps.Jobs.CreateJob(deps.Ctx, job); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added job %q (%s) with %d URLs\n", job.Name, job.ID, len(job.URLs))
	return nil
}
