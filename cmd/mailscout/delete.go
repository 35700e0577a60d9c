package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return mailscout.Errorf(mailscout.EINVALID, "use --force to confirm deletion")
	}

	job, err := deps.Jobs.FindJobByID(deps.Ctx, c.ID)
	if err != nil {
		if mailscout.ErrorCode(err) == mailscout.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: job %q not found. Use 'mailscout list' to see available jobs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	if err := deps.Jobs.DeleteJob(deps.Ctx, job.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted job %q\n", job.Name)
	return nil
}
