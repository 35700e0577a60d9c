package main

import (
	"fmt"

	"github.com/fwojciec/mailscout"
)

// Run executes the columns command.
func (c *ColumnsCmd) Run(deps *Dependencies) error {
	columns, err := deps.Sheets.Columns(deps.Ctx, c.SheetURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	for _, col := range columns {
		fmt.Fprintln(deps.Stdout, col)
	}
	return nil
}
