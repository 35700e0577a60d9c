package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Jobs      mailscout.JobService
	Sheets    mailscout.SheetService
	Extractor mailscout.Extractor
	Runner    *extract.Runner

	// LockPath is the file held while jobs run.
	LockPath string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches and extractions to stderr"`
	Config  string `help:"Path to YAML config file" env:"MAILSCOUT_CONFIG" type:"path"`

	Extract ExtractCmd `cmd:"" help:"Extract emails from a single website"`
	Columns ColumnsCmd `cmd:"" help:"List the columns of a Google Sheet"`
	Add     AddCmd     `cmd:"" help:"Create a job from URLs or a Google Sheet column"`
	List    ListCmd    `cmd:"" help:"List all jobs"`
	Show    ShowCmd    `cmd:"" help:"Show job progress and emails"`
	Run     RunCmd     `cmd:"" help:"Process one job or all pending jobs"`
	Export  ExportCmd  `cmd:"" help:"Export job emails as CSV"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a job"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL string `arg:"" help:"Website URL"`
}

// ColumnsCmd is the "columns" subcommand.
type ColumnsCmd struct {
	SheetURL string `arg:"" name:"sheet-url" help:"Google Sheet URL"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name   string   `arg:"" help:"Job name"`
	URLs   []string `arg:"" optional:"" name:"urls" help:"Website URLs"`
	Sheet  string   `short:"s" help:"Google Sheet URL to import URLs from"`
	Column string   `short:"c" help:"Sheet column holding website URLs"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Job ID"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	ID        string `arg:"" optional:"" help:"Job ID (default: all pending jobs)"`
	BatchSize int    `short:"b" help:"Maximum URLs to process per job (0 = all)"`
	Jobs      int    `short:"j" help:"Jobs to process concurrently"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Job ID"`
	Output string `short:"o" help:"Write CSV to file instead of stdout" type:"path"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Job ID"`
	Force bool   `help:"Confirm deletion"`
}
