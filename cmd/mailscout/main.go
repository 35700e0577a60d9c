package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mailscout"
	"github.com/fwojciec/mailscout/extract"
	"github.com/fwojciec/mailscout/goquery"
	mshttp "github.com/fwojciec/mailscout/http"
	msslog "github.com/fwojciec/mailscout/slog"
	"github.com/fwojciec/mailscout/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config file path used when --config and MAILSCOUT_CONFIG are unset.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Overrides for end-to-end testing. When nil, Run wires the SQLite
	// job service and the HTTP fetcher.
	JobService mailscout.JobService
	Fetcher    mailscout.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mailscout"),
		kong.Description("Harvest contact emails from websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'mailscout --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	configPath := cli.Config
	if configPath == "" {
		configPath = m.ConfigPath
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", mailscout.ErrorMessage(err))
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var fetcher mailscout.Fetcher = m.Fetcher
	if fetcher == nil {
		fetcher = mshttp.NewFetcher(
			mshttp.WithTimeout(cfg.Fetch.Timeout),
			mshttp.WithUserAgent(cfg.Fetch.UserAgent),
			mshttp.WithRequestDelay(cfg.Fetch.RequestDelay),
		)
	}
	fetcher = msslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.Extractor = msslog.NewLoggingExtractor(&extract.Extractor{
		Fetcher:       fetcher,
		Scanner:       goquery.NewScanner(),
		ContactPaths:  cfg.ContactPaths,
		IgnoreDomains: cfg.IgnoreDomains,
	}, logger)
	deps.Sheets = msslog.NewLoggingSheetService(
		mshttp.NewSheetService(mshttp.WithSheetTimeout(cfg.Fetch.Timeout)), logger)

	// Single-site commands don't touch the job database.
	if cmd == "extract" || cmd == "columns" {
		return kongCtx.Run(deps)
	}

	jobs := m.JobService
	if jobs == nil {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set MAILSCOUT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		jobs = sqlite.NewJobService(m.DB)
	}

	deps.Jobs = jobs
	deps.LockPath = m.DBPath + ".lock"
	deps.Runner = &extract.Runner{
		Jobs:        jobs,
		Extractor:   deps.Extractor,
		Delay:       cfg.Jobs.Delay,
		BatchSize:   cfg.Jobs.BatchSize,
		Concurrency: cfg.Jobs.Concurrency,
	}

	return kongCtx.Run(deps)
}
