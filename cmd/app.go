// Package cmd implements the fin command line: update the ledger, then report
// on the statements, the ratios and their trends.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/finance"
	"github.com/etnz/finance/archive"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/logger"
	"github.com/etnz/finance/sheets"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&updateCmd{}, "ledger")
	c.Register(&snapshotCmd{}, "ledger")

	c.Register(&statementsCmd{}, "reports")
	c.Register(&ratiosCmd{}, "reports")
	c.Register(&trendsCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&assistCmd{}, "help")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "", "Path to a TOML configuration file")
	verbose    = flag.Bool("v", false, "Log debug messages")
	raw        = flag.Bool("raw", false, "Print reports as plain markdown")
)

// recorder saves the ratios of a quarter into the history.
type recorder interface {
	Record(ctx context.Context, q date.Quarter, set finance.RatioSet) error
}

// app is everything a command needs, opened from the configuration.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	accounts finance.Accounts

	store    finance.LedgerStore
	history  finance.HistorySource // nil when disabled.
	recorder recorder              // nil when disabled.
	bench    finance.BenchmarkSource

	console finance.Console
	out     io.Writer
	raw     bool

	closers []io.Closer
}

// openApp loads the configuration and opens the configured backends.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		return nil, err
	}
	config.ApplyFlagOverrides(cfg, *verbose)

	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	logger.SetGlobalLogger(log)

	a := &app{
		cfg:     cfg,
		log:     log,
		console: newStdConsole(os.Stdin, os.Stdout),
		out:     os.Stdout,
		raw:     *raw,
	}
	if err := a.open(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) open(ctx context.Context) error {
	var err error
	if a.accounts, err = a.cfg.FinanceAccounts(); err != nil {
		return err
	}

	// backends are opened on first use and shared by the ledger, the history
	// and the benchmarks.
	spreadsheet := sync.OnceValues(func() (*sheets.Client, error) {
		return sheets.NewFromCredentials(ctx, a.cfg.Ledger.SpreadsheetID, a.cfg.Ledger.Credentials, a.log)
	})
	database := sync.OnceValues(func() (*archive.DB, error) {
		db, err := archive.Open(ctx, a.cfg.Ledger.Path, a.log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db)
		return db, nil
	})

	switch a.cfg.Ledger.Backend {
	case config.Sheets:
		c, err := spreadsheet()
		if err != nil {
			return err
		}
		a.store = c.Store(a.cfg.Cells())
	case config.SQLite:
		d, err := database()
		if err != nil {
			return err
		}
		a.store = d
	case config.Memory:
		a.store = zeroStore()
	}

	switch a.cfg.History.Backend {
	case config.Sheets:
		c, err := spreadsheet()
		if err != nil {
			return err
		}
		h := c.History(a.cfg.History.Range, a.cfg.History.Window)
		a.history, a.recorder = h, h
	case config.SQLite:
		d, err := database()
		if err != nil {
			return err
		}
		a.history, a.recorder = d.History(a.cfg.History.Window), archiveRecorder{d, a.log}
	}

	a.bench, err = a.benchmarks(spreadsheet)
	return err
}

// benchmarks picks the first configured source: a JSON document, a
// spreadsheet table, the inline values.
func (a *app) benchmarks(spreadsheet func() (*sheets.Client, error)) (finance.BenchmarkSource, error) {
	src, err := a.cfg.JSONBenchmarks()
	if err != nil || src != nil {
		return src, err
	}
	if a.cfg.Benchmarks.Sheet != "" {
		c, err := spreadsheet()
		if err != nil {
			return nil, err
		}
		return c.Benchmarks(a.cfg.Benchmarks.Sheet), nil
	}
	values, err := a.cfg.StaticBenchmarks()
	if err != nil || values == nil {
		return nil, err
	}
	return values, nil
}

// Close closes the backends.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// zeroStore is an in memory ledger where every account starts at zero.
func zeroStore() *finance.MemoryStore {
	store := finance.NewMemoryStore(nil)
	for _, s := range []finance.Statement{finance.ProfitAndLossStatement, finance.BalanceSheetStatement} {
		for _, key := range finance.StatementKeys(s) {
			store.Set(context.Background(), key, decimal.Zero)
		}
	}
	return store
}

type archiveRecorder struct {
	db  *archive.DB
	log zerolog.Logger
}

func (r archiveRecorder) Record(ctx context.Context, q date.Quarter, set finance.RatioSet) error {
	id, err := r.db.Record(ctx, q, set)
	if err != nil {
		return err
	}
	r.log.Info().Str("quarter", q.String()).Str("snapshot", id).Msg("ratios recorded")
	return nil
}

// printMarkdown renders md on the terminal, or prints it as is in raw mode.
func (a *app) printMarkdown(md string) {
	if a.raw {
		fmt.Fprint(a.out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(a.out, out)
			return
		}
	}
	a.log.Warn().Err(err).Msg("cannot render markdown")
	fmt.Fprint(a.out, md)
}

// execute opens the app, runs f and maps the outcome to an exit status.
func execute(ctx context.Context, f func(context.Context, *app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	return a.exit(f(ctx, a))
}

func (a *app) exit(err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, finance.ErrExit):
		fmt.Fprintln(a.out, "Exiting the program.")
		return subcommands.ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}
