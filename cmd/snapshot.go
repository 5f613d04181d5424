package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/finance/date"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	quarter string
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record this quarter's ratios into the history" }
func (*snapshotCmd) Usage() string {
	return `fin snapshot [-q 2025-Q3]

Compute the ratios from the ledger and record them under a quarter, the
current one by default. Recording a quarter again replaces it.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quarter, "q", "", "quarter to record, e.g. 2025-Q3 (default: the current quarter)")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *snapshotCmd) run(ctx context.Context, a *app) error {
	q, err := parseQuarter(c.quarter)
	if err != nil {
		return err
	}
	return a.snapshot(ctx, q)
}

func (a *app) snapshot(ctx context.Context, q date.Quarter) error {
	if a.recorder == nil {
		return errors.New("history is disabled, set [history] backend to record ratios")
	}
	st, err := a.statements(ctx)
	if err != nil {
		return err
	}
	rr := a.ratios(ctx, st, false)
	if err := a.recorder.Record(ctx, q, rr.Ratios); err != nil {
		return fmt.Errorf("recording %s: %w", q, err)
	}
	fmt.Fprintf(a.out, "Recorded %d ratios for %s\n", rr.Ratios.Len(), q)
	return nil
}

// parseQuarter parses s, the current quarter when empty.
func parseQuarter(s string) (date.Quarter, error) {
	if s == "" {
		return date.Current(), nil
	}
	return date.Parse(s)
}
