package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type reportCmd struct {
	skipUpdate bool
	snapshot   bool
	quarter    string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "update the ledger and print the full quarterly report" }
func (*reportCmd) Usage() string {
	return `fin report [-skip-update] [-snapshot] [-q 2025-Q3]

The guided quarterly review: ask for this quarter's figures, then print the
statements, the ratios compared to benchmarks and their trends.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipUpdate, "skip-update", false, "do not ask for figures, only report")
	f.BoolVar(&c.snapshot, "snapshot", false, "record the ratios into the history before reading the trends")
	f.StringVar(&c.quarter, "q", "", "quarter of the report, e.g. 2025-Q3 (default: the current quarter)")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *reportCmd) run(ctx context.Context, a *app) error {
	q, err := parseQuarter(c.quarter)
	if err != nil {
		return err
	}
	if !c.skipUpdate {
		if err := finance.Update(ctx, a.store, a.console, a.accounts); err != nil {
			return err
		}
	}
	if c.snapshot {
		if err := a.snapshot(ctx, q); err != nil {
			return err
		}
	}

	st, err := a.statements(ctx)
	if err != nil {
		return err
	}
	rr := a.ratios(ctx, st, true)
	a.printMarkdown(renderer.RenderReport(renderer.NewReport(q, st, rr, a.trends(ctx))))
	return nil
}
