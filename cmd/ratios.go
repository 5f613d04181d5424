package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type ratiosCmd struct {
	noBench bool
}

func (*ratiosCmd) Name() string { return "ratios" }
func (*ratiosCmd) Synopsis() string {
	return "compute the financial ratios and compare them to benchmarks"
}
func (*ratiosCmd) Usage() string {
	return `fin ratios [-no-benchmarks]

Compute the six financial ratios from the ledger, read each of them and
compare them to the configured benchmarks.
`
}

func (c *ratiosCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.noBench, "no-benchmarks", false, "skip the comparison with benchmarks")
}

func (c *ratiosCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *ratiosCmd) run(ctx context.Context, a *app) error {
	st, err := a.statements(ctx)
	if err != nil {
		return err
	}
	a.printMarkdown(renderer.RatiosMarkdown(a.ratios(ctx, st, !c.noBench)))
	return nil
}

// ratios computes the ratio report of st, with benchmarks when asked and
// configured. Benchmarks that cannot be read are logged and left out.
func (a *app) ratios(ctx context.Context, st *finance.Statements, withBench bool) *finance.RatioReport {
	var bench finance.Benchmarks
	if withBench && a.bench != nil {
		var err error
		if bench, err = a.bench.Benchmarks(ctx); err != nil {
			a.log.Warn().Err(err).Msg("benchmarks unavailable, ratios are not compared")
			bench = nil
		}
	}
	rr := finance.NewRatioReport(st, bench)
	for _, d := range rr.Degenerate {
		a.log.Warn().Str("ratio", d.Ratio.String()).Str("denominator", d.Denominator).Msg("ratio skipped")
	}
	for _, m := range rr.Missing {
		a.log.Warn().Str("ratio", m.Ratio.String()).Strs("fields", m.Keys).Msg("ratio skipped")
	}
	return rr
}
