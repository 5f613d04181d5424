package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type statementsCmd struct{}

func (*statementsCmd) Name() string { return "statements" }
func (*statementsCmd) Synopsis() string {
	return "print the Profit and Loss account and the Balance Sheet"
}
func (*statementsCmd) Usage() string {
	return `fin statements

Read the ledger and print both financial statements.
`
}

func (*statementsCmd) SetFlags(*flag.FlagSet) {}

func (c *statementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *statementsCmd) run(ctx context.Context, a *app) error {
	st, err := a.statements(ctx)
	if err != nil {
		return err
	}
	a.printMarkdown(renderer.StatementsMarkdown(st))
	return nil
}

// statements loads both statements and logs a discrepancy.
//
// Missing ledger fields are logged and the statements are returned anyway, so
// that whatever does not read them is still reported. They are an error only
// when they leave nothing to report: no complete statement and no ratio.
func (a *app) statements(ctx context.Context) (*finance.Statements, error) {
	st, err := finance.LoadStatements(ctx, a.store)
	if st == nil {
		return nil, err
	}
	if err != nil {
		_, rerr := st.ComputeRatios()
		if !st.Complete(finance.ProfitAndLossStatement) && !st.Complete(finance.BalanceSheetStatement) &&
			len(finance.MissingInputs(rerr)) == len(finance.Ratios()) {
			return nil, err
		}
		for _, key := range st.Missing {
			a.log.Warn().Str("field", key).Msg("ledger field not found")
		}
	}
	if bs := st.BalanceSheet; st.Complete(finance.BalanceSheetStatement) && !bs.Balanced() {
		a.log.Warn().Str("discrepancy", bs.Discrepancy.String()).Msg("the balance sheet does not balance")
	}
	return st, nil
}
