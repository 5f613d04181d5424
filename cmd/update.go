package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/finance"
	"github.com/google/subcommands"
)

type updateCmd struct {
	statement string
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "enter this quarter's figures into the ledger" }
func (*updateCmd) Usage() string {
	return `fin update [-statement pl|bs]

Ask for the figures of the prompted accounts, validate them and write them
into the ledger. Type 'exit' at any prompt to stop, the figures already
entered are kept.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.statement, "statement", "", "only update one statement: pl or bs")
}

func (c *updateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *updateCmd) run(ctx context.Context, a *app) error {
	if c.statement == "" {
		return finance.Update(ctx, a.store, a.console, a.accounts)
	}
	s, err := finance.ParseStatement(c.statement)
	if err != nil {
		return err
	}
	if err := finance.UpdateStatement(ctx, a.store, a.console, a.accounts, s); err != nil {
		return err
	}
	a.console.Display(fmt.Sprintf("The %s has been updated", s.Title()))
	return nil
}
