package finance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// This file contains the interactive update of the ledger.

// UpdateStatement asks the operator for every prompted account of statement s
// and writes each value to the store as soon as it is validated.
//
// Writes already issued stay in the store if a later prompt returns ErrExit or
// fails: nothing is rolled back.
func UpdateStatement(ctx context.Context, store LedgerStore, c Console, accounts Accounts, s Statement) error {
	for _, a := range accounts.Prompted(s) {
		v, err := Ask(c, a)
		if err != nil {
			return err
		}
		if err := store.Set(ctx, a.Key, decimal.NewFromInt(v)); err != nil {
			return fmt.Errorf("updating %s: %w", a.Name, err)
		}
		c.Display(fmt.Sprintf("\t%s updated successfully", a.Name))
	}
	return nil
}

// Update runs both steps of the ledger update: Profit and Loss first, then the
// Balance Sheet.
func Update(ctx context.Context, store LedgerStore, c Console, accounts Accounts) error {
	c.Display("Step 1. Update Profit and Loss account numbers:")
	if err := UpdateStatement(ctx, store, c, accounts, ProfitAndLossStatement); err != nil {
		return err
	}
	c.Display("The Profit and loss account has been updated")

	c.Display("Step 2. Update the Balance Sheet numbers:")
	if err := UpdateStatement(ctx, store, c, accounts, BalanceSheetStatement); err != nil {
		return err
	}
	c.Display("The Balance sheet has been updated")
	return nil
}
