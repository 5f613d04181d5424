package finance

import (
	"io"

	"github.com/shopspring/decimal"
)

// dec is a helper for test to create decimals from const.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// testProfitAndLoss is a consistent Profit and Loss account used across tests.
//
//	COGS 17,000, gross profit 83,000, operating expenses 50,000,
//	operating income 33,000, net income 30,000.
func testProfitAndLoss() ProfitAndLossFields {
	return ProfitAndLossFields{
		SalesRevenue:       A(100000),
		BeginningInventory: A(5000),
		PurchasedInventory: A(20000),
		EndingInventory:    A(8000),
		Payroll:            A(30000),
		Utilities:          A(2000),
		Rent:               A(10000),
		Advertising:        A(3000),
		Depreciation:       A(5000),
		InterestExpenses:   A(3000),
	}
}

// testBalanceSheet is a balanced sheet used across tests.
//
//	current assets 43,000, total assets 163,000, current liabilities 20,000,
//	total liabilities 70,000, equity 93,000.
func testBalanceSheet() BalanceSheetFields {
	return BalanceSheetFields{
		PPE:              A(120000),
		Cash:             A(20000),
		Receivables:      A(15000),
		Inventory:        A(8000),
		LongTermDebt:     A(50000),
		AccountsPayable:  A(10000),
		ShortTermLoans:   A(10000),
		CommonStock:      A(60000),
		RetainedEarnings: A(33000),
	}
}

// testStore returns a store holding the test statements.
func testStore() *MemoryStore {
	fields := map[string]decimal.Decimal{}
	pl, bs := testProfitAndLoss(), testBalanceSheet()
	for _, b := range append(pl.bindings(), bs.bindings()...) {
		fields[b.key] = b.dst.Decimal()
	}
	return NewMemoryStore(fields)
}

// scriptConsole is a Console that answers prompts from a script.
type scriptConsole struct {
	inputs    []string
	prompts   []string
	displayed []string
}

func (c *scriptConsole) Prompt(message string) (string, error) {
	c.prompts = append(c.prompts, message)
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	in := c.inputs[0]
	c.inputs = c.inputs[1:]
	return in, nil
}

func (c *scriptConsole) Display(text string) { c.displayed = append(c.displayed, text) }
