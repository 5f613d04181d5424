package finance

import (
	"fmt"
	"strings"
)

// Ledger field keys. They name accounts, not storage locations: mapping a key
// to a spreadsheet cell or a database row is the store's business.
const (
	SalesRevenue       = "sales_revenue"
	BeginningInventory = "beginning_inventory"
	PurchasedInventory = "purchased_inventory"
	EndingInventory    = "ending_inventory"
	Payroll            = "payroll"
	Utilities          = "utilities"
	Rent               = "rent"
	Advertising        = "advertising"
	Depreciation       = "depreciation"
	InterestExpenses   = "interest_expenses"

	PPE              = "ppe"
	Cash             = "cash"
	Receivables      = "receivables"
	Inventory        = "inventory"
	LongTermDebt     = "long_term_debt"
	AccountsPayable  = "accounts_payable"
	ShortTermLoans   = "short_term_loans"
	CommonStock      = "common_stock"
	RetainedEarnings = "retained_earnings"
)

// Statement identifies the financial statement an account belongs to.
type Statement int

const (
	ProfitAndLossStatement Statement = iota
	BalanceSheetStatement
)

func (s Statement) String() string {
	switch s {
	case ProfitAndLossStatement:
		return "pl"
	case BalanceSheetStatement:
		return "bs"
	default:
		return "unknown"
	}
}

// Title is the human name of the statement.
func (s Statement) Title() string {
	switch s {
	case ProfitAndLossStatement:
		return "Profit and Loss"
	case BalanceSheetStatement:
		return "Balance Sheet"
	default:
		return "Unknown Statement"
	}
}

// ParseStatement parses "pl" or "bs" (long forms are accepted too).
func ParseStatement(s string) (Statement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pl", "p&l", "profit_and_loss":
		return ProfitAndLossStatement, nil
	case "bs", "balance_sheet":
		return BalanceSheetStatement, nil
	default:
		return ProfitAndLossStatement, fmt.Errorf("unknown statement %q", s)
	}
}

// Account describes a ledger field the operator can be asked for, and the
// inclusive range its value must fall in.
type Account struct {
	Key       string
	Name      string
	Statement Statement
	Min, Max  int64
	// Prompted accounts are asked for during an update; the others are only read.
	Prompted bool
}

// Accounts is the ordered table of known accounts.
type Accounts []Account

// Lookup returns the account for key.
func (as Accounts) Lookup(key string) (Account, bool) {
	for _, a := range as {
		if a.Key == key {
			return a, true
		}
	}
	return Account{}, false
}

// Prompted returns, in table order, the accounts of statement s that are asked for.
func (as Accounts) Prompted(s Statement) Accounts {
	var res Accounts
	for _, a := range as {
		if a.Prompted && a.Statement == s {
			res = append(res, a)
		}
	}
	return res
}

// Validate checks the table for duplicate keys and empty ranges.
func (as Accounts) Validate() error {
	seen := make(map[string]bool, len(as))
	for _, a := range as {
		if a.Key == "" {
			return fmt.Errorf("account %q has no key", a.Name)
		}
		if seen[a.Key] {
			return fmt.Errorf("duplicate account %q", a.Key)
		}
		seen[a.Key] = true
		if a.Min > a.Max {
			return fmt.Errorf("account %q: min %d is greater than max %d", a.Key, a.Min, a.Max)
		}
		if a.Min < 0 {
			return fmt.Errorf("account %q: min %d is negative", a.Key, a.Min)
		}
	}
	return nil
}

// DefaultAccounts returns the account table of the embedded default
// configuration (config/default.toml), for callers that run without one, such
// as tests. The prompted ranges are the ones the operator's spreadsheet was
// built for.
func DefaultAccounts() Accounts {
	const big = 100_000_000
	return Accounts{
		{Key: SalesRevenue, Name: "Sales Revenue", Statement: ProfitAndLossStatement, Min: 50_000, Max: 500_000, Prompted: true},
		{Key: BeginningInventory, Name: "Beginning Inventory", Statement: ProfitAndLossStatement, Max: big},
		{Key: PurchasedInventory, Name: "Purchased Inventory", Statement: ProfitAndLossStatement, Min: 10_000, Max: 200_000, Prompted: true},
		{Key: EndingInventory, Name: "Ending Inventory", Statement: ProfitAndLossStatement, Max: big},
		{Key: Payroll, Name: "Payroll", Statement: ProfitAndLossStatement, Max: big},
		{Key: Utilities, Name: "Utilities", Statement: ProfitAndLossStatement, Max: big},
		{Key: Rent, Name: "Rent", Statement: ProfitAndLossStatement, Min: 5_000, Max: 20_000, Prompted: true},
		{Key: Advertising, Name: "Advertising and Marketing Expenses", Statement: ProfitAndLossStatement, Max: big},
		{Key: Depreciation, Name: "Depreciation Expense", Statement: ProfitAndLossStatement, Max: big},
		{Key: InterestExpenses, Name: "Interest Expense", Statement: ProfitAndLossStatement, Min: 1_000, Max: 10_000, Prompted: true},

		{Key: PPE, Name: "Property, Plant and Equipment", Statement: BalanceSheetStatement, Max: big},
		{Key: Cash, Name: "Cash and Cash Equivalents", Statement: BalanceSheetStatement, Min: 5_000, Max: 100_000, Prompted: true},
		{Key: Receivables, Name: "Accounts Receivable", Statement: BalanceSheetStatement, Max: big},
		{Key: Inventory, Name: "Inventory", Statement: BalanceSheetStatement, Max: big},
		{Key: LongTermDebt, Name: "Long-Term Debt", Statement: BalanceSheetStatement, Max: big},
		{Key: AccountsPayable, Name: "Accounts Payable", Statement: BalanceSheetStatement, Max: big},
		{Key: ShortTermLoans, Name: "Short-Term Loans", Statement: BalanceSheetStatement, Min: 1_000, Max: 50_000, Prompted: true},
		{Key: CommonStock, Name: "Common Stock", Statement: BalanceSheetStatement, Max: big},
		{Key: RetainedEarnings, Name: "Retained Earnings", Statement: BalanceSheetStatement, Max: big},
	}
}
