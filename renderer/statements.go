package renderer

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/finance"
	md "github.com/nao1215/markdown"
)

// ProfitAndLossMarkdown renders the Profit and Loss account.
func ProfitAndLossMarkdown(pl finance.ProfitAndLoss) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Profit and Loss")
	total := func(label string, a finance.Amount) []string {
		return []string{md.Bold(label), md.Bold(a.String())}
	}
	doc.Table(md.TableSet{
		Header: []string{"Account", "Amount"},
		Rows: [][]string{
			{"Sales Revenue", pl.SalesRevenue.String()},
			{"Beginning Inventory", pl.BeginningInventory.String()},
			{"+ Purchased Inventory", pl.PurchasedInventory.String()},
			{"- Ending Inventory", pl.EndingInventory.String()},
			total("Cost of Goods Sold", pl.CostOfGoodsSold),
			total("Gross Profit", pl.GrossProfit),
			{"Payroll", pl.Payroll.String()},
			{"Utilities", pl.Utilities.String()},
			{"Rent", pl.Rent.String()},
			{"Advertising and Marketing", pl.Advertising.String()},
			{"Depreciation", pl.Depreciation.String()},
			total("Total Operating Expenses", pl.TotalOperatingExpenses),
			total("Operating Income", pl.OperatingIncome),
			{"Interest Expense", pl.InterestExpenses.String()},
			total("Net Income", pl.NetIncome),
		},
	})
	return doc.String()
}

// BalanceSheetMarkdown renders the Balance Sheet. An unbalanced sheet is
// rendered as is, followed by its discrepancy.
func BalanceSheetMarkdown(bs finance.BalanceSheet) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Balance Sheet")
	total := func(label string, a finance.Amount) []string {
		return []string{md.Bold(label), md.Bold(a.String())}
	}
	doc.Table(md.TableSet{
		Header: []string{"Account", "Amount"},
		Rows: [][]string{
			{"Property, Plant and Equipment", bs.PPE.String()},
			{"Cash and Cash Equivalents", bs.Cash.String()},
			{"Accounts Receivable", bs.Receivables.String()},
			{"Inventory", bs.Inventory.String()},
			total("Current Assets", bs.CurrentAssets),
			total("Total Assets", bs.TotalAssets),
			{"Long-Term Debt", bs.LongTermDebt.String()},
			{"Accounts Payable", bs.AccountsPayable.String()},
			{"Short-Term Loans", bs.ShortTermLoans.String()},
			total("Current Liabilities", bs.CurrentLiabilities),
			total("Total Liabilities", bs.TotalLiabilities),
			{"Common Stock", bs.CommonStock.String()},
			{"Retained Earnings", bs.RetainedEarnings.String()},
			total("Total Equity", bs.TotalEquity),
			total("Total Liabilities and Equity", bs.TotalLiabilitiesAndEquity),
		},
	})
	if !bs.Balanced() {
		doc.PlainText(md.Bold(fmt.Sprintf("Warning: the Balance Sheet does not balance, assets exceed liabilities and equity by %s.", bs.Discrepancy)))
	}
	return doc.String()
}

// StatementsMarkdown renders both statements. A statement with missing
// fields is replaced by the list of the missing keys.
func StatementsMarkdown(st *finance.Statements) string {
	var parts []string
	for _, s := range []finance.Statement{finance.ProfitAndLossStatement, finance.BalanceSheetStatement} {
		switch {
		case !st.Complete(s):
			parts = append(parts, incompleteMarkdown(s, st.Missing))
		case s == finance.ProfitAndLossStatement:
			parts = append(parts, ProfitAndLossMarkdown(st.ProfitAndLoss))
		default:
			parts = append(parts, BalanceSheetMarkdown(st.BalanceSheet))
		}
	}
	return strings.Join(parts, "\n")
}

func incompleteMarkdown(s finance.Statement, missing []string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2(s.Title())
	doc.PlainText("")
	doc.PlainText("Not available, these ledger fields are missing:")
	doc.PlainText("")
	var keys []string
	for _, key := range finance.StatementKeys(s) {
		if slices.Contains(missing, key) {
			keys = append(keys, md.Code(key))
		}
	}
	doc.BulletList(keys...)
	return doc.String()
}
