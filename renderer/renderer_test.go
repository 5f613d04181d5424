package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/shopspring/decimal"
)

func testStatements(cash float64) *finance.Statements {
	pl := finance.NewProfitAndLoss(finance.ProfitAndLossFields{
		SalesRevenue:       finance.A(100000),
		BeginningInventory: finance.A(5000),
		PurchasedInventory: finance.A(20000),
		EndingInventory:    finance.A(8000),
		Payroll:            finance.A(30000),
		Utilities:          finance.A(2000),
		Rent:               finance.A(10000),
		Advertising:        finance.A(3000),
		Depreciation:       finance.A(5000),
		InterestExpenses:   finance.A(3000),
	})
	bs := finance.NewBalanceSheet(finance.BalanceSheetFields{
		PPE:              finance.A(120000),
		Cash:             finance.A(cash),
		Receivables:      finance.A(15000),
		Inventory:        finance.A(8000),
		LongTermDebt:     finance.A(50000),
		AccountsPayable:  finance.A(10000),
		ShortTermLoans:   finance.A(10000),
		CommonStock:      finance.A(60000),
		RetainedEarnings: finance.A(33000),
	})
	return &finance.Statements{ProfitAndLoss: pl, BalanceSheet: bs}
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func TestStatementsMarkdown(t *testing.T) {
	got := StatementsMarkdown(testStatements(20000))
	assertContains(t, got,
		"## Profit and Loss",
		"$17,000.00",
		"$83,000.00",
		"**Net Income**",
		"**$30,000.00**",
		"## Balance Sheet",
		"$163,000.00",
	)
	if strings.Contains(got, "does not balance") {
		t.Errorf("balanced sheet reported a discrepancy:\n%s", got)
	}
}

func TestStatementsMarkdown_Unbalanced(t *testing.T) {
	got := StatementsMarkdown(testStatements(25000))
	assertContains(t, got, "does not balance", "$5,000.00")
}

func TestRatiosMarkdown(t *testing.T) {
	st := testStatements(20000)
	bench := finance.Benchmarks{
		finance.CurrentRatio: decimal.NewFromFloat(1.5),
		finance.DebtToEquity: decimal.NewFromInt(60),
	}
	got := RatiosMarkdown(finance.NewRatioReport(st, bench))
	assertContains(t, got,
		"| Current Ratio | 2.15 | good |",
		"| Debt to Equity | 75.27% | moderate-risk |",
		"## Benchmarks",
		"| Current Ratio | 2.15 | 1.50 | +0.65 | above benchmark, better performance |",
		"above benchmark, worse performance",
	)
	if strings.Contains(got, "Distress") || strings.Contains(got, "Not Computed") {
		t.Errorf("unexpected sections:\n%s", got)
	}
}

func TestRatiosMarkdown_DistressAndDegenerate(t *testing.T) {
	pl := finance.NewProfitAndLoss(finance.ProfitAndLossFields{
		SalesRevenue:     finance.A(50000),
		Payroll:          finance.A(60000),
		InterestExpenses: finance.A(1000),
	})
	bs := finance.NewBalanceSheet(finance.BalanceSheetFields{Cash: finance.A(5000), CommonStock: finance.A(5000)})

	got := RatiosMarkdown(finance.NewRatioReport(&finance.Statements{ProfitAndLoss: pl, BalanceSheet: bs}, nil))
	assertContains(t, got,
		"### Not Computed",
		"- Current Ratio: current_liabilities is zero",
		"### Distress Signals",
		"Net Profit Margin is negative (-22.00%)",
	)
	if strings.Contains(got, "## Benchmarks") {
		t.Errorf("benchmarks rendered without benchmarks:\n%s", got)
	}
}

func TestRatiosMarkdown_NoneComputed(t *testing.T) {
	st := &finance.Statements{}
	got := RatiosMarkdown(finance.NewRatioReport(st, nil))
	assertContains(t, got,
		"## Ratios\n\nNo ratio could be computed.",
		"### Not Computed",
		"- Current Ratio: current_liabilities is zero",
		"- Interest Cover: interest_expenses is zero",
	)
	if strings.Contains(got, "| Ratio |") {
		t.Errorf("empty ratio table rendered:\n%s", got)
	}
}

func TestRatiosMarkdown_MissingField(t *testing.T) {
	st := testStatements(20000)
	st.Missing = []string{finance.RetainedEarnings}

	got := RatiosMarkdown(finance.NewRatioReport(st, nil))
	assertContains(t, got,
		"| Net Profit Margin | 30.00% |",
		"| Interest Cover | 11.00 |",
		"### Not Computed",
		"- Debt to Equity: retained_earnings missing from the ledger",
	)
	if strings.Contains(got, "| Debt to Equity |") {
		t.Errorf("debt to equity computed without retained earnings:\n%s", got)
	}
}

func TestStatementsMarkdown_MissingField(t *testing.T) {
	st := testStatements(20000)
	st.Missing = []string{finance.RetainedEarnings, finance.PPE}

	got := StatementsMarkdown(st)
	assertContains(t, got,
		"## Profit and Loss",
		"$30,000.00",
		"## Balance Sheet",
		"Not available, these ledger fields are missing:",
		"- `ppe`\n- `retained_earnings`",
	)
	if strings.Contains(got, "Total Assets") {
		t.Errorf("incomplete balance sheet rendered:\n%s", got)
	}
}

func TestTrendsMarkdown(t *testing.T) {
	trend := finance.RatioTrend{
		Ratio: finance.CurrentRatio,
		Series: finance.Series{
			{Period: "2025-Q1", Value: decimal.NewFromInt(0)},
			{Period: "2025-Q2", Value: decimal.NewFromFloat(1.2)},
			{Period: "2025-Q3", Value: decimal.NewFromFloat(1.5)},
		},
	}
	trend.Deltas = finance.Trend(trend.Ratio, trend.Series)
	single := finance.RatioTrend{Ratio: finance.QuickRatio, Series: finance.Series{{Period: "2025-Q3", Value: decimal.NewFromInt(1)}}}

	got := TrendsMarkdown([]finance.RatioTrend{trend, single})
	assertContains(t, got,
		"### Current Ratio",
		"| 2025-Q1 to 2025-Q2 | +∞ | prior value was zero |",
		"| 2025-Q2 to 2025-Q3 | +25.00% | significant positive change |",
		"Average change: +25.00%",
		"### Quick Ratio",
		"Not enough history: 1 quarter(s) recorded.",
	)
}

func TestRenderReport(t *testing.T) {
	t.Setenv("FIN_TESTING_NOW", "2025-10-01 09:30:00")
	st := testStatements(25000)
	rr := finance.NewRatioReport(st, nil)

	got := RenderReport(NewReport(date.MustParse("2025-Q3"), st, rr, nil))
	assertContains(t, got,
		"# Financial Report 2025-Q3",
		"*2025-07-01 to 2025-09-30, as of 2025-10-01 09:30:00*",
		"- Net Income: **$30,000.00**",
		"discrepancy of $5,000.00",
		"## Profit and Loss",
		"## Ratios",
	)
	if strings.Contains(got, "## Trends") || strings.Contains(got, "error") {
		t.Errorf("unexpected report content:\n%s", got)
	}
}

func TestRenderReport_MissingField(t *testing.T) {
	t.Setenv("FIN_TESTING_NOW", "2025-10-01 09:30:00")
	st := testStatements(25000)
	st.Missing = []string{finance.Rent}

	got := RenderReport(NewReport(date.MustParse("2025-Q3"), st, finance.NewRatioReport(st, nil), nil))
	assertContains(t, got,
		"- Net Income: **n/a**",
		"- Total Assets: $168,000.00",
		"- rent is missing from the ledger",
		"- Net Profit Margin could not be computed",
		"| Current Ratio |",
	)
}

func TestList(t *testing.T) {
	var b strings.Builder
	empty := newList(&b, title("### Empty"))
	if empty.Close() || b.Len() != 0 {
		t.Errorf("a list without items wrote %q", b.String())
	}

	l := newList(&b, title("### Items"))
	l.Item("- %d\n", 1)
	l.Item("- %d\n", 2)
	if !l.Close() {
		t.Error("Close() = false after two items")
	}
	if got, want := b.String(), "### Items\n\n- 1\n- 2\n\n"; got != want {
		t.Errorf("list = %q, want %q", got, want)
	}
}
