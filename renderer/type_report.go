package renderer

import (
	"os"
	"time"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Now returns the current time, unless FIN_TESTING_NOW is set.
func Now() time.Time {
	if os.Getenv("FIN_TESTING_NOW") != "" {
		t, err := time.Parse("2006-01-02 15:04:05", os.Getenv("FIN_TESTING_NOW"))
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

const notAvailable = "n/a"

// Report is the full quarterly report, ready for rendering.
type Report struct {
	Quarter string
	Period  string // first and last day of the quarter.
	AsOf    string

	NetIncome   string
	TotalAssets string
	TotalEquity string
	Balanced    bool
	Discrepancy string

	Missing    []string // ledger keys that could not be read.
	Warnings   []string
	Degenerate []string // ratios that could not be computed.
	Better     int      // ratios performing better than their benchmark.
	Compared   int

	Sections []string // rendered markdown sections, in order.
}

// NewReport prepares the report of quarter q. trends may be nil when no
// history is available.
func NewReport(q date.Quarter, st *finance.Statements, rr *finance.RatioReport, trends []finance.RatioTrend) *Report {
	r := &Report{
		Quarter:     q.String(),
		Period:      q.Start().Format(time.DateOnly) + " to " + q.End().Format(time.DateOnly),
		AsOf:        Now().Format("2006-01-02 15:04:05"),
		NetIncome:   notAvailable,
		TotalAssets: notAvailable,
		TotalEquity: notAvailable,
		Balanced:    true,
		Missing:     st.Missing,
		Compared:    len(rr.Comparisons),
	}
	if st.Complete(finance.ProfitAndLossStatement) {
		r.NetIncome = st.ProfitAndLoss.NetIncome.String()
	}
	if bs := st.BalanceSheet; st.Complete(finance.BalanceSheetStatement) {
		r.TotalAssets = bs.TotalAssets.String()
		r.TotalEquity = bs.TotalEquity.String()
		r.Balanced = bs.Balanced()
		r.Discrepancy = bs.Discrepancy.String()
	}
	for _, w := range rr.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	for _, d := range rr.Degenerate {
		r.Degenerate = append(r.Degenerate, d.Ratio.Title())
	}
	for _, m := range rr.Missing {
		r.Degenerate = append(r.Degenerate, m.Ratio.Title())
	}
	for _, c := range rr.Comparisons {
		if c.Better() {
			r.Better++
		}
	}
	r.Sections = append(r.Sections, StatementsMarkdown(st), RatiosMarkdown(rr))
	if trends != nil {
		r.Sections = append(r.Sections, TrendsMarkdown(trends))
	}
	return r
}
