package finance

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeRatios(t *testing.T) {
	pl := NewProfitAndLoss(testProfitAndLoss())
	bs := NewBalanceSheet(testBalanceSheet())

	set, err := ComputeRatios(pl, bs)
	if err != nil {
		t.Fatalf("ComputeRatios() unexpected error: %v", err)
	}
	if set.Len() != len(Ratios()) {
		t.Fatalf("ComputeRatios() computed %d ratios, want %d", set.Len(), len(Ratios()))
	}

	testCases := []struct {
		ratio Ratio
		want  string // rounded to 2 places
	}{
		{CurrentRatio, "2.15"},
		{QuickRatio, "1.75"},
		{NetProfitMargin, "30"},
		{ReturnOnAssets, "18.40"},
		{DebtToEquity, "75.27"},
		{InterestCover, "11"},
	}
	for _, tc := range testCases {
		t.Run(tc.ratio.String(), func(t *testing.T) {
			got, ok := set.Get(tc.ratio)
			if !ok {
				t.Fatalf("Get(%v) missing", tc.ratio)
			}
			if !got.Round(2).Equal(dec(tc.want)) {
				t.Errorf("%v = %s, want %s", tc.ratio, got, tc.want)
			}
		})
	}
}

func TestComputeRatio_Degenerate(t *testing.T) {
	testCases := []struct {
		ratio       Ratio
		zero        func(*ProfitAndLossFields, *BalanceSheetFields)
		denominator string
	}{
		{CurrentRatio, func(_ *ProfitAndLossFields, b *BalanceSheetFields) {
			b.AccountsPayable, b.ShortTermLoans = A(0), A(0)
		}, "current_liabilities"},
		{QuickRatio, func(_ *ProfitAndLossFields, b *BalanceSheetFields) {
			b.AccountsPayable, b.ShortTermLoans = A(0), A(0)
		}, "current_liabilities"},
		{NetProfitMargin, func(p *ProfitAndLossFields, _ *BalanceSheetFields) {
			p.SalesRevenue = A(0)
		}, "sales_revenue"},
		{ReturnOnAssets, func(_ *ProfitAndLossFields, b *BalanceSheetFields) {
			*b = BalanceSheetFields{CommonStock: A(1000)}
		}, "total_assets"},
		{DebtToEquity, func(_ *ProfitAndLossFields, b *BalanceSheetFields) {
			b.CommonStock, b.RetainedEarnings = A(33000), A(-33000)
		}, "total_equity"},
		{InterestCover, func(p *ProfitAndLossFields, _ *BalanceSheetFields) {
			p.InterestExpenses = A(0)
		}, "interest_expenses"},
	}
	for _, tc := range testCases {
		t.Run(tc.ratio.String(), func(t *testing.T) {
			plf, bsf := testProfitAndLoss(), testBalanceSheet()
			tc.zero(&plf, &bsf)
			pl, bs := NewProfitAndLoss(plf), NewBalanceSheet(bsf)

			_, err := ComputeRatio(tc.ratio, pl, bs)
			var d *DegenerateInputError
			if !errors.As(err, &d) {
				t.Fatalf("ComputeRatio(%v) error = %v, want a *DegenerateInputError", tc.ratio, err)
			}
			if d.Ratio != tc.ratio || d.Denominator != tc.denominator {
				t.Errorf("got %v on %s, want %v on %s", d.Ratio, d.Denominator, tc.ratio, tc.denominator)
			}

			set, err := ComputeRatios(pl, bs)
			if _, ok := set.Get(tc.ratio); ok {
				t.Errorf("ComputeRatios() set contains %v, want it absent", tc.ratio)
			}
			found := false
			for _, d := range DegenerateInputs(err) {
				found = found || d.Ratio == tc.ratio
			}
			if !found {
				t.Errorf("DegenerateInputs(%v) does not report %v", err, tc.ratio)
			}
		})
	}
}

func TestComputeRatios_ZeroCurrentLiabilities(t *testing.T) {
	bsf := testBalanceSheet()
	bsf.AccountsPayable, bsf.ShortTermLoans = A(0), A(0)

	set, err := ComputeRatios(NewProfitAndLoss(testProfitAndLoss()), NewBalanceSheet(bsf))
	degenerate := DegenerateInputs(err)
	if len(degenerate) != 2 {
		t.Fatalf("DegenerateInputs() = %v, want current and quick ratios", degenerate)
	}
	for _, d := range degenerate {
		if d.Denominator != "current_liabilities" {
			t.Errorf("%v denominator = %q, want current_liabilities", d.Ratio, d.Denominator)
		}
	}
	if set.Len() != 4 {
		t.Errorf("ComputeRatios() computed %v, want the 4 other ratios", set.Ratios())
	}
}

func TestComputeRatio_NegativeDenominator(t *testing.T) {
	bsf := testBalanceSheet()
	bsf.RetainedEarnings = A(-80000) // equity -20,000

	v, err := ComputeRatio(DebtToEquity, NewProfitAndLoss(testProfitAndLoss()), NewBalanceSheet(bsf))
	if err != nil {
		t.Fatalf("ComputeRatio() unexpected error: %v", err)
	}
	if !v.Equal(dec("-350")) {
		t.Errorf("DebtToEquity = %s, want -350", v)
	}
}

func TestQuickRatioNeverExceedsCurrentRatio(t *testing.T) {
	pl := NewProfitAndLoss(testProfitAndLoss())
	for _, inv := range []float64{0, 1, 8000, 43000, 1e6} {
		bsf := testBalanceSheet()
		bsf.Inventory = A(inv)
		set, _ := ComputeRatios(pl, NewBalanceSheet(bsf))
		cur, _ := set.Get(CurrentRatio)
		quick, _ := set.Get(QuickRatio)
		if quick.GreaterThan(cur) {
			t.Errorf("inventory %v: quick ratio %s > current ratio %s", inv, quick, cur)
		}
	}
}

func TestParseRatio(t *testing.T) {
	testCases := []struct {
		in      string
		want    Ratio
		wantErr bool
	}{
		{in: "current_ratio", want: CurrentRatio},
		{in: "Quick Ratio", want: QuickRatio},
		{in: "debt-to-equity", want: DebtToEquity},
		{in: " INTEREST_COVER ", want: InterestCover},
		{in: "ebitda", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := ParseRatio(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseRatio(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseRatio(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, r := range Ratios() {
		if got, err := ParseRatio(r.String()); err != nil || got != r {
			t.Errorf("ParseRatio(%q) = %v, %v, want %v", r.String(), got, err, r)
		}
	}
}

func TestRatio_Format(t *testing.T) {
	if got := CurrentRatio.Format(decimal.NewFromFloat(1.5)); got != "1.50" {
		t.Errorf("Format() = %q, want %q", got, "1.50")
	}
	if got := NetProfitMargin.Format(dec("12.345")); got != "12.35%" {
		t.Errorf("Format() = %q, want %q", got, "12.35%")
	}
}

func TestStatementsComputeRatios_MissingBalanceSheetField(t *testing.T) {
	store := testStore()
	delete(store.fields, RetainedEarnings)
	st, _ := LoadStatements(context.Background(), store)

	set, err := st.ComputeRatios()
	for _, r := range []Ratio{CurrentRatio, QuickRatio, NetProfitMargin, ReturnOnAssets, InterestCover} {
		if _, ok := set.Get(r); !ok {
			t.Errorf("%v was not computed: %v", r, err)
		}
	}
	if v, _ := set.Get(NetProfitMargin); !v.Equal(dec("30")) {
		t.Errorf("NetProfitMargin = %s, want 30", v)
	}
	if _, ok := set.Get(DebtToEquity); ok {
		t.Error("DebtToEquity computed without retained earnings")
	}

	missing := MissingInputs(err)
	if len(missing) != 1 || missing[0].Ratio != DebtToEquity || !slices.Equal(missing[0].Keys, []string{RetainedEarnings}) {
		t.Errorf("MissingInputs() = %v, want debt to equity blocked by retained_earnings", err)
	}
	if len(DegenerateInputs(err)) != 0 {
		t.Errorf("DegenerateInputs() = %v, want none", DegenerateInputs(err))
	}
}

func TestStatementsComputeRatios_MissingProfitAndLossField(t *testing.T) {
	store := testStore()
	delete(store.fields, InterestExpenses)
	st, _ := LoadStatements(context.Background(), store)

	set, err := st.ComputeRatios()
	if got := set.Ratios(); !slices.Equal(got, []Ratio{CurrentRatio, QuickRatio, DebtToEquity}) {
		t.Errorf("computed %v, want the balance sheet ratios only", got)
	}
	if got := len(MissingInputs(err)); got != 3 {
		t.Errorf("MissingInputs() reports %d ratios, want 3: %v", got, err)
	}
}
