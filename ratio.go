package finance

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Ratio identifies one of the standard accounting ratios.
type Ratio int

// The ratios, in their canonical reporting order.
const (
	CurrentRatio Ratio = iota
	QuickRatio
	NetProfitMargin
	ReturnOnAssets
	DebtToEquity
	InterestCover
)

// Ratios returns all the ratios in canonical order.
func Ratios() []Ratio {
	return []Ratio{CurrentRatio, QuickRatio, NetProfitMargin, ReturnOnAssets, DebtToEquity, InterestCover}
}

func (r Ratio) String() string {
	switch r {
	case CurrentRatio:
		return "current_ratio"
	case QuickRatio:
		return "quick_ratio"
	case NetProfitMargin:
		return "net_profit_margin"
	case ReturnOnAssets:
		return "return_on_assets"
	case DebtToEquity:
		return "debt_to_equity"
	case InterestCover:
		return "interest_cover"
	default:
		return fmt.Sprintf("ratio(%d)", int(r))
	}
}

// Title returns the display name of the ratio (e.g., "Current Ratio").
func (r Ratio) Title() string {
	switch r {
	case CurrentRatio:
		return "Current Ratio"
	case QuickRatio:
		return "Quick Ratio"
	case NetProfitMargin:
		return "Net Profit Margin"
	case ReturnOnAssets:
		return "Return on Assets"
	case DebtToEquity:
		return "Debt to Equity"
	case InterestCover:
		return "Interest Cover"
	default:
		return r.String()
	}
}

// IsPercent reports whether the ratio is expressed as a percentage.
func (r Ratio) IsPercent() bool {
	switch r {
	case NetProfitMargin, ReturnOnAssets, DebtToEquity:
		return true
	default:
		return false
	}
}

// Format formats a value of this ratio: "1.50" or "12.34%".
func (r Ratio) Format(v decimal.Decimal) string {
	if r.IsPercent() {
		return v.StringFixed(2) + "%"
	}
	return v.StringFixed(2)
}

// ParseRatio parses a ratio name as returned by String.
func ParseRatio(s string) (Ratio, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(strings.ReplaceAll(s, " ", "_"), "-", "_")
	for _, r := range Ratios() {
		if r.String() == s {
			return r, nil
		}
	}
	return CurrentRatio, fmt.Errorf("unknown ratio %q", s)
}

// MarshalText implements encoding.TextMarshaler so that ratios can key JSON and TOML maps.
func (r Ratio) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ratio) UnmarshalText(text []byte) error {
	v, err := ParseRatio(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// DegenerateInputError reports a ratio that cannot be computed because its
// denominator is exactly zero.
type DegenerateInputError struct {
	Ratio       Ratio
	Denominator string // the ledger or statement figure that is zero.
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s is zero", e.Ratio, e.Denominator)
}

// RatioSet holds the computed ratios. A ratio that could not be computed is
// absent.
type RatioSet struct {
	values map[Ratio]decimal.Decimal
}

// NewRatioSet returns a RatioSet holding a copy of values.
func NewRatioSet(values map[Ratio]decimal.Decimal) RatioSet {
	s := RatioSet{values: make(map[Ratio]decimal.Decimal, len(values))}
	for r, v := range values {
		s.values[r] = v
	}
	return s
}

// Get returns the value of ratio r, if it was computed.
func (s RatioSet) Get(r Ratio) (decimal.Decimal, bool) {
	v, ok := s.values[r]
	return v, ok
}

// Ratios returns the computed ratios in canonical order.
func (s RatioSet) Ratios() []Ratio {
	var res []Ratio
	for _, r := range Ratios() {
		if _, ok := s.values[r]; ok {
			res = append(res, r)
		}
	}
	return res
}

// Len returns the number of computed ratios.
func (s RatioSet) Len() int { return len(s.values) }

var hundred = decimal.NewFromInt(100)

// formula describes how a ratio is computed from the statements.
type formula struct {
	numerator   func(ProfitAndLoss, BalanceSheet) Amount
	denominator func(ProfitAndLoss, BalanceSheet) Amount
	// name of the denominator reported when it is zero.
	denominatorName string
	percent         bool
	// ledger keys the ratio is computed from.
	inputs []string
}

var (
	currentKeys   = []string{Cash, Receivables, Inventory, AccountsPayable, ShortTermLoans}
	assetKeys     = []string{PPE, Cash, Receivables, Inventory}
	leverageKeys  = []string{LongTermDebt, AccountsPayable, ShortTermLoans, CommonStock, RetainedEarnings}
	netIncomeKeys = StatementKeys(ProfitAndLossStatement)
)

var formulas = map[Ratio]formula{
	CurrentRatio: {
		numerator:       func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.CurrentAssets },
		denominator:     func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.CurrentLiabilities },
		denominatorName: "current_liabilities",
		inputs:          currentKeys,
	},
	QuickRatio: {
		numerator:       func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.CurrentAssets.Sub(bs.Inventory) },
		denominator:     func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.CurrentLiabilities },
		denominatorName: "current_liabilities",
		inputs:          currentKeys,
	},
	NetProfitMargin: {
		numerator:       func(pl ProfitAndLoss, _ BalanceSheet) Amount { return pl.NetIncome },
		denominator:     func(pl ProfitAndLoss, _ BalanceSheet) Amount { return pl.SalesRevenue },
		denominatorName: SalesRevenue,
		percent:         true,
		inputs:          netIncomeKeys,
	},
	ReturnOnAssets: {
		numerator:       func(pl ProfitAndLoss, _ BalanceSheet) Amount { return pl.NetIncome },
		denominator:     func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.TotalAssets },
		denominatorName: "total_assets",
		percent:         true,
		inputs:          append(slices.Clone(netIncomeKeys), assetKeys...),
	},
	DebtToEquity: {
		numerator:       func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.TotalLiabilities },
		denominator:     func(_ ProfitAndLoss, bs BalanceSheet) Amount { return bs.TotalEquity },
		denominatorName: "total_equity",
		percent:         true,
		inputs:          leverageKeys,
	},
	InterestCover: {
		// operating income stands for earnings before interest.
		numerator:       func(pl ProfitAndLoss, _ BalanceSheet) Amount { return pl.OperatingIncome },
		denominator:     func(pl ProfitAndLoss, _ BalanceSheet) Amount { return pl.InterestExpenses },
		denominatorName: InterestExpenses,
		inputs:          netIncomeKeys,
	},
}

// ComputeRatio computes a single ratio. It returns a *DegenerateInputError
// if, and only if, the denominator is exactly zero.
func ComputeRatio(r Ratio, pl ProfitAndLoss, bs BalanceSheet) (decimal.Decimal, error) {
	f, ok := formulas[r]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("unknown ratio %v", r)
	}
	den := f.denominator(pl, bs).Decimal()
	if den.IsZero() {
		return decimal.Decimal{}, &DegenerateInputError{Ratio: r, Denominator: f.denominatorName}
	}
	v := f.numerator(pl, bs).Decimal().Div(den)
	if f.percent {
		v = v.Mul(hundred)
	}
	return v, nil
}

// ComputeRatios computes every ratio it can.
//
// Ratios with a zero denominator are left out of the set and reported in the
// returned error, which joins one *DegenerateInputError per failed ratio. The
// set is meaningful even when the error is not nil.
func ComputeRatios(pl ProfitAndLoss, bs BalanceSheet) (RatioSet, error) {
	return computeRatios(pl, bs, nil)
}

// computeRatios computes the ratios that read none of the missing keys. The
// others are reported with a *MissingInputError.
func computeRatios(pl ProfitAndLoss, bs BalanceSheet, missing []string) (RatioSet, error) {
	values := make(map[Ratio]decimal.Decimal)
	var errs []error
	for _, r := range Ratios() {
		if keys := blockedBy(r, missing); len(keys) > 0 {
			errs = append(errs, &MissingInputError{Ratio: r, Keys: keys})
			continue
		}
		v, err := ComputeRatio(r, pl, bs)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[r] = v
	}
	return RatioSet{values: values}, errors.Join(errs...)
}

// blockedBy returns the missing keys ratio r reads.
func blockedBy(r Ratio, missing []string) []string {
	var keys []string
	for _, key := range formulas[r].inputs {
		if slices.Contains(missing, key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// MissingInputError reports a ratio that cannot be computed because some of
// its ledger fields could not be read.
type MissingInputError struct {
	Ratio Ratio
	Keys  []string // the missing ledger keys.
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("cannot compute %s: %s missing from the ledger", e.Ratio, strings.Join(e.Keys, ", "))
}

// DegenerateInputs extracts the *DegenerateInputError from err, as returned by
// ComputeRatios.
func DegenerateInputs(err error) []*DegenerateInputError { return collect[*DegenerateInputError](err) }

// MissingInputs extracts the *MissingInputError from err, as returned by
// Statements.ComputeRatios.
func MissingInputs(err error) []*MissingInputError { return collect[*MissingInputError](err) }

// collect walks the errors joined in err and returns those of type E.
func collect[E error](err error) []E {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var res []E
		for _, e := range joined.Unwrap() {
			res = append(res, collect[E](e)...)
		}
		return res
	}
	var e E
	if errors.As(err, &e) {
		return []E{e}
	}
	return nil
}
