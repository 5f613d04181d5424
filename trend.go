package finance

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// Observation is the value of a ratio for one period.
type Observation struct {
	Period string          `json:"period"`
	Value  decimal.Decimal `json:"value"`
}

// Series is the history of a ratio, oldest period first.
type Series []Observation

// HistorySource provides the history of each ratio.
type HistorySource interface {
	// Series returns the history of r, oldest period first.
	Series(ctx context.Context, r Ratio) (Series, error)
}

// TrendTag classifies a period-over-period change.
type TrendTag string

const (
	SignificantPositive TrendTag = "significant positive change"
	Positive            TrendTag = "positive change"
	NoChange            TrendTag = "no change"
	Negative            TrendTag = "negative change"
	SignificantNegative TrendTag = "significant negative change"
	PriorZero           TrendTag = "prior value was zero"
)

// TrendDelta is the change of a ratio between two adjacent periods.
type TrendDelta struct {
	Ratio Ratio  `json:"ratio"`
	From  string `json:"from"`
	To    string `json:"to"`
	// Change is the percent change. It is meaningless when Infinite is set.
	Change decimal.Decimal `json:"change"`
	// Infinite is set when the previous value was zero: the change is +∞.
	Infinite bool     `json:"infinite"`
	Tag      TrendTag `json:"tag"`
}

// Label names the pair of periods, e.g. "2025-Q1 to 2025-Q2".
func (t TrendDelta) Label() string { return t.From + " to " + t.To }

// Float64 returns the change as a float, +Inf when the prior value was zero.
func (t TrendDelta) Float64() float64 {
	if t.Infinite {
		return math.Inf(1)
	}
	return t.Change.InexactFloat64()
}

// String formats the change, "+12.50%" or "+∞".
func (t TrendDelta) String() string {
	if t.Infinite {
		return "+∞"
	}
	s := t.Change.StringFixed(2) + "%"
	if t.Change.IsPositive() {
		s = "+" + s
	}
	return s
}

// ClassifyChange tags a finite percent change.
func ClassifyChange(change decimal.Decimal) TrendTag {
	switch {
	case change.GreaterThan(threshold(10)):
		return SignificantPositive
	case change.IsPositive():
		return Positive
	case change.IsZero():
		return NoChange
	case change.GreaterThanOrEqual(threshold(-10)):
		return Negative
	default:
		return SignificantNegative
	}
}

// Change computes the percent change from previous to current.
func Change(r Ratio, previous, current Observation) TrendDelta {
	t := TrendDelta{Ratio: r, From: previous.Period, To: current.Period}
	if previous.Value.IsZero() {
		t.Infinite = true
		t.Tag = PriorZero
		return t
	}
	t.Change = current.Value.Sub(previous.Value).Div(previous.Value).Mul(hundred)
	t.Tag = ClassifyChange(t.Change)
	return t
}

// Trend computes the N-1 changes between adjacent observations of s, in order.
func Trend(r Ratio, s Series) []TrendDelta {
	if len(s) < 2 {
		return nil
	}
	res := make([]TrendDelta, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		res = append(res, Change(r, s[i-1], s[i]))
	}
	return res
}

// RatioTrend is the trend analysis of one ratio over the historical window.
type RatioTrend struct {
	Ratio  Ratio        `json:"ratio"`
	Series Series       `json:"series"`
	Deltas []TrendDelta `json:"deltas"`
}

// MeanChange returns the mean of the finite changes, and false if there are none.
func (t RatioTrend) MeanChange() (float64, bool) {
	var xs []float64
	for _, d := range t.Deltas {
		if !d.Infinite {
			xs = append(xs, d.Change.InexactFloat64())
		}
	}
	if len(xs) == 0 {
		return 0, false
	}
	return stat.Mean(xs, nil), true
}

// AnalyzeTrends computes the trend of each ratio from src.
//
// Ratios are analyzed independently: a ratio whose history cannot be read is
// left out and its error joined in the returned error, the others are still
// analyzed.
func AnalyzeTrends(ctx context.Context, src HistorySource, ratios ...Ratio) ([]RatioTrend, error) {
	if len(ratios) == 0 {
		ratios = Ratios()
	}
	var res []RatioTrend
	var errs []error
	for _, r := range ratios {
		s, err := src.Series(ctx, r)
		if err != nil {
			errs = append(errs, fmt.Errorf("history of %s: %w", r, err))
			continue
		}
		res = append(res, RatioTrend{Ratio: r, Series: s, Deltas: Trend(r, s)})
	}
	return res, errors.Join(errs...)
}

// StaticHistory is a HistorySource for histories known in advance.
type StaticHistory map[Ratio]Series

// ErrNoHistory is returned when a ratio has no recorded history.
var ErrNoHistory = errors.New("no history")

func (h StaticHistory) Series(_ context.Context, r Ratio) (Series, error) {
	s, ok := h[r]
	if !ok {
		return nil, ErrNoHistory
	}
	return s, nil
}
