package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used to display statement figures.
const DefaultCurrency = "USD"

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Amount is a ledger figure. It is kept exact: statements are built with
// decimal arithmetic so that totals never drift.
type Amount struct {
	value decimal.Decimal
}

// A returns the Amount for value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

// Decimal returns the underlying exact value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }
func (a Amount) IsZero() bool        { return a.value.IsZero() }
func (a Amount) IsNegative() bool    { return a.value.IsNegative() }

// sum adds up all the amounts.
func sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// String formats the amount in the DefaultCurrency, e.g. "$1,234.00".
func (a Amount) String() string { return a.Format(DefaultCurrency) }

// Format formats the amount in the given currency.
func (a Amount) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// SignedString returns the amount with an explicit sign, "-" for zero.
func (a Amount) SignedString() string {
	if a.value.IsZero() {
		return "-"
	}
	if a.value.IsPositive() {
		return "+" + a.String()
	}
	return a.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (a Amount) MarshalJSON() ([]byte, error) { return a.value.MarshalJSON() }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (a *Amount) UnmarshalJSON(b []byte) error { return a.value.UnmarshalJSON(b) }

// integerFormatter groups thousands with no currency symbol, e.g. "50,000".
var integerFormatter = money.NewFormatter(0, ".", ",", "", "1")

// FormatInteger formats n with thousands separators.
func FormatInteger(n int64) string { return integerFormatter.Format(n) }
