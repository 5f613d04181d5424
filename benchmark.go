package finance

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Benchmarks maps each ratio to an externally supplied target value.
type Benchmarks map[Ratio]decimal.Decimal

// Validate checks that every ratio has a benchmark.
func (b Benchmarks) Validate() error {
	var missing []string
	for _, r := range Ratios() {
		if _, ok := b[r]; !ok {
			missing = append(missing, r.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing benchmarks for %s", strings.Join(missing, ", "))
	}
	return nil
}

// BenchmarkSource provides the benchmarks of a run.
type BenchmarkSource interface {
	Benchmarks(ctx context.Context) (Benchmarks, error)
}

// StaticBenchmarks is a BenchmarkSource for benchmarks known in advance.
type StaticBenchmarks Benchmarks

func (s StaticBenchmarks) Benchmarks(context.Context) (Benchmarks, error) {
	b := Benchmarks(s)
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Direction tells how a ratio compares to its benchmark.
type Direction string

const (
	AboveBetter Direction = "above benchmark, better performance"
	AboveWorse  Direction = "above benchmark, worse performance"
	BelowBetter Direction = "below benchmark, better performance"
	BelowWorse  Direction = "below benchmark, worse performance"
	Average     Direction = "average performance"
)

// HigherIsBetter reports the polarity of ratio r. More leverage is worse, so
// debt to equity is the only ratio where lower is better.
func HigherIsBetter(r Ratio) bool { return r != DebtToEquity }

// Comparison is a ratio value compared to its benchmark.
type Comparison struct {
	Ratio     Ratio           `json:"ratio"`
	Value     decimal.Decimal `json:"value"`
	Benchmark decimal.Decimal `json:"benchmark"`
	Direction Direction       `json:"direction"`
}

// Delta is the value minus the benchmark.
func (c Comparison) Delta() decimal.Decimal { return c.Value.Sub(c.Benchmark) }

// Better reports whether the ratio performs better than the benchmark.
func (c Comparison) Better() bool { return c.Direction == AboveBetter || c.Direction == BelowBetter }

// Compare compares value to benchmark under the polarity of ratio r.
func Compare(r Ratio, value, benchmark decimal.Decimal) Comparison {
	c := Comparison{Ratio: r, Value: value, Benchmark: benchmark}
	higher := HigherIsBetter(r)
	switch value.Cmp(benchmark) {
	case 0:
		c.Direction = Average
	case 1:
		c.Direction = AboveWorse
		if higher {
			c.Direction = AboveBetter
		}
	default:
		c.Direction = BelowWorse
		if !higher {
			c.Direction = BelowBetter
		}
	}
	return c
}

// CompareAll compares every computed ratio of s that has a benchmark, in
// canonical order.
func CompareAll(s RatioSet, b Benchmarks) []Comparison {
	var res []Comparison
	for _, r := range s.Ratios() {
		bench, ok := b[r]
		if !ok {
			continue
		}
		v, _ := s.Get(r)
		res = append(res, Compare(r, v, bench))
	}
	return res
}
