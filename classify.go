package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Band is the qualitative reading of a ratio value.
type Band string

const (
	Good         Band = "good"
	Adequate     Band = "adequate"
	Poor         Band = "poor"
	Strong       Band = "strong"
	Weak         Band = "weak"
	Healthy      Band = "healthy"
	Satisfactory Band = "satisfactory"
	Low          Band = "low"
	Efficient    Band = "efficient"
	Inefficient  Band = "inefficient"
	LowRisk      Band = "low-risk"
	ModerateRisk Band = "moderate-risk"
	HighRisk     Band = "high-risk"
	Comfortable  Band = "comfortable"
	Challenged   Band = "challenged"
)

func threshold(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// Classify maps a ratio value to its band.
//
//	current_ratio      >= 1.5 good, [1, 1.5) adequate, < 1 poor
//	quick_ratio        >= 1 strong, < 1 weak
//	net_profit_margin  > 10 healthy, [5, 10] satisfactory, < 5 low
//	return_on_assets   > 10 efficient, [5, 10] satisfactory, < 5 inefficient
//	debt_to_equity     < 50 low-risk, [50, 100] moderate-risk, > 100 high-risk
//	interest_cover     >= 2 comfortable, < 2 challenged
func Classify(r Ratio, v decimal.Decimal) Band {
	switch r {
	case CurrentRatio:
		switch {
		case v.GreaterThanOrEqual(threshold(1.5)):
			return Good
		case v.GreaterThanOrEqual(threshold(1)):
			return Adequate
		default:
			return Poor
		}
	case QuickRatio:
		if v.GreaterThanOrEqual(threshold(1)) {
			return Strong
		}
		return Weak
	case NetProfitMargin:
		switch {
		case v.GreaterThan(threshold(10)):
			return Healthy
		case v.GreaterThanOrEqual(threshold(5)):
			return Satisfactory
		default:
			return Low
		}
	case ReturnOnAssets:
		switch {
		case v.GreaterThan(threshold(10)):
			return Efficient
		case v.GreaterThanOrEqual(threshold(5)):
			return Satisfactory
		default:
			return Inefficient
		}
	case DebtToEquity:
		switch {
		case v.LessThan(threshold(50)):
			return LowRisk
		case v.LessThanOrEqual(threshold(100)):
			return ModerateRisk
		default:
			return HighRisk
		}
	case InterestCover:
		if v.GreaterThanOrEqual(threshold(2)) {
			return Comfortable
		}
		return Challenged
	default:
		panic(fmt.Sprintf("unknown ratio %d", r))
	}
}

// Meaning returns a one line reading of band b for ratio r.
func Meaning(r Ratio, b Band) string {
	switch b {
	case Good:
		return "the company can comfortably meet its short-term obligations"
	case Adequate:
		return "short-term obligations are covered with little margin"
	case Poor:
		return "current assets do not cover short-term obligations"
	case Strong:
		return "obligations can be met without selling inventory"
	case Weak:
		return "meeting obligations depends on selling inventory"
	case Healthy:
		return "a large share of revenue is kept as profit"
	case Satisfactory:
		if r == ReturnOnAssets {
			return "assets generate a reasonable return"
		}
		return "profitability is in line with expectations"
	case Low:
		return "little of the revenue is kept as profit"
	case Efficient:
		return "assets are used efficiently to generate profit"
	case Inefficient:
		return "assets generate little profit"
	case LowRisk:
		return "the company is financed mostly by equity"
	case ModerateRisk:
		return "debt and equity financing are balanced"
	case HighRisk:
		return "the company relies heavily on debt"
	case Comfortable:
		return "operating income comfortably covers interest"
	case Challenged:
		return "operating income barely covers interest"
	default:
		return ""
	}
}

// Assessment is the classification of one computed ratio.
type Assessment struct {
	Ratio Ratio           `json:"ratio"`
	Value decimal.Decimal `json:"value"`
	Band  Band            `json:"band"`
}

// Warning is a distress signal: a ratio with a strictly negative value.
type Warning struct {
	Ratio Ratio           `json:"ratio"`
	Value decimal.Decimal `json:"value"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s is negative (%s)", w.Ratio.Title(), w.Ratio.Format(w.Value))
}

// Assess classifies every ratio of s, in canonical order, and collects the
// distress signals. Warnings come in addition to the bands, not instead.
func Assess(s RatioSet) (assessments []Assessment, warnings []Warning) {
	for _, r := range s.Ratios() {
		v, _ := s.Get(r)
		assessments = append(assessments, Assessment{Ratio: r, Value: v, Band: Classify(r, v)})
		if v.IsNegative() {
			warnings = append(warnings, Warning{Ratio: r, Value: v})
		}
	}
	return assessments, warnings
}
