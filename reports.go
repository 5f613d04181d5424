package finance

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// RatioReport gathers everything derived from one pair of statements: the
// ratios, their bands, the distress signals and the benchmark comparison.
type RatioReport struct {
	Ratios      RatioSet
	Degenerate  []*DegenerateInputError // ratios with a zero denominator.
	Missing     []*MissingInputError    // ratios reading a missing ledger field.
	Assessments []Assessment
	Warnings    []Warning
	Comparisons []Comparison // empty when no benchmarks were supplied.
}

// NewRatioReport computes, classifies and benchmarks the ratios of st. Only
// the ratios whose inputs were read are computed. bench may be nil.
func NewRatioReport(st *Statements, bench Benchmarks) *RatioReport {
	set, err := st.ComputeRatios()
	r := &RatioReport{Ratios: set, Degenerate: DegenerateInputs(err), Missing: MissingInputs(err)}
	r.Assessments, r.Warnings = Assess(set)
	if bench != nil {
		r.Comparisons = CompareAll(set, bench)
	}
	return r
}

// Statements is the pair of statements read from the ledger.
type Statements struct {
	ProfitAndLoss ProfitAndLoss
	BalanceSheet  BalanceSheet
	// Missing lists the ledger keys that could not be read.
	Missing []string
}

// Complete reports whether every field of statement s was read.
func (st *Statements) Complete(s Statement) bool {
	return !slices.ContainsFunc(StatementKeys(s), func(key string) bool {
		return slices.Contains(st.Missing, key)
	})
}

// ComputeRatios computes every ratio whose inputs were read, see the
// package-level ComputeRatios. The returned error also joins one
// *MissingInputError per ratio reading a missing field.
func (st *Statements) ComputeRatios() (RatioSet, error) {
	return computeRatios(st.ProfitAndLoss, st.BalanceSheet, st.Missing)
}

// LoadStatements reads both statements from the store.
//
// Missing fields do not stop the load. The statements are returned with
// Missing listing the keys that could not be read, and the error joins one
// *FieldNotFoundError per missing key, grouped by statement. An incomplete
// statement holds zero in place of its missing fields and must not be shown
// as the ledger's figures. Any other store error returns no statements.
func LoadStatements(ctx context.Context, store LedgerStore) (*Statements, error) {
	var (
		st   Statements
		pl   ProfitAndLossFields
		bs   BalanceSheetFields
		errs []error
	)
	for _, s := range []struct {
		statement Statement
		bindings  []binding
	}{
		{ProfitAndLossStatement, pl.bindings()},
		{BalanceSheetStatement, bs.bindings()},
	} {
		missing, err := load(ctx, store, s.bindings)
		if err == nil {
			continue
		}
		err = fmt.Errorf("loading %s: %w", s.statement.Title(), err)
		if missing == nil {
			return nil, err
		}
		st.Missing = append(st.Missing, missing...)
		errs = append(errs, err)
	}
	st.ProfitAndLoss = NewProfitAndLoss(pl)
	st.BalanceSheet = NewBalanceSheet(bs)
	return &st, errors.Join(errs...)
}
