// Package finance prepares the periodic financial report of a small company.
//
// Raw ledger figures (revenue, inventory, expenses, assets, liabilities and
// equity) are read from a LedgerStore and turned into:
//   - Statements: the Profit and Loss account and the Balance Sheet, built with
//     exact decimal arithmetic. The Balance Sheet is never forced to balance,
//     its discrepancy is reported instead.
//   - Ratios: current ratio, quick ratio, net profit margin, return on assets,
//     debt to equity and interest cover. A ratio with a zero denominator is not
//     computed and is reported as a *DegenerateInputError.
//   - Assessments: each ratio classified into a qualitative band, and negative
//     ratios flagged as distress signals.
//   - Comparisons: each ratio compared to an industry benchmark.
//   - Trends: quarter over quarter percent changes of each ratio.
//
// All of these are pure functions of their inputs. Stores, benchmark and
// history sources are collaborators passed in explicitly.
//
// This package serves as the foundational logic for the `fin` command-line
// tool.
package finance
