package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finance"
)

// RatiosMarkdown renders the ratios, their bands, distress signals and the
// comparison with the benchmarks. Ratios that could not be computed are
// listed with the reason.
func RatiosMarkdown(r *finance.RatioReport) string {
	var b strings.Builder
	if r.Ratios.Len() == 0 {
		fmt.Fprint(&b, "## Ratios\n\nNo ratio could be computed.\n\n")
	} else {
		renderAssessments(&b, r)
	}
	renderNotComputed(&b, r)
	renderWarnings(&b, r)
	renderComparisons(&b, r)
	return b.String()
}

func renderAssessments(w io.Writer, r *finance.RatioReport) {
	l := newList(w, func(w io.Writer) {
		fmt.Fprintln(w, "## Ratios")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Ratio | Value | Band | Meaning |")
		fmt.Fprintln(w, "|:---|---:|:---|:---|")
	})
	for _, a := range r.Assessments {
		l.Item("| %s | %s | %s | %s |\n", a.Ratio.Title(), a.Ratio.Format(a.Value), a.Band, finance.Meaning(a.Ratio, a.Band))
	}
	l.Close()
}

func renderNotComputed(w io.Writer, r *finance.RatioReport) {
	l := newList(w, title("### Not Computed"))
	for _, d := range r.Degenerate {
		l.Item("- %s: %s is zero\n", d.Ratio.Title(), d.Denominator)
	}
	for _, m := range r.Missing {
		l.Item("- %s: %s missing from the ledger\n", m.Ratio.Title(), strings.Join(m.Keys, ", "))
	}
	l.Close()
}

func renderWarnings(w io.Writer, r *finance.RatioReport) {
	l := newList(w, title("### Distress Signals"))
	for _, warn := range r.Warnings {
		l.Item("- **%s**\n", warn)
	}
	l.Close()
}

func renderComparisons(w io.Writer, r *finance.RatioReport) {
	l := newList(w, func(w io.Writer) {
		fmt.Fprintln(w, "## Benchmarks")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Ratio | Value | Benchmark | Delta | Performance |")
		fmt.Fprintln(w, "|:---|---:|---:|---:|:---|")
	})
	for _, c := range r.Comparisons {
		delta := c.Ratio.Format(c.Delta())
		if c.Delta().IsPositive() {
			delta = "+" + delta
		}
		l.Item("| %s | %s | %s | %s | %s |\n",
			c.Ratio.Title(), c.Ratio.Format(c.Value), c.Ratio.Format(c.Benchmark), delta, c.Direction)
	}
	l.Close()
}
