package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/finance"
)

// TrendsMarkdown renders the quarter over quarter changes of each ratio.
func TrendsMarkdown(trends []finance.RatioTrend) string {
	var b strings.Builder
	fmt.Fprintln(&b, "## Trends")
	fmt.Fprintln(&b)
	if len(trends) == 0 {
		fmt.Fprintln(&b, "No history available.")
		return b.String()
	}
	for _, t := range trends {
		renderTrend(&b, t)
	}
	return b.String()
}

func renderTrend(w io.Writer, t finance.RatioTrend) {
	fmt.Fprintf(w, "### %s\n\n", t.Ratio.Title())
	if len(t.Deltas) == 0 {
		fmt.Fprintf(w, "Not enough history: %d quarter(s) recorded.\n\n", len(t.Series))
		return
	}

	// Values row, one column per recorded quarter.
	fmt.Fprint(w, "| |")
	for _, o := range t.Series {
		fmt.Fprintf(w, " %s |", o.Period)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "|:---|")
	for range t.Series {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "| Value |")
	for _, o := range t.Series {
		fmt.Fprintf(w, " %s |", t.Ratio.Format(o.Value))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Quarters | Change | Reading |")
	fmt.Fprintln(w, "|:---|---:|:---|")
	for _, d := range t.Deltas {
		fmt.Fprintf(w, "| %s | %s | %s |\n", d.Label(), d, d.Tag)
	}
	fmt.Fprintln(w)

	if mean, ok := t.MeanChange(); ok {
		fmt.Fprintf(w, "Average change: %+.2f%%\n\n", mean)
	}
}
