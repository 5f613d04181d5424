package cmd

import (
	"context"
	"flag"

	"github.com/etnz/finance"
	"github.com/etnz/finance/renderer"
	"github.com/google/subcommands"
)

type trendsCmd struct {
	ratio string
}

func (*trendsCmd) Name() string     { return "trends" }
func (*trendsCmd) Synopsis() string { return "show how the ratios changed over the last quarters" }
func (*trendsCmd) Usage() string {
	return `fin trends [-ratio <name>]

Read the recorded ratios of the last quarters and tag each quarter over
quarter change. Record a quarter with 'fin snapshot'.
`
}

func (c *trendsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ratio, "ratio", "", "only show the trend of this ratio, e.g. current_ratio")
}

func (c *trendsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return execute(ctx, c.run)
}

func (c *trendsCmd) run(ctx context.Context, a *app) error {
	var ratios []finance.Ratio
	if c.ratio != "" {
		r, err := finance.ParseRatio(c.ratio)
		if err != nil {
			return err
		}
		ratios = append(ratios, r)
	}
	a.printMarkdown(renderer.TrendsMarkdown(a.trends(ctx, ratios...)))
	return nil
}

// trends analyzes the history of ratios. It returns nil when the history is
// disabled, and logs the ratios that have none.
func (a *app) trends(ctx context.Context, ratios ...finance.Ratio) []finance.RatioTrend {
	if a.history == nil {
		a.log.Warn().Msg("history is disabled, no trends")
		return nil
	}
	trends, err := finance.AnalyzeTrends(ctx, a.history, ratios...)
	if err != nil {
		a.log.Warn().Err(err).Msg("incomplete history")
	}
	if trends == nil {
		trends = []finance.RatioTrend{}
	}
	return trends
}
