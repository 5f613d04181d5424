// Command fin guides the quarterly review of a small business: it updates the
// ledger, then reports on the financial statements, ratios and trends.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/finance/cmd"
	"github.com/etnz/finance/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// COMP_LINE is set when the shell asks for completions, Complete then
	// exits.
	completion(commander).Complete(commander.Name())

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(int(commander.Execute(ctx)))
}

// completion describes the command line for shell completion. Install it
// with COMP_INSTALL=1 fin.
func completion(commander *subcommands.Commander) *complete.Command {
	quarters := predict.Something
	topics, _ := docs.GetAllTopics()
	ratios := predict.Set{"current_ratio", "quick_ratio", "net_profit_margin", "return_on_assets", "debt_to_equity", "interest_cover"}

	root := &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"v":      predict.Nothing,
			"raw":    predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"update":     {Flags: map[string]complete.Predictor{"statement": predict.Set{"pl", "bs"}}},
			"snapshot":   {Flags: map[string]complete.Predictor{"q": quarters}},
			"statements": {},
			"ratios":     {Flags: map[string]complete.Predictor{"no-benchmarks": predict.Nothing}},
			"trends":     {Flags: map[string]complete.Predictor{"ratio": ratios}},
			"report": {Flags: map[string]complete.Predictor{
				"skip-update": predict.Nothing,
				"snapshot":    predict.Nothing,
				"q":           quarters,
			}},
			"assist": {Flags: map[string]complete.Predictor{"q": quarters}},
			"topic":  {Args: predict.Set(append(topics, "*"))},
		},
	}
	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		if _, ok := root.Sub[c.Name()]; !ok {
			root.Sub[c.Name()] = &complete.Command{}
		}
	})
	return root
}
