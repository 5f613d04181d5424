package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/finance/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	quarter string
}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "discuss the quarter's figures with the AI assistant" }
func (*assistCmd) Usage() string {
	return `fin assist [-q 2025-Q3] [question...]

Start an interactive session with the AI assistant, it reads the statements,
the ratios and their trends. GEMINI_API_KEY must be set.
`
}

func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quarter, "q", "", "quarter under review (default: the current quarter)")
}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	question := strings.Join(f.Args(), " ")
	return execute(ctx, func(ctx context.Context, a *app) error {
		w, err := c.workbook(ctx, a)
		if err != nil {
			return err
		}
		client, err := genai.NewClient(ctx, nil)
		if err != nil {
			return fmt.Errorf("initializing Gemini's client: %w", err)
		}
		model := a.cfg.Assist.Model
		assistant := agent.New(a.out, os.Stdin, model, agent.NewAnalyst(model, w), agent.NewAdvisor(model))
		return assistant.Run(ctx, client, question)
	})
}

func (c *assistCmd) workbook(ctx context.Context, a *app) (*agent.Workbook, error) {
	q, err := parseQuarter(c.quarter)
	if err != nil {
		return nil, err
	}
	st, err := a.statements(ctx)
	if err != nil {
		return nil, err
	}
	rr := a.ratios(ctx, st, true)
	return &agent.Workbook{Quarter: q, Statements: st, Ratios: rr, Trends: a.trends(ctx)}, nil
}
