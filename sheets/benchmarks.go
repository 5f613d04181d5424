package sheets

import (
	"context"
	"fmt"

	"github.com/etnz/finance"
)

// Benchmarks is a two column table of the spreadsheet: ratio name, benchmark.
type Benchmarks struct {
	c   *Client
	rng string
}

// Benchmarks returns the benchmark table at rng.
func (c *Client) Benchmarks(rng string) *Benchmarks { return &Benchmarks{c: c, rng: rng} }

func (b *Benchmarks) Benchmarks(ctx context.Context) (finance.Benchmarks, error) {
	grid, err := b.c.read(ctx, b.rng)
	if err != nil {
		return nil, err
	}
	res := make(finance.Benchmarks)
	for _, row := range grid {
		if len(row) < 2 {
			continue
		}
		name, _ := row[0].(string)
		r, err := finance.ParseRatio(name)
		if err != nil {
			continue // headers and notes.
		}
		v, err := parseCell(row[1])
		if err != nil {
			return nil, fmt.Errorf("benchmark %s in %s: %w", r, b.rng, err)
		}
		res[r] = v
	}
	if err := res.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", b.rng, err)
	}
	return res, nil
}
