package sheets

import (
	"context"
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// History is the ratio history kept as a table in the spreadsheet.
//
// The first row holds the quarters, oldest first, and each following row the
// values of one ratio, named in the first column:
//
//	ratio          | 2025-Q1 | 2025-Q2 | 2025-Q3
//	current_ratio  | 1.2     | 1.35    | 1.5
//	quick_ratio    | 0.9     | 0.95    | 1.1
type History struct {
	c      *Client
	rng    string
	window int
}

// History returns the history table at rng; Series return at most window
// quarters.
func (c *Client) History(rng string, window int) *History {
	return &History{c: c, rng: rng, window: window}
}

func (h *History) Series(ctx context.Context, r finance.Ratio) (finance.Series, error) {
	grid, err := h.c.read(ctx, h.rng)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, finance.ErrNoHistory
	}
	header := grid[0]
	for _, row := range grid[1:] {
		if len(row) == 0 {
			continue
		}
		name, _ := row[0].(string)
		if rr, err := finance.ParseRatio(name); err != nil || rr != r {
			continue
		}
		var s finance.Series
		for j := 1; j < len(row) && j < len(header); j++ {
			if row[j] == "" {
				continue // not recorded for that quarter.
			}
			period, err := quarterLabel(header[j])
			if err != nil {
				return nil, fmt.Errorf("%s column %d: %w", h.rng, j+1, err)
			}
			v, err := parseCell(row[j])
			if err != nil {
				return nil, fmt.Errorf("%s %s %s: %w", h.rng, r, period, err)
			}
			s = append(s, finance.Observation{Period: period, Value: v})
		}
		if len(s) > h.window {
			s = s[len(s)-h.window:]
		}
		return s, nil
	}
	return nil, finance.ErrNoHistory
}

func quarterLabel(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid quarter %v", v)
	}
	q, err := date.Parse(s)
	if err != nil {
		return "", err
	}
	return q.String(), nil
}

// Record writes the ratios of quarter q in the table, replacing the column of
// q if it exists, or adding a new one. Ratios absent from set are left blank.
func (h *History) Record(ctx context.Context, q date.Quarter, set finance.RatioSet) error {
	sheet, column, row, err := splitRange(h.rng)
	if err != nil {
		return err
	}
	grid, err := h.c.read(ctx, h.rng)
	if err != nil {
		return err
	}
	prefix := ""
	if sheet != "" {
		prefix = sheet + "!"
	}

	if len(grid) == 0 {
		// a new table: write the ratio names first.
		names := [][]any{{"ratio"}}
		for _, r := range finance.Ratios() {
			names = append(names, []any{r.String()})
		}
		rng := fmt.Sprintf("%s%s%d:%s%d", prefix, column, row, column, row+len(names)-1)
		if err := h.c.write(ctx, rng, names); err != nil {
			return err
		}
		grid = names
	}

	j := len(grid[0])
	for i, v := range grid[0] {
		if s, ok := v.(string); ok && i > 0 && s == q.String() {
			j = i
			break
		}
	}

	values := [][]any{{q.String()}}
	for _, line := range grid[1:] {
		cell := ""
		if len(line) > 0 {
			name, _ := line[0].(string)
			if r, err := finance.ParseRatio(name); err == nil {
				if v, ok := set.Get(r); ok {
					cell = v.Round(4).String()
				}
			}
		}
		values = append(values, []any{cell})
	}

	col := columnName(columnIndex(column) + j)
	rng := fmt.Sprintf("%s%s%d:%s%d", prefix, col, row, col, row+len(values)-1)
	return h.c.write(ctx, rng, values)
}
