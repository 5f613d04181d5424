// Package date handles the quarters financial reports are prepared for.
package date

import (
	"encoding"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Quarter is a calendar quarter, e.g. 2025-Q3.
type Quarter struct {
	y int
	q int // 1 to 4
}

// NewQuarter returns the normalized quarter q of year, q=5 being the first
// quarter of the next year, and q=0 the last quarter of the previous one.
func NewQuarter(year, q int) Quarter {
	i := year*4 + q - 1
	y, r := i/4, i%4
	if r < 0 {
		y, r = y-1, r+4
	}
	return Quarter{y: y, q: r + 1}
}

// Of returns the quarter that contains t.
func Of(t time.Time) Quarter { return NewQuarter(t.Year(), (int(t.Month())-1)/3+1) }

// Current returns the current quarter.
//
// FIN_QUARTER, when set, overrides the clock so that reports can be reproduced.
func Current() Quarter {
	if env := os.Getenv("FIN_QUARTER"); env != "" {
		if q, err := Parse(env); err == nil {
			return q
		}
	}
	return Of(time.Now())
}

// Add returns the quarter n quarters after q.
func (q Quarter) Add(n int) Quarter { return NewQuarter(q.y, q.q+n) }

// Start returns the first day of the quarter, at midnight UTC.
func (q Quarter) Start() time.Time {
	return time.Date(q.y, time.Month(3*(q.q-1)+1), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the quarter, at midnight UTC.
func (q Quarter) End() time.Time { return q.Add(1).Start().AddDate(0, 0, -1) }

// String formats the quarter as "2025-Q3".
func (q Quarter) String() string { return fmt.Sprintf("%d-Q%d", q.y, q.q) }

// Parse parses a quarter. It is lenient and accepts "2025-Q3", "2025Q3" or "2025-q3".
func Parse(str string) (Quarter, error) {
	s := strings.ToUpper(strings.TrimSpace(str))
	year, num, ok := strings.Cut(s, "Q")
	year = strings.TrimSuffix(year, "-")
	if !ok {
		return Quarter{}, fmt.Errorf("invalid quarter %q want format \"2006-Q1\"", str)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Quarter{}, fmt.Errorf("invalid quarter %q: bad year: %w", str, err)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > 4 {
		return Quarter{}, fmt.Errorf("invalid quarter %q: quarter number must be 1 to 4", str)
	}
	return Quarter{y: y, q: n}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(str string) Quarter {
	q, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return q
}

// MarshalText implements encoding.TextMarshaler.
func (q Quarter) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quarter) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// check that a Quarter pointer is a valid text marshall/unmarshaller type.
var _ encoding.TextMarshaler = (*Quarter)(nil)
var _ encoding.TextUnmarshaler = (*Quarter)(nil)
