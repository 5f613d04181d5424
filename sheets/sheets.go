// Package sheets keeps the ledger in a Google Sheets spreadsheet.
//
// Each account is a single cell of the spreadsheet, e.g. "profit_and_loss!B5".
// The ratio history and the benchmarks can live in the same spreadsheet, as
// plain tables.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/finance"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is a connection to one spreadsheet.
type Client struct {
	srv *sheets.Service
	id  string
	log zerolog.Logger
}

// New connects to the spreadsheet id.
func New(ctx context.Context, id string, log zerolog.Logger, opts ...option.ClientOption) (*Client, error) {
	if id == "" {
		return nil, errors.New("no spreadsheet id configured")
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to spreadsheet %s: %w", id, err)
	}
	return &Client{srv: srv, id: id, log: log.With().Str("spreadsheet", id).Logger()}, nil
}

// NewFromCredentials connects to the spreadsheet id with a service account
// key file.
func NewFromCredentials(ctx context.Context, id, credentials string, log zerolog.Logger) (*Client, error) {
	return New(ctx, id, log,
		option.WithCredentialsFile(credentials),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
}

// read returns the unformatted values of rng.
func (c *Client) read(ctx context.Context, rng string) ([][]any, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(c.id, rng).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rng, err)
	}
	c.log.Debug().Str("range", rng).Int("rows", len(resp.Values)).Msg("read")
	return resp.Values, nil
}

// write writes rows at rng, the way an operator would type them.
func (c *Client) write(ctx context.Context, rng string, rows [][]any) error {
	_, err := c.srv.Spreadsheets.Values.Update(c.id, rng, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("writing %s: %w", rng, err)
	}
	c.log.Debug().Str("range", rng).Int("rows", len(rows)).Msg("write")
	return nil
}

// Store is a finance.LedgerStore backed by the spreadsheet cells.
type Store struct {
	c     *Client
	cells map[string]string // A1 range by account key.
}

// Store returns the ledger store that maps account keys to cells.
func (c *Client) Store(cells map[string]string) *Store {
	return &Store{c: c, cells: cells}
}

func (s *Store) cell(key string) (string, error) {
	rng, ok := s.cells[key]
	if !ok || rng == "" {
		return "", &finance.FieldNotFoundError{Key: key, Err: errors.New("no cell configured")}
	}
	return rng, nil
}

func (s *Store) Get(ctx context.Context, key string) (decimal.Decimal, error) {
	rng, err := s.cell(key)
	if err != nil {
		return decimal.Decimal{}, err
	}
	rows, err := s.c.read(ctx, rng)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return decimal.Decimal{}, &finance.FieldNotFoundError{Key: key, Err: fmt.Errorf("%s is empty", rng)}
	}
	v, err := parseCell(rows[0][0])
	if err != nil {
		return decimal.Decimal{}, &finance.FieldNotFoundError{Key: key, Err: fmt.Errorf("%s: %w", rng, err)}
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value decimal.Decimal) error {
	rng, err := s.cell(key)
	if err != nil {
		return err
	}
	return s.c.write(ctx, rng, [][]any{{value.String()}})
}

// parseCell converts a cell value to a decimal. Numbers formatted as text
// ("15,000", "$1,234.50") are accepted.
func parseCell(v any) (decimal.Decimal, error) {
	switch v := v.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		s := strings.TrimSpace(v)
		s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
		s = strings.TrimSuffix(s, "%")
		if s == "" {
			return decimal.Decimal{}, errors.New("empty cell")
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%q is not a number", v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("%v is not a number", v)
	}
}

// splitRange splits "history!B2:F8" into the sheet name, the column letters
// and the row of its top-left corner.
func splitRange(rng string) (sheet, column string, row int, err error) {
	sheet, cells, ok := strings.Cut(rng, "!")
	if !ok {
		cells, sheet = sheet, ""
	}
	start, _, _ := strings.Cut(cells, ":")
	i := strings.IndexFunc(start, func(r rune) bool { return r >= '0' && r <= '9' })
	if i <= 0 {
		return "", "", 0, fmt.Errorf("invalid range %q", rng)
	}
	column = strings.ToUpper(start[:i])
	if _, err := fmt.Sscanf(start[i:], "%d", &row); err != nil {
		return "", "", 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	return sheet, column, row, nil
}

// columnIndex returns the 0-based index of a column, "A" is 0, "AA" is 26.
func columnIndex(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A'+1)
	}
	return n - 1
}

// columnName is the inverse of columnIndex.
func columnName(i int) string {
	var b []byte
	for i++; i > 0; i = (i - 1) / 26 {
		b = append([]byte{byte('A' + (i-1)%26)}, b...)
	}
	return string(b)
}
