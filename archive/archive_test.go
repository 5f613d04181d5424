package archive

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "fin.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ratios(values map[finance.Ratio]string) finance.RatioSet {
	m := make(map[finance.Ratio]decimal.Decimal, len(values))
	for r, v := range values {
		m[r] = decimal.RequireFromString(v)
	}
	return finance.NewRatioSet(m)
}

func TestLedgerStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Get(ctx, finance.Cash)
	var nf *finance.FieldNotFoundError
	require.True(t, errors.As(err, &nf), "got %v", err)
	assert.Equal(t, finance.Cash, nf.Key)

	require.NoError(t, db.Set(ctx, finance.Cash, decimal.NewFromInt(20000)))
	require.NoError(t, db.Set(ctx, finance.Cash, decimal.RequireFromString("25000.50")))

	v, err := db.Get(ctx, finance.Cash)
	require.NoError(t, err)
	assert.Equal(t, "25000.5", v.String())
}

func TestLedgerStore_Update(t *testing.T) {
	db := openTestDB(t)
	c := &console{inputs: []string{"100000", "20000", "10000", "3000", "20000", "10000"}}

	require.NoError(t, finance.Update(context.Background(), db, c, finance.DefaultAccounts()))

	v, err := db.Get(context.Background(), finance.ShortTermLoans)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(10000)))
}

// console answers prompts from a script.
type console struct{ inputs []string }

func (c *console) Prompt(string) (string, error) {
	in := c.inputs[0]
	c.inputs = c.inputs[1:]
	return in, nil
}

func (c *console) Display(string) {}

func TestRecordAndSeries(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	quarters := []string{"2024-Q4", "2025-Q1", "2025-Q2", "2025-Q3", "2025-Q4"}
	values := []string{"1", "1.1", "1.2", "1.5", "1.4"}
	// recorded out of order on purpose.
	for _, i := range []int{2, 0, 4, 1, 3} {
		id, err := db.Record(ctx, date.MustParse(quarters[i]), ratios(map[finance.Ratio]string{finance.CurrentRatio: values[i]}))
		require.NoError(t, err)
		_, err = uuid.Parse(id)
		assert.NoError(t, err, "snapshot id %q", id)
	}

	s, err := db.History(4).Series(ctx, finance.CurrentRatio)
	require.NoError(t, err)
	require.Len(t, s, 4)
	assert.Equal(t, "2025-Q1", s[0].Period)
	assert.Equal(t, "1.1", s[0].Value.String())
	assert.Equal(t, "2025-Q4", s[3].Period)

	_, err = db.History(4).Series(ctx, finance.QuickRatio)
	assert.ErrorIs(t, err, finance.ErrNoHistory)
}

func TestRecord_ReplacesQuarter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	q := date.MustParse("2025-Q3")

	first, err := db.Record(ctx, q, ratios(map[finance.Ratio]string{finance.CurrentRatio: "1", finance.QuickRatio: "0.5"}))
	require.NoError(t, err)
	second, err := db.Record(ctx, q, ratios(map[finance.Ratio]string{finance.CurrentRatio: "2"}))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	snapshots, err := db.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, second, snapshots[0].ID)
	assert.Equal(t, q, snapshots[0].Quarter)
	assert.Equal(t, 1, snapshots[0].Ratios.Len())

	_, err = db.History(4).Series(ctx, finance.QuickRatio)
	assert.ErrorIs(t, err, finance.ErrNoHistory, "ratios of the replaced snapshot must be gone")
}

func TestSnapshots(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.Record(ctx, date.MustParse("2025-Q2"), ratios(map[finance.Ratio]string{finance.InterestCover: "11", finance.DebtToEquity: "75.27"}))
	require.NoError(t, err)
	_, err = db.Record(ctx, date.MustParse("2025-Q1"), finance.NewRatioSet(nil))
	require.NoError(t, err)

	snapshots, err := db.Snapshots(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "2025-Q1", snapshots[0].Quarter.String())
	assert.Equal(t, 0, snapshots[0].Ratios.Len())
	v, ok := snapshots[1].Ratios.Get(finance.DebtToEquity)
	require.True(t, ok)
	assert.Equal(t, "75.27", v.String())
	assert.False(t, snapshots[1].RecordedAt.IsZero())
}

func TestAnalyzeTrendsFromArchive(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	for q, v := range map[string]string{"2025-Q1": "0", "2025-Q2": "100", "2025-Q3": "110"} {
		_, err := db.Record(ctx, date.MustParse(q), ratios(map[finance.Ratio]string{finance.InterestCover: v}))
		require.NoError(t, err)
	}

	trends, err := finance.AnalyzeTrends(ctx, db.History(4), finance.InterestCover)
	require.NoError(t, err)
	require.Len(t, trends, 1)
	require.Len(t, trends[0].Deltas, 2)
	assert.Equal(t, finance.PriorZero, trends[0].Deltas[0].Tag)
	assert.Equal(t, finance.Positive, trends[0].Deltas[1].Tag)
}
