// Package archive keeps the ledger and the quarterly ratio snapshots in a
// local SQLite database.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed schema.sql
var schema string

// DB is the archive database.
type DB struct {
	conn *sql.DB
	log  zerolog.Logger
}

// Open opens, and creates if needed, the archive at path.
func Open(ctx context.Context, path string, log zerolog.Logger) (*DB, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path to absolute: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", buildConnectionString(absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", absPath, err)
	}
	// a single writer, the fin process.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database %s: %w", absPath, err)
	}
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database %s: %w", absPath, err)
	}
	return &DB{conn: conn, log: log.With().Str("db", absPath).Logger()}, nil
}

func buildConnectionString(path string) string {
	connStr := path + "?_pragma=journal_mode(WAL)"
	connStr += "&_pragma=synchronous(FULL)"
	connStr += "&_pragma=foreign_keys(1)"
	connStr += "&_pragma=busy_timeout(5000)"
	return connStr
}

// Close closes the database connection
func (db *DB) Close() error { return db.conn.Close() }

// Get implements finance.LedgerStore.
func (db *DB) Get(ctx context.Context, key string) (decimal.Decimal, error) {
	var raw string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM fields WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Decimal{}, &finance.FieldNotFoundError{Key: key}
	}
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("reading %s: %w", key, err)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &finance.FieldNotFoundError{Key: key, Err: err}
	}
	db.log.Debug().Str("key", key).Str("value", raw).Msg("get")
	return v, nil
}

// Set implements finance.LedgerStore.
func (db *DB) Set(ctx context.Context, key string, value decimal.Decimal) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO fields (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value.String(), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	db.log.Debug().Str("key", key).Str("value", value.String()).Msg("set")
	return nil
}

// Snapshot is the record of the ratios of one quarter.
type Snapshot struct {
	ID         string
	Quarter    date.Quarter
	RecordedAt time.Time
	Ratios     finance.RatioSet
}

// Record saves the ratios of quarter q, replacing any previous snapshot of
// the same quarter. It returns the new snapshot id.
func (db *DB) Record(ctx context.Context, q date.Quarter, set finance.RatioSet) (string, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE quarter = ?`, q.String()); err != nil {
		return "", fmt.Errorf("replacing snapshot %s: %w", q, err)
	}
	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshots (id, quarter, recorded_at) VALUES (?, ?, ?)`,
		id, q.String(), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return "", fmt.Errorf("recording snapshot %s: %w", q, err)
	}
	for _, r := range set.Ratios() {
		v, _ := set.Get(r)
		if _, err := tx.ExecContext(ctx, `INSERT INTO snapshot_ratios (snapshot_id, ratio, value) VALUES (?, ?, ?)`,
			id, r.String(), v.String()); err != nil {
			return "", fmt.Errorf("recording %s of %s: %w", r, q, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	db.log.Debug().Str("quarter", q.String()).Str("id", id).Int("ratios", set.Len()).Msg("snapshot")
	return id, nil
}

// Snapshots returns all the snapshots, oldest quarter first.
func (db *DB) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT s.id, s.quarter, s.recorded_at, r.ratio, r.value
		FROM snapshots s LEFT JOIN snapshot_ratios r ON r.snapshot_id = s.id
		ORDER BY s.quarter, r.ratio`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Snapshot
	values := map[finance.Ratio]decimal.Decimal{}
	flush := func() {
		if len(res) > 0 {
			res[len(res)-1].Ratios = finance.NewRatioSet(values)
		}
		values = map[finance.Ratio]decimal.Decimal{}
	}
	for rows.Next() {
		var id, quarter, recordedAt string
		var ratio, value sql.NullString
		if err := rows.Scan(&id, &quarter, &recordedAt, &ratio, &value); err != nil {
			return nil, err
		}
		if len(res) == 0 || res[len(res)-1].ID != id {
			flush()
			q, err := date.Parse(quarter)
			if err != nil {
				return nil, fmt.Errorf("snapshot %s: %w", id, err)
			}
			at, _ := time.Parse(time.RFC3339, recordedAt)
			res = append(res, Snapshot{ID: id, Quarter: q, RecordedAt: at})
		}
		if !ratio.Valid {
			continue
		}
		r, err := finance.ParseRatio(ratio.String)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", id, err)
		}
		v, err := decimal.NewFromString(value.String)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s %s: %w", id, r, err)
		}
		values[r] = v
	}
	flush()
	return res, rows.Err()
}

// History is a finance.HistorySource reading the recorded snapshots.
type History struct {
	db     *DB
	window int
}

// History returns the history of the last window recorded quarters.
func (db *DB) History(window int) *History { return &History{db: db, window: window} }

func (h *History) Series(ctx context.Context, r finance.Ratio) (finance.Series, error) {
	rows, err := h.db.conn.QueryContext(ctx, `
		SELECT s.quarter, r.value
		FROM snapshot_ratios r JOIN snapshots s ON s.id = r.snapshot_id
		WHERE r.ratio = ?
		ORDER BY s.quarter DESC
		LIMIT ?`, r.String(), h.window)
	if err != nil {
		return nil, fmt.Errorf("reading history of %s: %w", r, err)
	}
	defer rows.Close()

	var s finance.Series
	for rows.Next() {
		var o finance.Observation
		var value string
		if err := rows.Scan(&o.Period, &value); err != nil {
			return nil, err
		}
		if o.Value, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("history of %s in %s: %w", r, o.Period, err)
		}
		s = append(s, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, finance.ErrNoHistory
	}
	slices.Reverse(s) // oldest first.
	return s, nil
}
