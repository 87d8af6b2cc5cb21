package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists evaluation records to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the service writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id            TEXT PRIMARY KEY,
			timestamp     INTEGER NOT NULL,
			source        TEXT NOT NULL,
			symbol        TEXT,
			series_length INTEGER NOT NULL,
			sufficient    INTEGER NOT NULL,
			rsi           REAL,
			sma           REAL,
			upper_band    REAL,
			lower_band    REAL,
			current_price REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_ts ON evaluations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordEvaluation(ctx context.Context, rec *EvaluationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO evaluations
		(id, timestamp, source, symbol, series_length, sufficient,
		 rsi, sma, upper_band, lower_band, current_price)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.Timestamp.Unix(), rec.Source, rec.Symbol,
		rec.SeriesLength, rec.Sufficient,
		rec.RSI, rec.SMA, rec.UpperBand, rec.LowerBand, rec.CurrentPrice,
	)
	if err != nil {
		return fmt.Errorf("insert evaluation: %w", err)
	}
	return nil
}

func (r *SQLiteRecorder) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, err := r.db.ExecContext(ctx, `DELETE FROM evaluations WHERE timestamp < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune evaluations: %w", err)
	}
	return res.RowsAffected()
}

// Recent returns up to limit records, newest first.
func (r *SQLiteRecorder) Recent(ctx context.Context, limit int) ([]EvaluationRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT
		id, timestamp, source, symbol, series_length, sufficient,
		rsi, sma, upper_band, lower_band, current_price
		FROM evaluations ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	var out []EvaluationRecord
	for rows.Next() {
		var (
			rec EvaluationRecord
			ts  int64
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Source, &rec.Symbol, &rec.SeriesLength, &rec.Sufficient,
			&rec.RSI, &rec.SMA, &rec.UpperBand, &rec.LowerBand, &rec.CurrentPrice); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
