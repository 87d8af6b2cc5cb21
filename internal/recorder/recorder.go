package recorder

import (
	"context"
	"time"

	"github.com/google/uuid"

	"QuantAnalyst/internal/model"
)

// Evaluation sources.
const (
	SourceRequest = "request"
	SourceSymbol  = "symbol"
)

// EvaluationRecord is the audit entry for one evaluation. Prices themselves
// are never stored, only the series length and the computed values.
type EvaluationRecord struct {
	ID           string
	Timestamp    time.Time
	Source       string // "request" or "symbol"
	Symbol       string
	SeriesLength int
	Sufficient   bool
	RSI          float64
	SMA          float64
	UpperBand    float64
	LowerBand    float64
	CurrentPrice float64
}

// NewEvaluationRecord builds a record for an evaluation. snap may be nil when
// the series was too short to evaluate.
func NewEvaluationRecord(source, symbol string, seriesLength int, snap *model.IndicatorSnapshot) *EvaluationRecord {
	rec := &EvaluationRecord{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		Source:       source,
		Symbol:       symbol,
		SeriesLength: seriesLength,
	}
	if snap != nil {
		rec.Sufficient = true
		rec.RSI = snap.RSI
		rec.SMA = snap.SMA
		rec.UpperBand = snap.UpperBand
		rec.LowerBand = snap.LowerBand
		rec.CurrentPrice = snap.CurrentPrice
	}
	return rec
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordEvaluation(ctx context.Context, rec *EvaluationRecord) error
	// PruneBefore deletes records older than cutoff and returns how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]EvaluationRecord, error)
	Close() error
}
