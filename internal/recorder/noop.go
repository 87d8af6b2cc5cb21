package recorder

import (
	"context"
	"time"
)

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ context.Context, _ *EvaluationRecord) error { return nil }
func (n *NoopRecorder) PruneBefore(_ context.Context, _ time.Time) (int64, error)     { return 0, nil }
func (n *NoopRecorder) Recent(_ context.Context, _ int) ([]EvaluationRecord, error)   { return nil, nil }
func (n *NoopRecorder) Close() error                                                  { return nil }
