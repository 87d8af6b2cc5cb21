package server

import (
	"time"

	"QuantAnalyst/internal/recorder"
)

// AnalyzeRequest is the body of POST /analyze. Prices are oldest first and
// may be empty, but the field itself must be present.
type AnalyzeRequest struct {
	Prices []float64 `json:"prices" validate:"required"`
}

// AnalyzeResponse carries the rendered technical report.
type AnalyzeResponse struct {
	Symbol            string `json:"symbol,omitempty"`
	TechnicalAnalysis string `json:"technical_analysis"`
}

// ErrorResponse is returned for any client or upstream failure.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details []ValidationError `json:"details,omitempty"`
}

// EvaluationsQuery is the query string of GET /evaluations.
type EvaluationsQuery struct {
	Limit int `query:"limit" default:"20" validate:"gte=1,lte=500"`
}

// EvaluationDTO is the wire form of an audit record.
type EvaluationDTO struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Source       string    `json:"source"`
	Symbol       string    `json:"symbol,omitempty"`
	SeriesLength int       `json:"series_length"`
	Sufficient   bool      `json:"sufficient"`
	RSI          float64   `json:"rsi"`
	SMA          float64   `json:"sma"`
	UpperBand    float64   `json:"upper_band"`
	LowerBand    float64   `json:"lower_band"`
	CurrentPrice float64   `json:"current_price"`
}

func toEvaluationDTO(r recorder.EvaluationRecord) EvaluationDTO {
	return EvaluationDTO{
		ID:           r.ID,
		Timestamp:    r.Timestamp.UTC(),
		Source:       r.Source,
		Symbol:       r.Symbol,
		SeriesLength: r.SeriesLength,
		Sufficient:   r.Sufficient,
		RSI:          r.RSI,
		SMA:          r.SMA,
		UpperBand:    r.UpperBand,
		LowerBand:    r.LowerBand,
		CurrentPrice: r.CurrentPrice,
	}
}
