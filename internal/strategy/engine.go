// Package strategy ties the indicator calculations into a single evaluation
// of a price series.
package strategy

import (
	"QuantAnalyst/internal/calculator"
	"QuantAnalyst/internal/model"
	"QuantAnalyst/internal/report"
)

// MinReportLength is the minimum number of prices needed for a report.
const MinReportLength = 20

// InsufficientData is returned by Evaluate for series shorter than MinReportLength.
const InsufficientData = "Insufficient data."

// Analyze computes the indicator snapshot for prices, oldest first.
// ok is false when the series is too short, in which case nothing is computed.
func Analyze(prices []float64) (snap *model.IndicatorSnapshot, ok bool) {
	if len(prices) < MinReportLength {
		return nil, false
	}

	snap = &model.IndicatorSnapshot{
		RSI: calculator.CalculateRSI(prices, calculator.DefaultRSIPeriod),
	}
	if bands, ok := calculator.CalculateBollinger(prices, calculator.DefaultBandPeriod); ok {
		snap.SMA = bands.SMA
		snap.UpperBand = bands.Upper
		snap.LowerBand = bands.Lower
		snap.CurrentPrice = bands.CurrentPrice
	}
	return snap, true
}

// Evaluation is the outcome of evaluating one price series.
// Snapshot is nil when the series was too short.
type Evaluation struct {
	Snapshot *model.IndicatorSnapshot
	Report   string
}

// Run analyzes prices and renders the report in one pass.
func Run(prices []float64) Evaluation {
	snap, ok := Analyze(prices)
	if !ok {
		return Evaluation{Report: InsufficientData}
	}
	return Evaluation{Snapshot: snap, Report: report.FormatTechnicalReport(snap)}
}

// Evaluate renders the technical report for prices, or InsufficientData.
// It is safe for concurrent use and never mutates prices.
func Evaluate(prices []float64) string {
	return Run(prices).Report
}
