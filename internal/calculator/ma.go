package calculator

import "QuantAnalyst/internal/model"

// DefaultSMAPeriod is the trend-average window used in the technical report.
const DefaultSMAPeriod = 20

// CalculateSMA computes the simple moving average of the last period prices.
// Returns 0 when the series is shorter than period; callers gate on length
// before trusting the result.
func CalculateSMA(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period {
		return 0
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period)
}

// Closes extracts close prices from bars, oldest first.
func Closes(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
