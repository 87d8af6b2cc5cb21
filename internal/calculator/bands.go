package calculator

import (
	"github.com/montanaflynn/stats"

	"QuantAnalyst/internal/model"
)

const (
	// DefaultBandPeriod is the Bollinger window used in the technical report.
	DefaultBandPeriod = 20
	// BandWidth is the number of standard deviations between the mean and each band.
	BandWidth = 2.0
)

// CalculateBollinger computes Bollinger Bands over the trailing period prices.
// ok is false when fewer than period prices are available, in which case the
// returned Bands must be treated as unavailable rather than as a zero band.
func CalculateBollinger(prices []float64, period int) (bands model.Bands, ok bool) {
	if period <= 0 || len(prices) < period {
		return model.Bands{}, false
	}
	window := stats.Float64Data(prices[len(prices)-period:])

	mean := CalculateSMA(prices, period)
	// Population deviation: divides by period, not period-1.
	stdDev, err := stats.StandardDeviationPopulation(window)
	if err != nil {
		return model.Bands{}, false
	}

	return model.Bands{
		SMA:          mean,
		Upper:        mean + BandWidth*stdDev,
		Lower:        mean - BandWidth*stdDev,
		CurrentPrice: prices[len(prices)-1],
	}, true
}
