package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBollinger_ConstantWindow(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100
	}
	bands, ok := CalculateBollinger(prices, DefaultBandPeriod)
	require.True(t, ok)
	assert.Equal(t, 100.0, bands.SMA)
	assert.Equal(t, 100.0, bands.Upper)
	assert.Equal(t, 100.0, bands.Lower)
	assert.Equal(t, 100.0, bands.CurrentPrice)
}

func TestCalculateBollinger_PopulationDeviation(t *testing.T) {
	// window 2,4,4,4,5,5,7,9: mean 5, population stddev 2
	prices := []float64{50, 2, 4, 4, 4, 5, 5, 7, 9}
	bands, ok := CalculateBollinger(prices, 8)
	require.True(t, ok)
	assert.InDelta(t, 5.0, bands.SMA, 1e-9)
	assert.InDelta(t, 9.0, bands.Upper, 1e-9)
	assert.InDelta(t, 1.0, bands.Lower, 1e-9)
	assert.Equal(t, 9.0, bands.CurrentPrice)
}

func TestCalculateBollinger_Ramp(t *testing.T) {
	bands, ok := CalculateBollinger(ramp(1, 25), DefaultBandPeriod)
	require.True(t, ok)

	// population variance of 20 consecutive integers is (20^2-1)/12
	stdDev := math.Sqrt(399.0 / 12.0)
	assert.InDelta(t, 15.5, bands.SMA, 1e-9)
	assert.InDelta(t, 15.5+2*stdDev, bands.Upper, 1e-9)
	assert.InDelta(t, 15.5-2*stdDev, bands.Lower, 1e-9)
	assert.Equal(t, 25.0, bands.CurrentPrice)
}

func TestCalculateBollinger_Unavailable(t *testing.T) {
	bands, ok := CalculateBollinger(ramp(1, 19), DefaultBandPeriod)
	assert.False(t, ok)
	assert.Zero(t, bands)

	_, ok = CalculateBollinger(ramp(1, 30), 0)
	assert.False(t, ok)
}

func TestCalculateBollinger_Ordering(t *testing.T) {
	prices := make([]float64, 120)
	for i := range prices {
		prices[i] = 50 + 5*math.Cos(float64(i)/4) + float64(i%5)
	}
	for n := DefaultBandPeriod; n <= len(prices); n++ {
		bands, ok := CalculateBollinger(prices[:n], DefaultBandPeriod)
		require.True(t, ok)
		assert.GreaterOrEqual(t, bands.Upper, bands.SMA)
		assert.GreaterOrEqual(t, bands.SMA, bands.Lower)
	}
}
