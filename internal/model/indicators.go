package model

// IndicatorSnapshot holds the indicator values computed for one evaluation.
type IndicatorSnapshot struct {
	RSI          float64
	SMA          float64
	UpperBand    float64
	LowerBand    float64
	CurrentPrice float64
}

// Bands is the volatility envelope around the trailing-window mean.
type Bands struct {
	SMA          float64
	Upper        float64
	Lower        float64
	CurrentPrice float64
}
