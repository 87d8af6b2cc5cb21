// Package report renders indicator snapshots as plain-text summaries meant to
// be read by people and language models alike.
package report

import (
	"fmt"
	"strings"

	"QuantAnalyst/internal/model"
)

// Header is the first line of every technical report.
const Header = "TECHNICAL INDICATORS (Calculated by QuantAnalyst):"

// FormatTechnicalReport formats an indicator snapshot into the multi-line
// technical report. All values use two decimal places.
func FormatTechnicalReport(snap *model.IndicatorSnapshot) string {
	var b strings.Builder

	b.WriteString(Header + "\n")
	b.WriteString(fmt.Sprintf("- Current Price: $%.2f\n", snap.CurrentPrice))
	b.WriteString(fmt.Sprintf("- SMA (20-day Trend): $%.2f (Price is %s avg)\n", snap.SMA, trendQualifier(snap)))
	b.WriteString(fmt.Sprintf("- RSI (Momentum): %.2f (Note: >70 Overbought, <30 Oversold)\n", snap.RSI))
	b.WriteString(fmt.Sprintf("- Bollinger Bands: Upper[$%.2f] Lower[$%.2f]\n", snap.UpperBand, snap.LowerBand))

	return b.String()
}

func trendQualifier(snap *model.IndicatorSnapshot) string {
	if snap.CurrentPrice > snap.SMA {
		return "Above"
	}
	return "Below"
}
