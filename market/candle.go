package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) candlestick data for one
// completed period. Series are ordered oldest-first, most-recent-last.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close prices from a candle series, preserving order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
