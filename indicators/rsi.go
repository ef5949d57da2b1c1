package indicators

import (
	"fmt"

	"github.com/rustyeddy/fxbot/market"
)

// DefaultRSIPeriod is the conventional 14-period lookback.
const DefaultRSIPeriod = 14

// RSI calculates the Relative Strength Index over the last `period` close
// deltas, scaled 0-100. Needs period+1 candles (period deltas).
//
// Gains and losses are simple averages of the per-candle deltas; a series
// with no losses reads 100, no gains reads 0.
func RSI(candles []market.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(candles) < period+1 {
		return 0, fmt.Errorf("not enough candles: need %d, got %d", period+1, len(candles))
	}

	start := len(candles) - period - 1
	var gains, losses float64
	for i := start + 1; i < len(candles); i++ {
		delta := candles[i].Close - candles[i-1].Close
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		if avgGain == 0 {
			return 50, nil
		}
		return 100, nil
	}

	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}
