package strategies

import (
	"testing"

	"github.com/rustyeddy/fxbot/market"
	"github.com/stretchr/testify/assert"
)

func candlesFrom(closes ...float64) []market.Candle {
	out := make([]market.Candle, len(closes))
	for i, c := range closes {
		out[i] = market.Candle{Close: c}
	}
	return out
}

func TestMACrossBull(t *testing.T) {
	t.Parallel()

	s := MACross{ShortWindow: 2, LongWindow: 3}

	// Short MA moves from below the long MA to above it on the last candle.
	sig := s.Evaluate(candlesFrom(3, 2, 1, 1, 5))
	assert.Equal(t, market.Buy, sig)
}

func TestMACrossBear(t *testing.T) {
	t.Parallel()

	s := MACross{ShortWindow: 2, LongWindow: 3}

	sig := s.Evaluate(candlesFrom(1, 2, 3, 3, 0))
	assert.Equal(t, market.Sell, sig)
}

func TestMACrossNoCross(t *testing.T) {
	t.Parallel()

	s := MACross{ShortWindow: 2, LongWindow: 3}

	// Steadily rising: short stays above long, no crossing event.
	sig := s.Evaluate(candlesFrom(1, 2, 3, 4, 5))
	assert.Equal(t, market.None, sig)
}

func TestMACrossInsufficientData(t *testing.T) {
	t.Parallel()

	s := MACross{ShortWindow: 10, LongWindow: 30}

	assert.Equal(t, market.None, s.Evaluate(candlesFrom(1, 2, 3)))
	assert.Equal(t, market.None, s.Evaluate(nil))
}

func TestMACrossBadWindows(t *testing.T) {
	t.Parallel()

	s := MACross{ShortWindow: 30, LongWindow: 10}
	assert.Equal(t, market.None, s.Evaluate(candlesFrom(1, 2, 3, 4, 5)))
}

func TestRSIReversalBuy(t *testing.T) {
	t.Parallel()

	s := RSIReversal{Period: 2, Oversold: 30, Overbought: 70}

	// RSI was pinned at 0 and recovers up through 30.
	sig := s.Evaluate(candlesFrom(5, 4, 3, 3.5))
	assert.Equal(t, market.Buy, sig)
}

func TestRSIReversalSell(t *testing.T) {
	t.Parallel()

	s := RSIReversal{Period: 2, Oversold: 30, Overbought: 70}

	// RSI was pinned at 100 and falls back through 70.
	sig := s.Evaluate(candlesFrom(1, 2, 3, 2.5))
	assert.Equal(t, market.Sell, sig)
}

func TestRSIReversalNoCrossing(t *testing.T) {
	t.Parallel()

	s := RSIReversal{Period: 2, Oversold: 30, Overbought: 70}

	// Still falling: RSI stays below the oversold line without crossing up.
	assert.Equal(t, market.None, s.Evaluate(candlesFrom(5, 4, 3, 2)))
}

func TestRSIReversalInsufficientData(t *testing.T) {
	t.Parallel()

	s := DefaultRSIReversal()
	assert.Equal(t, market.None, s.Evaluate(candlesFrom(1, 2, 3)))
}

// The crossover result always wins; RSI is a fallback, not a vote.
func TestCombinedPriority(t *testing.T) {
	t.Parallel()

	c := Combined{
		MA:  MACross{ShortWindow: 2, LongWindow: 4},
		RSI: RSIReversal{Period: 2, Oversold: 30, Overbought: 70},
	}

	// Engineered so the two methods disagree: MA sees a bull cross while
	// RSI sees a fall back through overbought.
	series := candlesFrom(10, 1, 2, 6, 2)

	assert.Equal(t, market.Buy, c.MA.Evaluate(series))
	assert.Equal(t, market.Sell, c.RSI.Evaluate(series))
	assert.Equal(t, market.Buy, c.Evaluate(series))
}

func TestCombinedFallsBackToRSI(t *testing.T) {
	t.Parallel()

	c := Combined{
		MA:  MACross{ShortWindow: 2, LongWindow: 3},
		RSI: RSIReversal{Period: 2, Oversold: 30, Overbought: 70},
	}

	// No MA cross (4 candles, steady fall then recovery too small to flip
	// the averages), but an RSI recovery through oversold.
	series := candlesFrom(5, 4, 3, 3.5)
	assert.Equal(t, market.None, c.MA.Evaluate(series))
	assert.Equal(t, market.Buy, c.Evaluate(series))
}
