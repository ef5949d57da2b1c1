package indicators

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

func TestMA(t *testing.T) {
	t.Parallel()

	candles := candlesFrom(1.0, 2.0, 3.0, 4.0, 5.0)

	v, err := MA(candles, 5)
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, v, 1e-9)

	// Only the trailing window counts.
	v, err = MA(candles, 2)
	assert.NoError(t, err)
	assert.InDelta(t, 4.5, v, 1e-9)
}

func TestMAErrors(t *testing.T) {
	t.Parallel()

	_, err := MA(candlesFrom(1.0, 2.0), 3)
	assert.Error(t, err)

	_, err = MA(candlesFrom(1.0, 2.0), 0)
	assert.Error(t, err)
}

func TestRSIAllGains(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 1.0 + float64(i)*0.001
	}

	v, err := RSI(candlesFrom(closes...), DefaultRSIPeriod)
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, v, 1e-9)
}

func TestRSIAllLosses(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 15)
	for i := range closes {
		closes[i] = 2.0 - float64(i)*0.001
	}

	v, err := RSI(candlesFrom(closes...), DefaultRSIPeriod)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, v, 1e-9)
}

func TestRSIMixed(t *testing.T) {
	t.Parallel()

	// 7 unit gains and 7 half-unit losses: RS = 2, RSI = 100 - 100/3.
	closes := []float64{10}
	for i := 0; i < 7; i++ {
		closes = append(closes, closes[len(closes)-1]+1.0)
		closes = append(closes, closes[len(closes)-1]-0.5)
	}

	v, err := RSI(candlesFrom(closes...), DefaultRSIPeriod)
	assert.NoError(t, err)
	assert.InDelta(t, 100.0-100.0/3.0, v, 1e-9)
}

func TestRSINotEnoughData(t *testing.T) {
	t.Parallel()

	_, err := RSI(candlesFrom(1, 2, 3), DefaultRSIPeriod)
	assert.Error(t, err)
}
