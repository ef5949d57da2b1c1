package strategies

import (
	"github.com/rustyeddy/fxbot/indicators"
	"github.com/rustyeddy/fxbot/market"
)

// MACross signals on a simple moving average crossover:
//   - Bull cross: the short average was at or below the long average one
//     sample ago and is above it now.
//   - Bear cross: the reverse crossing.
//
// A series shorter than LongWindow+1 candles cannot show a cross and yields
// no signal.
type MACross struct {
	ShortWindow int // 10
	LongWindow  int // 30
}

func (s MACross) Evaluate(candles []market.Candle) market.Signal {
	if s.ShortWindow <= 0 || s.LongWindow <= s.ShortWindow {
		return market.None
	}
	if len(candles) < s.LongWindow+1 {
		return market.None
	}

	prev := candles[:len(candles)-1]

	prevShort, err := indicators.MA(prev, s.ShortWindow)
	if err != nil {
		return market.None
	}
	prevLong, err := indicators.MA(prev, s.LongWindow)
	if err != nil {
		return market.None
	}
	curShort, err := indicators.MA(candles, s.ShortWindow)
	if err != nil {
		return market.None
	}
	curLong, err := indicators.MA(candles, s.LongWindow)
	if err != nil {
		return market.None
	}

	lastDiff := prevShort - prevLong
	diff := curShort - curLong

	switch {
	case diff > 0 && lastDiff <= 0:
		return market.Buy
	case diff < 0 && lastDiff >= 0:
		return market.Sell
	default:
		return market.None
	}
}
