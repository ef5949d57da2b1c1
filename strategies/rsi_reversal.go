package strategies

import (
	"github.com/rustyeddy/fxbot/indicators"
	"github.com/rustyeddy/fxbot/market"
)

// RSIReversal signals when the RSI crosses back through a threshold:
// up through Oversold is a buy, down through Overbought is a sell. Sitting
// beyond a threshold without crossing it yields no signal.
type RSIReversal struct {
	Period     int     // 14
	Oversold   float64 // 30
	Overbought float64 // 70
}

func DefaultRSIReversal() RSIReversal {
	return RSIReversal{
		Period:     indicators.DefaultRSIPeriod,
		Oversold:   30,
		Overbought: 70,
	}
}

func (s RSIReversal) Evaluate(candles []market.Candle) market.Signal {
	// Need a previous and a current RSI reading to detect a crossing.
	if len(candles) < s.Period+2 {
		return market.None
	}

	prev, err := indicators.RSI(candles[:len(candles)-1], s.Period)
	if err != nil {
		return market.None
	}
	cur, err := indicators.RSI(candles, s.Period)
	if err != nil {
		return market.None
	}

	switch {
	case prev <= s.Oversold && cur > s.Oversold:
		return market.Buy
	case prev >= s.Overbought && cur < s.Overbought:
		return market.Sell
	default:
		return market.None
	}
}
