package strategies

import "github.com/rustyeddy/fxbot/market"

// Evaluator derives a directional signal from a candle series. Evaluators
// are pure: no side effects, no broker access, deterministic for a given
// series.
type Evaluator interface {
	Evaluate(candles []market.Candle) market.Signal
}

// Combined runs the moving-average crossover first and only consults the
// RSI reversal when the crossover has no opinion. The ordering is a fixed
// design choice.
type Combined struct {
	MA  MACross
	RSI RSIReversal
}

func (c Combined) Evaluate(candles []market.Candle) market.Signal {
	if sig := c.MA.Evaluate(candles); sig != market.None {
		return sig
	}
	return c.RSI.Evaluate(candles)
}

// Default returns the stock signal generator: MA(10/30) crossover with an
// RSI(14) 30/70 reversal fallback.
func Default() Combined {
	return Combined{
		MA:  MACross{ShortWindow: 10, LongWindow: 30},
		RSI: DefaultRSIReversal(),
	}
}
