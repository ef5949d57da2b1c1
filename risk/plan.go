package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/rustyeddy/fxbot/market"
)

// RiskFraction is the fixed fraction of account balance put at risk per
// trade. It is deliberately not caller-supplied.
const RiskFraction = 0.02

// DefaultRewardRatio places the target twice as far as the stop.
const DefaultRewardRatio = 2.0

// ErrInvalidStopDistance is returned when the stop distance works out to a
// zero price distance. It is a rejected precondition: no order may be built
// from it and it is never retried.
var ErrInvalidStopDistance = errors.New("invalid stop distance: price distance is zero")

// Inputs describes one sizing decision. Balance is read fresh by the caller
// immediately before planning.
type Inputs struct {
	Balance     float64
	Direction   market.Signal
	StopPips    float64
	EntryPrice  float64
	RewardRatio float64
	Instrument  string
}

// TradePlan is a fully priced, risk-bounded order. It is computed once and
// never mutated; Units is signed (negative = short).
type TradePlan struct {
	Instrument  string
	Direction   market.Signal
	Units       int
	EntryPrice  float64
	StopPrice   float64
	TargetPrice float64
	RiskAmount  float64
	Balance     float64
}

func pipSize(loc int) float64 {
	return math.Pow(10, float64(loc))
}

// PipSize returns the pip size for a given pip location.
func PipSize(loc int) float64 {
	return pipSize(loc)
}

// Plan converts a directional decision into a sized order with stop and
// target placed on the correct side of entry:
//
//	units      = floor(balance * 2% / (stopPips * pip))
//	buy:  stop = entry - dist, target = entry + dist*rr
//	sell: stop = entry + dist, target = entry - dist*rr
//
// Pure computation, no I/O.
func Plan(in Inputs) (TradePlan, error) {
	meta, ok := market.Instruments[in.Instrument]
	if !ok {
		return TradePlan{}, fmt.Errorf("unknown instrument %q", in.Instrument)
	}
	if in.Direction != market.Buy && in.Direction != market.Sell {
		return TradePlan{}, fmt.Errorf("direction must be buy or sell, got %q", in.Direction)
	}
	if in.EntryPrice <= 0 {
		return TradePlan{}, fmt.Errorf("entry price must be positive, got %v", in.EntryPrice)
	}
	if in.StopPips < 0 {
		return TradePlan{}, fmt.Errorf("stop distance must not be negative, got %v pips", in.StopPips)
	}

	dist := in.StopPips * pipSize(meta.PipLocation)
	if dist == 0 {
		return TradePlan{}, ErrInvalidStopDistance
	}

	rr := in.RewardRatio
	if rr <= 0 {
		rr = DefaultRewardRatio
	}

	riskAmount := in.Balance * RiskFraction
	units := int(math.Floor(riskAmount / dist))

	plan := TradePlan{
		Instrument: in.Instrument,
		Direction:  in.Direction,
		EntryPrice: in.EntryPrice,
		RiskAmount: riskAmount,
		Balance:    in.Balance,
	}

	if in.Direction == market.Sell {
		plan.Units = -units
		plan.StopPrice = market.RoundPrice(in.EntryPrice+dist, meta.DisplayPrecision)
		plan.TargetPrice = market.RoundPrice(in.EntryPrice-dist*rr, meta.DisplayPrecision)
	} else {
		plan.Units = units
		plan.StopPrice = market.RoundPrice(in.EntryPrice-dist, meta.DisplayPrecision)
		plan.TargetPrice = market.RoundPrice(in.EntryPrice+dist*rr, meta.DisplayPrecision)
	}

	return plan, nil
}
