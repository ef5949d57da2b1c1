// Package trailing maintains trailing stops on open positions.
package trailing

import (
	"context"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/risk"
	"go.uber.org/zap"
)

// TrailPips is the fixed distance the stop trails behind the latest price.
const TrailPips = 10.0

// Manager tightens the stop on every open trade once per strategy cycle.
// A stop only ever moves in the protective direction: up for longs, down
// for shorts. A candidate that would widen risk is discarded.
type Manager struct {
	broker broker.Broker
	log    *zap.Logger
}

func New(b broker.Broker, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{broker: b, log: log}
}

// Tick processes one trailing pass over the given open trades. Failures on
// one trade are logged and never block the rest of the portfolio.
func (m *Manager) Tick(ctx context.Context, trades []broker.OpenTrade) {
	for _, tr := range trades {
		m.trail(ctx, tr)
	}
}

func (m *Manager) trail(ctx context.Context, tr broker.OpenTrade) {
	meta, ok := market.Instruments[tr.Instrument]
	if !ok {
		m.log.Warn("trailing: unknown instrument, keeping stop",
			zap.String("trade_id", tr.ID),
			zap.String("instrument", tr.Instrument))
		return
	}

	tick, err := m.broker.GetTick(ctx, tr.Instrument)
	if err != nil {
		// No price means no decision; the prior stop stands.
		m.log.Warn("trailing: price fetch failed, keeping stop",
			zap.String("trade_id", tr.ID),
			zap.String("instrument", tr.Instrument),
			zap.Error(err))
		return
	}

	candidate, ok := Candidate(tr, tick.Mid(), meta)
	if !ok {
		return
	}

	if err := m.broker.ModifyStop(ctx, tr.ID, candidate); err != nil {
		m.log.Error("trailing: stop update failed",
			zap.String("trade_id", tr.ID),
			zap.String("instrument", tr.Instrument),
			zap.Float64("stop", candidate),
			zap.Error(err))
		return
	}

	m.log.Info("trailing: stop tightened",
		zap.String("trade_id", tr.ID),
		zap.String("instrument", tr.Instrument),
		zap.Float64("stop", candidate))
}

// Candidate computes the trailing stop for a trade at the given price and
// reports whether it improves on the existing stop. Exported for tests and
// for callers that already hold a price.
func Candidate(tr broker.OpenTrade, price float64, meta market.InstrumentMeta) (float64, bool) {
	dist := TrailPips * risk.PipSize(meta.PipLocation)

	var candidate float64
	if tr.Long() {
		candidate = price - dist
	} else {
		candidate = price + dist
	}
	candidate = market.RoundPrice(candidate, meta.DisplayPrecision)

	if tr.Stop == nil {
		return candidate, true
	}
	if tr.Long() && candidate > *tr.Stop {
		return candidate, true
	}
	if !tr.Long() && candidate < *tr.Stop {
		return candidate, true
	}
	return candidate, false
}
