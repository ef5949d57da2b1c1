package engine

import (
	"context"
	"time"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/strategies"
	"github.com/rustyeddy/fxbot/trailing"
	"go.uber.org/zap"
)

// LoopConfig carries the scheduler's knobs. Zero values fall back to the
// stock setup: 5-minute cycles over M5 candles with a 25-pip stop.
type LoopConfig struct {
	Watchlist   []string
	Interval    time.Duration
	Granularity string
	CandleCount int
	StopPips    float64
	RewardRatio float64
	CallTimeout time.Duration
}

func (c *LoopConfig) applyDefaults() {
	if c.Interval <= 0 {
		c.Interval = 5 * time.Minute
	}
	if c.Granularity == "" {
		c.Granularity = "M5"
	}
	if c.CandleCount <= 0 {
		c.CandleCount = 100
	}
	if c.StopPips <= 0 {
		c.StopPips = 25
	}
	if c.RewardRatio <= 0 {
		c.RewardRatio = 2
	}
	if c.CallTimeout <= 0 {
		c.CallTimeout = 15 * time.Second
	}
}

// Loop is the periodic strategy scheduler. Each cycle evaluates the
// watchlist for fresh signals and then runs one trailing-stop pass over all
// open trades. It runs concurrently with the webhook handlers and shares
// their Engine and broker client.
type Loop struct {
	cfg      LoopConfig
	engine   *Engine
	broker   broker.Broker
	signals  strategies.Evaluator
	trailing *trailing.Manager
	log      *zap.Logger
}

func NewLoop(cfg LoopConfig, e *Engine, b broker.Broker, sig strategies.Evaluator, tm *trailing.Manager, log *zap.Logger) *Loop {
	cfg.applyDefaults()
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		cfg:      cfg,
		engine:   e,
		broker:   b,
		signals:  sig,
		trailing: tm,
		log:      log,
	}
}

// Run blocks until ctx is cancelled, firing one cycle immediately and then
// one per interval. A slow or failing cycle never stops the next one.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info("strategy loop started",
		zap.Strings("watchlist", l.cfg.Watchlist),
		zap.Duration("interval", l.cfg.Interval))

	ticker := time.NewTicker(l.cfg.Interval)
	defer ticker.Stop()

	l.Cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			l.log.Info("strategy loop stopped")
			return
		case <-ticker.C:
			l.Cycle(ctx)
		}
	}
}

// Cycle runs one full pass: signal evaluation per instrument, then a
// trailing-stop tick over the open positions.
func (l *Loop) Cycle(ctx context.Context) {
	for _, instrument := range l.cfg.Watchlist {
		l.evaluate(ctx, instrument)
	}
	l.trailOpenTrades(ctx)
}

func (l *Loop) evaluate(ctx context.Context, instrument string) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.CallTimeout)
	defer cancel()

	candles, err := l.broker.GetCandles(cctx, instrument, market.Granularity(l.cfg.Granularity), l.cfg.CandleCount)
	if err != nil {
		// No data means no signal, never zero-filled candles.
		l.log.Warn("candle fetch failed",
			zap.String("instrument", instrument),
			zap.Error(err))
		return
	}
	if len(candles) == 0 {
		return
	}

	sig := l.signals.Evaluate(candles)
	if sig == market.None {
		return
	}

	entry := candles[len(candles)-1].Close
	l.log.Info("signal",
		zap.String("instrument", instrument),
		zap.String("direction", sig.String()),
		zap.Float64("price", entry))

	ok, err := l.engine.PlaceTrade(ctx, TradeRequest{
		Action:      sig,
		StopPips:    l.cfg.StopPips,
		EntryPrice:  entry,
		RewardRatio: l.cfg.RewardRatio,
		Instrument:  instrument,
	})
	if err != nil {
		l.log.Warn("trade declined",
			zap.String("instrument", instrument),
			zap.Error(err))
		return
	}
	if !ok {
		l.log.Warn("trade submission failed, waiting for next cycle",
			zap.String("instrument", instrument))
	}
}

func (l *Loop) trailOpenTrades(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, l.cfg.CallTimeout)
	defer cancel()

	trades, err := l.broker.ListOpenTrades(cctx)
	if err != nil {
		// Stops stay where they are until the next cycle.
		l.log.Warn("open trades fetch failed", zap.Error(err))
		return
	}
	if len(trades) == 0 {
		return
	}
	l.trailing.Tick(cctx, trades)
}
