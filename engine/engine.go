// Package engine converts trade signals into risk-bounded broker orders.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/journal"
	"github.com/rustyeddy/fxbot/market"
	"github.com/rustyeddy/fxbot/notify"
	"github.com/rustyeddy/fxbot/pkg/id"
	"github.com/rustyeddy/fxbot/risk"
	"go.uber.org/zap"
)

// TradeRequest is one decided trade, from the webhook or the strategy loop.
type TradeRequest struct {
	Action      market.Signal
	StopPips    float64
	EntryPrice  float64
	RewardRatio float64
	Instrument  string
}

// Engine sizes and submits orders. The webhook handlers and the strategy
// loop share one Engine; the balance-read -> size -> submit sequence is
// serialized per instrument so two triggers cannot size against the same
// pre-trade balance at once.
type Engine struct {
	broker   broker.Broker
	journal  journal.Journal
	notifier notify.Notifier
	log      *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(b broker.Broker, j journal.Journal, n notify.Notifier, log *zap.Logger) *Engine {
	if n == nil {
		n = notify.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		broker:   b,
		journal:  j,
		notifier: n,
		log:      log,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (e *Engine) instrumentLock(instrument string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.locks[instrument]
	if !ok {
		l = &sync.Mutex{}
		e.locks[instrument] = l
	}
	return l
}

// PlaceTrade sizes and submits one order.
//
// A non-nil error is a rejected precondition (bad stop distance, unknown
// instrument): nothing was submitted and nothing will be retried. Broker
// failures are not errors to the caller; they are reported through the
// notifier and yield (false, nil). Retry, if any, happens on the next
// independent trigger.
func (e *Engine) PlaceTrade(ctx context.Context, req TradeRequest) (bool, error) {
	l := e.instrumentLock(req.Instrument)
	l.Lock()
	defer l.Unlock()

	balance, err := e.broker.GetBalance(ctx)
	if err != nil {
		balance = broker.FallbackBalance
		e.log.Warn("balance fetch failed, using fallback",
			zap.Float64("fallback", balance),
			zap.Error(err))
	}
	e.log.Info("account balance", zap.Float64("balance", balance))

	plan, err := risk.Plan(risk.Inputs{
		Balance:     balance,
		Direction:   req.Action,
		StopPips:    req.StopPips,
		EntryPrice:  req.EntryPrice,
		RewardRatio: req.RewardRatio,
		Instrument:  req.Instrument,
	})
	if err != nil {
		return false, err
	}

	e.log.Info("trade plan",
		zap.String("instrument", plan.Instrument),
		zap.String("direction", plan.Direction.String()),
		zap.Int("units", plan.Units),
		zap.Float64("entry", plan.EntryPrice),
		zap.Float64("stop", plan.StopPrice),
		zap.Float64("target", plan.TargetPrice),
		zap.Float64("risk_amount", plan.RiskAmount),
	)

	fill, err := e.broker.CreateMarketOrder(ctx, broker.MarketOrderRequest{
		Instrument: plan.Instrument,
		Units:      plan.Units,
		StopLoss:   plan.StopPrice,
		TakeProfit: plan.TargetPrice,
	})
	if err != nil {
		e.log.Error("order submission failed",
			zap.String("instrument", plan.Instrument),
			zap.Error(err))
		e.notifier.Notify(fmt.Sprintf("Trade failed: %v", err))
		return false, nil
	}

	e.record(plan)
	e.notifier.Notify(fmt.Sprintf(
		"Executed %s %d units of %s at %v, SL: %v, TP: %v",
		strings.ToUpper(plan.Direction.String()),
		plan.Units, plan.Instrument,
		plan.EntryPrice, plan.StopPrice, plan.TargetPrice,
	))

	e.log.Info("trade executed",
		zap.String("trade_id", fill.TradeID),
		zap.String("instrument", plan.Instrument),
		zap.Int("units", plan.Units))
	return true, nil
}

// record writes the journal entry. Best-effort: a journal failure never
// unwinds an already-submitted order.
func (e *Engine) record(plan risk.TradePlan) {
	if e.journal == nil {
		return
	}
	err := e.journal.Record(journal.TradeRecord{
		ID:         id.New(),
		Time:       time.Now().UTC(),
		Instrument: plan.Instrument,
		Action:     plan.Direction.String(),
		Units:      plan.Units,
		Price:      plan.EntryPrice,
		RiskAmount: plan.RiskAmount,
		Balance:    plan.Balance,
	})
	if err != nil {
		e.log.Error("journal record failed", zap.Error(err))
	}
}
