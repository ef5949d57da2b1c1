package broker

import (
	"context"

	"github.com/rustyeddy/fxbot/market"
)

// FallbackBalance is used for sizing when the balance fetch fails. The
// balance source never brings down a trading decision on its own.
const FallbackBalance = 1000.0

// Broker is the boundary to the brokerage. Implementations must be safe for
// concurrent use: the strategy loop and webhook handlers share one client.
type Broker interface {
	// GetBalance returns current account equity in account currency.
	GetBalance(ctx context.Context) (float64, error)

	// GetCandles returns completed candles only, oldest first.
	GetCandles(ctx context.Context, instrument string, g market.Granularity, count int) ([]market.Candle, error)

	// GetTick returns the latest bid/ask for an instrument.
	GetTick(ctx context.Context, instrument string) (market.Tick, error)

	CreateMarketOrder(ctx context.Context, req MarketOrderRequest) (OrderFill, error)

	// ListOpenTrades returns the broker's view of open positions.
	ListOpenTrades(ctx context.Context) ([]OpenTrade, error)

	// ModifyStop replaces the stop-loss order on an open trade.
	ModifyStop(ctx context.Context, tradeID string, stop float64) error
}

type MarketOrderRequest struct {
	Instrument string
	Units      int // signed: negative = short
	StopLoss   float64
	TakeProfit float64
}

type OrderFill struct {
	TradeID    string
	Instrument string
	Units      int
	Price      float64
}

// OpenTrade is broker-owned state, read fresh each trailing cycle and
// written back only through ModifyStop.
type OpenTrade struct {
	ID         string
	Instrument string
	Units      int      // signed: negative = short
	Stop       *float64 // nil when no stop is attached
}

// Long reports the direction of the trade.
func (t OpenTrade) Long() bool {
	return t.Units > 0
}
