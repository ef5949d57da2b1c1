package journal

import "time"

// TradeRecord is one executed trade, written once at submission time.
// Units is signed; RiskAmount and Balance capture the sizing inputs at the
// moment of the decision.
type TradeRecord struct {
	ID         string
	Time       time.Time
	Instrument string
	Action     string
	Units      int
	Price      float64
	RiskAmount float64
	Balance    float64
}

// Journal records executed trades. Recording is best-effort from the
// engine's point of view: failures are logged there, never propagated into
// the trading path.
type Journal interface {
	Record(TradeRecord) error
	Close() error
}
