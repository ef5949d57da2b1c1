package trailing

import (
	"context"
	"errors"
	"testing"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBroker serves canned mid prices and records stop modifications.
type fakeBroker struct {
	mids      map[string]float64
	tickErr   map[string]error
	modifyErr map[string]error
	modified  map[string][]float64
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{
		mids:      make(map[string]float64),
		tickErr:   make(map[string]error),
		modifyErr: make(map[string]error),
		modified:  make(map[string][]float64),
	}
}

func (f *fakeBroker) GetBalance(ctx context.Context) (float64, error) { return 0, nil }

func (f *fakeBroker) GetCandles(ctx context.Context, instrument string, g market.Granularity, count int) ([]market.Candle, error) {
	return nil, nil
}

func (f *fakeBroker) GetTick(ctx context.Context, instrument string) (market.Tick, error) {
	if err := f.tickErr[instrument]; err != nil {
		return market.Tick{}, err
	}
	mid := f.mids[instrument]
	return market.Tick{Instrument: instrument, Bid: mid, Ask: mid}, nil
}

func (f *fakeBroker) CreateMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (broker.OrderFill, error) {
	return broker.OrderFill{}, nil
}

func (f *fakeBroker) ListOpenTrades(ctx context.Context) ([]broker.OpenTrade, error) {
	return nil, nil
}

func (f *fakeBroker) ModifyStop(ctx context.Context, tradeID string, stop float64) error {
	if err := f.modifyErr[tradeID]; err != nil {
		return err
	}
	f.modified[tradeID] = append(f.modified[tradeID], stop)
	return nil
}

func ptr(x float64) *float64 { return &x }

func TestCandidateLong(t *testing.T) {
	t.Parallel()

	meta := market.Instruments["GBP_USD"]
	tr := broker.OpenTrade{ID: "1", Instrument: "GBP_USD", Units: 10000}

	// No existing stop: always replaceable.
	stop, ok := Candidate(tr, 1.2345, meta)
	assert.True(t, ok)
	assert.InDelta(t, 1.2335, stop, 1e-9)

	// Tighter than the current stop: apply.
	tr.Stop = ptr(1.2300)
	stop, ok = Candidate(tr, 1.2345, meta)
	assert.True(t, ok)
	assert.InDelta(t, 1.2335, stop, 1e-9)

	// Would loosen protection: discard.
	tr.Stop = ptr(1.2340)
	_, ok = Candidate(tr, 1.2345, meta)
	assert.False(t, ok)

	// Equal is not strictly more protective.
	tr.Stop = ptr(1.2335)
	_, ok = Candidate(tr, 1.2345, meta)
	assert.False(t, ok)
}

func TestCandidateShort(t *testing.T) {
	t.Parallel()

	meta := market.Instruments["GBP_USD"]
	tr := broker.OpenTrade{ID: "1", Instrument: "GBP_USD", Units: -10000}

	stop, ok := Candidate(tr, 1.2345, meta)
	assert.True(t, ok)
	assert.InDelta(t, 1.2355, stop, 1e-9)

	tr.Stop = ptr(1.2400)
	stop, ok = Candidate(tr, 1.2345, meta)
	assert.True(t, ok)
	assert.InDelta(t, 1.2355, stop, 1e-9)

	tr.Stop = ptr(1.2350)
	_, ok = Candidate(tr, 1.2345, meta)
	assert.False(t, ok)
}

func TestCandidateJPYPrecision(t *testing.T) {
	t.Parallel()

	meta := market.Instruments["USD_JPY"]
	tr := broker.OpenTrade{ID: "1", Instrument: "USD_JPY", Units: 500}

	stop, ok := Candidate(tr, 150.123, meta)
	assert.True(t, ok)
	assert.InDelta(t, 150.023, stop, 1e-9) // 10 pips = 0.10
}

// For any price path, a long's stop never decreases and a short's never
// increases once the broker state is fed back in.
func TestMonotonicityOverTicks(t *testing.T) {
	t.Parallel()

	meta := market.Instruments["EUR_USD"]
	prices := []float64{1.1000, 1.1050, 1.1020, 1.1100, 1.0950, 1.1150, 1.1100}

	long := broker.OpenTrade{ID: "L", Instrument: "EUR_USD", Units: 1000}
	short := broker.OpenTrade{ID: "S", Instrument: "EUR_USD", Units: -1000}

	var lastLong, lastShort *float64
	for _, px := range prices {
		long.Stop, short.Stop = lastLong, lastShort

		if stop, ok := Candidate(long, px, meta); ok {
			if lastLong != nil {
				assert.Greater(t, stop, *lastLong)
			}
			lastLong = ptr(stop)
		}
		if stop, ok := Candidate(short, px, meta); ok {
			if lastShort != nil {
				assert.Less(t, stop, *lastShort)
			}
			lastShort = ptr(stop)
		}
	}

	require.NotNil(t, lastLong)
	require.NotNil(t, lastShort)
	assert.InDelta(t, 1.1140, *lastLong, 1e-9)  // trails the 1.1150 high
	assert.InDelta(t, 1.0960, *lastShort, 1e-9) // trails the 1.0950 low
}

func TestTickAppliesOnlyImprovements(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker()
	fb.mids["GBP_USD"] = 1.2345
	fb.mids["EUR_USD"] = 1.1000

	m := New(fb, nil)
	m.Tick(context.Background(), []broker.OpenTrade{
		{ID: "L1", Instrument: "GBP_USD", Units: 10000, Stop: ptr(1.2300)},
		{ID: "L2", Instrument: "GBP_USD", Units: 10000, Stop: ptr(1.2344)},
		{ID: "S1", Instrument: "EUR_USD", Units: -5000},
	})

	assert.Equal(t, []float64{1.2335}, fb.modified["L1"])
	assert.Empty(t, fb.modified["L2"]) // would loosen, discarded
	require.Len(t, fb.modified["S1"], 1)
	assert.InDelta(t, 1.1010, fb.modified["S1"][0], 1e-9)
}

func TestTickFailuresDoNotBlockOthers(t *testing.T) {
	t.Parallel()

	fb := newFakeBroker()
	fb.mids["GBP_USD"] = 1.2345
	fb.mids["EUR_USD"] = 1.1000
	fb.tickErr["GBP_USD"] = errors.New("pricing unavailable")
	fb.modifyErr["E1"] = errors.New("rejected")

	m := New(fb, nil)
	m.Tick(context.Background(), []broker.OpenTrade{
		{ID: "G1", Instrument: "GBP_USD", Units: 10000},           // price fetch fails
		{ID: "E1", Instrument: "EUR_USD", Units: 1000},            // modify fails
		{ID: "X1", Instrument: "XAU_XAG", Units: 100},             // unknown instrument
		{ID: "E2", Instrument: "EUR_USD", Units: 1000, Stop: nil}, // should still apply
	})

	assert.Empty(t, fb.modified["G1"])
	assert.Empty(t, fb.modified["E1"])
	assert.Empty(t, fb.modified["X1"])
	assert.Equal(t, []float64{1.0990}, fb.modified["E2"])
}
