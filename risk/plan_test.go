package risk

import (
	"testing"

	"github.com/rustyeddy/fxbot/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipSize(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0001, PipSize(-4), 1e-12)
	assert.InDelta(t, 0.01, PipSize(-2), 1e-12)
}

func TestPlanBuy(t *testing.T) {
	t.Parallel()

	plan, err := Plan(Inputs{
		Balance:     1000,
		Direction:   market.Buy,
		StopPips:    20,
		EntryPrice:  1.2345,
		RewardRatio: 2,
		Instrument:  "GBP_USD",
	})
	require.NoError(t, err)

	assert.Equal(t, 10000, plan.Units)
	assert.InDelta(t, 20.0, plan.RiskAmount, 1e-9)
	assert.InDelta(t, 1.2325, plan.StopPrice, 1e-9)
	assert.InDelta(t, 1.2385, plan.TargetPrice, 1e-9)
	assert.InDelta(t, 1000.0, plan.Balance, 1e-9)
	assert.Equal(t, market.Buy, plan.Direction)
}

func TestPlanSell(t *testing.T) {
	t.Parallel()

	plan, err := Plan(Inputs{
		Balance:     1000,
		Direction:   market.Sell,
		StopPips:    20,
		EntryPrice:  1.2345,
		RewardRatio: 2,
		Instrument:  "GBP_USD",
	})
	require.NoError(t, err)

	assert.Equal(t, -10000, plan.Units)
	assert.InDelta(t, 1.2365, plan.StopPrice, 1e-9)
	assert.InDelta(t, 1.2305, plan.TargetPrice, 1e-9)
}

func TestPlanPriceOrdering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		direction market.Signal
		stopPips  float64
		rr        float64
	}{
		{"buy tight", market.Buy, 5, 1},
		{"buy default", market.Buy, 25, 2},
		{"buy wide", market.Buy, 120, 3.5},
		{"sell tight", market.Sell, 5, 1},
		{"sell default", market.Sell, 25, 2},
		{"sell wide", market.Sell, 120, 3.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plan, err := Plan(Inputs{
				Balance:     2500,
				Direction:   tt.direction,
				StopPips:    tt.stopPips,
				EntryPrice:  1.1000,
				RewardRatio: tt.rr,
				Instrument:  "EUR_USD",
			})
			require.NoError(t, err)

			if tt.direction == market.Buy {
				assert.Less(t, plan.StopPrice, plan.EntryPrice)
				assert.Greater(t, plan.TargetPrice, plan.EntryPrice)
				assert.Greater(t, plan.Units, 0)
			} else {
				assert.Greater(t, plan.StopPrice, plan.EntryPrice)
				assert.Less(t, plan.TargetPrice, plan.EntryPrice)
				assert.Less(t, plan.Units, 0)
			}
		})
	}
}

func TestPlanZeroStopDistance(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Balance:    1000,
		Direction:  market.Buy,
		StopPips:   0,
		EntryPrice: 1.2345,
		Instrument: "GBP_USD",
	}

	// Rejection is idempotent: a second call fails identically.
	for i := 0; i < 2; i++ {
		_, err := Plan(in)
		assert.ErrorIs(t, err, ErrInvalidStopDistance)
	}
}

func TestPlanJPYPipValue(t *testing.T) {
	t.Parallel()

	// JPY pairs use a 0.01 pip: 20 pips = 0.20 price distance.
	plan, err := Plan(Inputs{
		Balance:     1000,
		Direction:   market.Buy,
		StopPips:    20,
		EntryPrice:  150.123,
		RewardRatio: 2,
		Instrument:  "USD_JPY",
	})
	require.NoError(t, err)

	assert.Equal(t, 100, plan.Units) // floor(20 / 0.20)
	assert.InDelta(t, 149.923, plan.StopPrice, 1e-9)
	assert.InDelta(t, 150.523, plan.TargetPrice, 1e-9)
}

func TestPlanDefaultsRewardRatio(t *testing.T) {
	t.Parallel()

	plan, err := Plan(Inputs{
		Balance:    1000,
		Direction:  market.Buy,
		StopPips:   10,
		EntryPrice: 1.3000,
		Instrument: "GBP_USD",
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.3020, plan.TargetPrice, 1e-9)
}

func TestPlanUnknownInstrument(t *testing.T) {
	t.Parallel()

	_, err := Plan(Inputs{
		Balance:    1000,
		Direction:  market.Buy,
		StopPips:   20,
		EntryPrice: 1.2345,
		Instrument: "BTC_USD",
	})
	assert.Error(t, err)
}

func TestPlanBadDirection(t *testing.T) {
	t.Parallel()

	_, err := Plan(Inputs{
		Balance:    1000,
		Direction:  market.None,
		StopPips:   20,
		EntryPrice: 1.2345,
		Instrument: "GBP_USD",
	})
	assert.Error(t, err)
}

func TestPlanUnitsFormula(t *testing.T) {
	t.Parallel()

	tests := []struct {
		balance  float64
		stopPips float64
		want     int
	}{
		{1000, 20, 10000},
		{1000, 25, 8000},
		{5000, 50, 20000},
		{333, 7, 9514}, // floor(6.66 / 0.0007)
	}

	for _, tt := range tests {
		plan, err := Plan(Inputs{
			Balance:    tt.balance,
			Direction:  market.Buy,
			StopPips:   tt.stopPips,
			EntryPrice: 1.2000,
			Instrument: "GBP_USD",
		})
		require.NoError(t, err)
		assert.Equal(t, tt.want, plan.Units,
			"balance=%v stopPips=%v", tt.balance, tt.stopPips)
	}
}
