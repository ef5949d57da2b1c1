package oanda

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/fxbot/market"
)

type candleData struct {
	O string `json:"o"`
	H string `json:"h"`
	L string `json:"l"`
	C string `json:"c"`
}

type apiCandle struct {
	Complete bool       `json:"complete"`
	Volume   int        `json:"volume"`
	Time     string     `json:"time"`
	Mid      candleData `json:"mid"`
}

type candlesResponse struct {
	Instrument  string      `json:"instrument"`
	Granularity string      `json:"granularity"`
	Candles     []apiCandle `json:"candles"`
}

// GetCandles fetches up to `count` midpoint candles, oldest first.
// Incomplete candles are skipped so a forming bar never feeds a signal.
func (c *Client) GetCandles(ctx context.Context, instrument string, g market.Granularity, count int) ([]market.Candle, error) {
	if instrument == "" {
		return nil, fmt.Errorf("instrument is required")
	}
	if count <= 0 || count > 5000 {
		return nil, fmt.Errorf("count must be 1..5000, got %d", count)
	}
	if g == "" {
		g = market.M5
	}

	params := url.Values{}
	params.Set("price", "M")
	params.Set("granularity", string(g))
	params.Set("count", strconv.Itoa(count))

	var resp candlesResponse
	path := fmt.Sprintf("/v3/instruments/%s/candles", instrument)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("get candles: %w", err)
	}

	candles := make([]market.Candle, 0, len(resp.Candles))
	for _, ac := range resp.Candles {
		if !ac.Complete {
			continue
		}

		t, err := time.Parse(time.RFC3339, ac.Time)
		if err != nil {
			return nil, fmt.Errorf("parse time %s: %w", ac.Time, err)
		}

		open, err := strconv.ParseFloat(ac.Mid.O, 64)
		if err != nil {
			return nil, fmt.Errorf("parse open price: %w", err)
		}
		high, err := strconv.ParseFloat(ac.Mid.H, 64)
		if err != nil {
			return nil, fmt.Errorf("parse high price: %w", err)
		}
		low, err := strconv.ParseFloat(ac.Mid.L, 64)
		if err != nil {
			return nil, fmt.Errorf("parse low price: %w", err)
		}
		closeP, err := strconv.ParseFloat(ac.Mid.C, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close price: %w", err)
		}

		candles = append(candles, market.Candle{
			Time:   t,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closeP,
			Volume: float64(ac.Volume),
		})
	}

	return candles, nil
}
