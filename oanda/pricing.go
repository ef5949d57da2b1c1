package oanda

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rustyeddy/fxbot/market"
)

type pricingResponse struct {
	Prices []struct {
		Instrument string `json:"instrument"`
		Time       string `json:"time"`
		Bids       []struct {
			Price string `json:"price"`
		} `json:"bids"`
		Asks []struct {
			Price string `json:"price"`
		} `json:"asks"`
	} `json:"prices"`
}

// GetTick returns the latest bid/ask quote for an instrument.
func (c *Client) GetTick(ctx context.Context, instrument string) (market.Tick, error) {
	params := url.Values{}
	params.Set("instruments", instrument)

	var resp pricingResponse
	path := fmt.Sprintf("/v3/accounts/%s/pricing", c.accountID)
	if err := c.get(ctx, path, params, &resp); err != nil {
		return market.Tick{}, fmt.Errorf("get pricing: %w", err)
	}

	if len(resp.Prices) == 0 {
		return market.Tick{}, fmt.Errorf("no price returned for %s", instrument)
	}
	p := resp.Prices[0]
	if len(p.Bids) == 0 || len(p.Asks) == 0 {
		return market.Tick{}, fmt.Errorf("incomplete quote for %s", instrument)
	}

	bid, err := strconv.ParseFloat(p.Bids[0].Price, 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("parse bid %q: %w", p.Bids[0].Price, err)
	}
	ask, err := strconv.ParseFloat(p.Asks[0].Price, 64)
	if err != nil {
		return market.Tick{}, fmt.Errorf("parse ask %q: %w", p.Asks[0].Price, err)
	}

	tick := market.Tick{
		Instrument: p.Instrument,
		Bid:        bid,
		Ask:        ask,
	}
	if t, err := time.Parse(time.RFC3339, p.Time); err == nil {
		tick.Time = t
	}
	return tick, nil
}
