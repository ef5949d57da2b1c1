package oanda

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rustyeddy/fxbot/broker"
)

type openTradesResponse struct {
	Trades []struct {
		ID            string `json:"id"`
		Instrument    string `json:"instrument"`
		CurrentUnits  string `json:"currentUnits"`
		StopLossOrder *struct {
			Price string `json:"price"`
		} `json:"stopLossOrder"`
	} `json:"trades"`
}

// ListOpenTrades returns every open trade on the account with its current
// stop-loss, if one is attached.
func (c *Client) ListOpenTrades(ctx context.Context) ([]broker.OpenTrade, error) {
	var resp openTradesResponse
	path := fmt.Sprintf("/v3/accounts/%s/openTrades", c.accountID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list open trades: %w", err)
	}

	out := make([]broker.OpenTrade, 0, len(resp.Trades))
	for _, tr := range resp.Trades {
		units, err := strconv.ParseFloat(tr.CurrentUnits, 64)
		if err != nil {
			return nil, fmt.Errorf("parse units %q for trade %s: %w", tr.CurrentUnits, tr.ID, err)
		}

		ot := broker.OpenTrade{
			ID:         tr.ID,
			Instrument: tr.Instrument,
			Units:      int(units),
		}
		if tr.StopLossOrder != nil {
			stop, err := strconv.ParseFloat(tr.StopLossOrder.Price, 64)
			if err != nil {
				return nil, fmt.Errorf("parse stop %q for trade %s: %w", tr.StopLossOrder.Price, tr.ID, err)
			}
			ot.Stop = &stop
		}
		out = append(out, ot)
	}
	return out, nil
}

type modifyStopBody struct {
	StopLoss struct {
		Price       string `json:"price"`
		TimeInForce string `json:"timeInForce"`
	} `json:"stopLoss"`
}

// ModifyStop replaces the stop-loss order attached to an open trade.
func (c *Client) ModifyStop(ctx context.Context, tradeID string, stop float64) error {
	// Callers pass stops already rounded to the instrument's precision, so
	// the shortest decimal form is the right wire format.
	var body modifyStopBody
	body.StopLoss.Price = strconv.FormatFloat(stop, 'f', -1, 64)
	body.StopLoss.TimeInForce = "GTC"

	path := fmt.Sprintf("/v3/accounts/%s/trades/%s/orders", c.accountID, tradeID)
	if err := c.do(ctx, "PUT", path, nil, body, nil); err != nil {
		return fmt.Errorf("modify stop for trade %s: %w", tradeID, err)
	}
	return nil
}
