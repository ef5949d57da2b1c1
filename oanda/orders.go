package oanda

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rustyeddy/fxbot/broker"
	"github.com/rustyeddy/fxbot/market"
	"go.uber.org/zap"
)

type priceField struct {
	Price string `json:"price"`
}

type marketOrder struct {
	Instrument   string      `json:"instrument"`
	Units        string      `json:"units"`
	Type         string      `json:"type"`
	PositionFill string      `json:"positionFill"`
	StopLoss     *priceField `json:"stopLossOnFill,omitempty"`
	TakeProfit   *priceField `json:"takeProfitOnFill,omitempty"`
}

type orderRequestBody struct {
	Order marketOrder `json:"order"`
}

type orderResponse struct {
	OrderCreateTransaction struct {
		ID         string `json:"id"`
		Instrument string `json:"instrument"`
	} `json:"orderCreateTransaction"`
	OrderFillTransaction struct {
		ID          string `json:"id"`
		Price       string `json:"price"`
		TradeOpened *struct {
			TradeID string `json:"tradeID"`
			Units   string `json:"units"`
		} `json:"tradeOpened"`
	} `json:"orderFillTransaction"`
}

// formatPrice renders a price at the instrument's quoting precision.
func formatPrice(instrument string, price float64) string {
	places := 5
	if meta, ok := market.Instruments[instrument]; ok {
		places = meta.DisplayPrecision
	}
	return strconv.FormatFloat(price, 'f', places, 64)
}

// CreateMarketOrder submits a MARKET order with stop-loss and take-profit
// attached on fill.
func (c *Client) CreateMarketOrder(ctx context.Context, req broker.MarketOrderRequest) (broker.OrderFill, error) {
	if req.Units == 0 {
		return broker.OrderFill{}, fmt.Errorf("units must be non-zero")
	}

	body := orderRequestBody{
		Order: marketOrder{
			Instrument:   req.Instrument,
			Units:        strconv.Itoa(req.Units),
			Type:         "MARKET",
			PositionFill: "DEFAULT",
		},
	}
	if req.StopLoss > 0 {
		body.Order.StopLoss = &priceField{Price: formatPrice(req.Instrument, req.StopLoss)}
	}
	if req.TakeProfit > 0 {
		body.Order.TakeProfit = &priceField{Price: formatPrice(req.Instrument, req.TakeProfit)}
	}

	var resp orderResponse
	path := fmt.Sprintf("/v3/accounts/%s/orders", c.accountID)
	if err := c.do(ctx, "POST", path, nil, body, &resp); err != nil {
		return broker.OrderFill{}, fmt.Errorf("create order: %w", err)
	}

	fill := broker.OrderFill{
		TradeID:    resp.OrderCreateTransaction.ID,
		Instrument: req.Instrument,
		Units:      req.Units,
	}
	if ft := resp.OrderFillTransaction; ft.TradeOpened != nil {
		fill.TradeID = ft.TradeOpened.TradeID
		if px, err := strconv.ParseFloat(ft.Price, 64); err == nil {
			fill.Price = px
		}
	}

	c.log.Info("order submitted",
		zap.String("instrument", req.Instrument),
		zap.Int("units", req.Units),
		zap.String("trade_id", fill.TradeID),
	)
	return fill, nil
}
