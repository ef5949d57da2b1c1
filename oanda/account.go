package oanda

import (
	"context"
	"fmt"
	"strconv"
)

type accountSummaryResponse struct {
	Account struct {
		ID       string `json:"id"`
		Currency string `json:"currency"`
		Balance  string `json:"balance"`
		NAV      string `json:"NAV"`
	} `json:"account"`
}

// GetBalance returns the account balance. Callers sizing a trade fall back
// to broker.FallbackBalance when this fails.
func (c *Client) GetBalance(ctx context.Context) (float64, error) {
	var resp accountSummaryResponse
	path := fmt.Sprintf("/v3/accounts/%s/summary", c.accountID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return 0, fmt.Errorf("get account summary: %w", err)
	}

	balance, err := strconv.ParseFloat(resp.Account.Balance, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance %q: %w", resp.Account.Balance, err)
	}
	return balance, nil
}
