package market

import (
	"fmt"
	"strings"
)

// Signal is a directional trade recommendation derived from price history
// or supplied by an external caller.
type Signal int

const (
	None Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "none"
	}
}

// ParseSignal converts a webhook action string to a Signal. Only "buy" and
// "sell" (any case) are valid actions.
func ParseSignal(action string) (Signal, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return None, fmt.Errorf("unknown action %q (want buy|sell)", action)
	}
}
