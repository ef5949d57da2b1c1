// market/instruments.go
package market

// DefaultInstrument is the pair traded when a webhook payload omits the
// instrument field.
const DefaultInstrument = "GBP_USD"

type InstrumentMeta struct {
	Name             string
	BaseCurrency     string
	QuoteCurrency    string
	PipLocation      int // pip = 10^PipLocation
	DisplayPrecision int // decimal places for quoted prices
	MarginRate       float64
}

var Instruments = map[string]InstrumentMeta{
	"GBP_USD": {
		Name:             "GBP_USD",
		BaseCurrency:     "GBP",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		DisplayPrecision: 5,
		MarginRate:       0.03,
	},
	"EUR_USD": {
		Name:             "EUR_USD",
		BaseCurrency:     "EUR",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		DisplayPrecision: 5,
		MarginRate:       0.02,
	},
	"AUD_USD": {
		Name:             "AUD_USD",
		BaseCurrency:     "AUD",
		QuoteCurrency:    "USD",
		PipLocation:      -4,
		DisplayPrecision: 5,
		MarginRate:       0.03,
	},
	"USD_JPY": {
		Name:             "USD_JPY",
		BaseCurrency:     "USD",
		QuoteCurrency:    "JPY",
		PipLocation:      -2,
		DisplayPrecision: 3,
		MarginRate:       0.02,
	},
	"EUR_JPY": {
		Name:             "EUR_JPY",
		BaseCurrency:     "EUR",
		QuoteCurrency:    "JPY",
		PipLocation:      -2,
		DisplayPrecision: 3,
		MarginRate:       0.03,
	},
}
