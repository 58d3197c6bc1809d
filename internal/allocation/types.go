// Package allocation turns per-ticker news sentiment into a sell list and a
// budget-fitted buy list. Everything here is a pure transformation over its
// inputs except BudgetFitter, which queries prices through PriceLookup.
package allocation

import "context"

const (
	DefaultMaxShares     = 15
	DefaultSellThreshold = -0.1
)

// Observation is one (ticker, sentiment score) pair reported by a news source.
type Observation struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
}

// BuyCandidate is a classified buy signal before aggregation. It keeps the
// originating score next to the share count derived from it.
type BuyCandidate struct {
	Symbol string  `json:"symbol"`
	Score  float64 `json:"score"`
	Shares int     `json:"shares"`
}

// BuyEntry is one line of the final buy list.
type BuyEntry struct {
	Symbol string `json:"symbol"`
	Shares int    `json:"shares"`
}

// PriceLookup resolves the current market price of a ticker. Implementations
// return an error when no price is available; callers treat that as 0.
type PriceLookup interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// PriceLookupFunc adapts a function to PriceLookup.
type PriceLookupFunc func(ctx context.Context, symbol string) (float64, error)

func (f PriceLookupFunc) GetPrice(ctx context.Context, symbol string) (float64, error) {
	return f(ctx, symbol)
}
