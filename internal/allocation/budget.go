package allocation

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"sentiment-trading/pkg/logger"
)

// FitResult is the outcome of BudgetFitter.Fit.
type FitResult struct {
	Buys      []BuyEntry         `json:"buys"`
	Prices    map[string]float64 `json:"prices"`
	TotalCost float64            `json:"total_cost"`
	Steps     int                `json:"steps"`
}

type BudgetFitter struct {
	prices      PriceLookup
	concurrency int
	shrinkDelay time.Duration
	log         *logger.Logger
}

func NewBudgetFitter(prices PriceLookup, concurrency int, shrinkDelay time.Duration, log *logger.Logger) *BudgetFitter {
	if concurrency <= 0 {
		concurrency = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &BudgetFitter{
		prices:      prices,
		concurrency: concurrency,
		shrinkDelay: shrinkDelay,
		log:         log,
	}
}

// Fit trims buys until their total cost is within budget. Each step takes one
// share off the most expensive position, dropping the entry once it is down
// to its last share. Tickers without a price cost nothing and are never trimmed.
// The input slice is not modified.
func (f *BudgetFitter) Fit(ctx context.Context, buys []BuyEntry, budget float64) FitResult {
	if budget < 0 {
		budget = 0
	}

	prices := f.ResolvePrices(ctx, buys)
	list := make([]BuyEntry, len(buys))
	copy(list, buys)

	var limiter *rate.Limiter
	if f.shrinkDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(f.shrinkDelay), 1)
	}

	total := TotalCost(list, prices)
	steps := 0
	for total > budget && len(list) > 0 {
		idx := mostExpensive(list, prices)
		entry := list[idx]
		if entry.Shares > 1 {
			list[idx].Shares--
			f.log.DebugContext(ctx, "reducing shares",
				logger.StringField("symbol", entry.Symbol),
				logger.IntField("shares", entry.Shares-1),
			)
		} else {
			list = append(list[:idx], list[idx+1:]...)
			f.log.DebugContext(ctx, "removing from buy list",
				logger.StringField("symbol", entry.Symbol),
			)
		}
		steps++
		total = TotalCost(list, prices)

		if limiter != nil && total > budget {
			// pacing only; a cancelled context just stops the waiting
			_ = limiter.Wait(ctx)
		}
	}

	return FitResult{
		Buys:      list,
		Prices:    prices,
		TotalCost: total,
		Steps:     steps,
	}
}

// ResolvePrices looks up every distinct ticker once, at most concurrency at a
// time. Failed or negative lookups resolve to 0.
func (f *BudgetFitter) ResolvePrices(ctx context.Context, buys []BuyEntry) map[string]float64 {
	prices := make(map[string]float64, len(buys))
	if f.prices == nil {
		for _, b := range buys {
			prices[b.Symbol] = 0
		}
		return prices
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)

	seen := make(map[string]struct{}, len(buys))
	for _, b := range buys {
		if _, ok := seen[b.Symbol]; ok {
			continue
		}
		seen[b.Symbol] = struct{}{}

		symbol := b.Symbol
		g.Go(func() error {
			price, err := f.prices.GetPrice(gctx, symbol)
			if err != nil {
				f.log.WarnContext(gctx, "price unavailable, treating as zero",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err),
				)
				price = 0
			}
			if price < 0 {
				price = 0
			}
			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return prices
}

// TotalCost sums price*shares over the list. Missing prices count as 0.
func TotalCost(list []BuyEntry, prices map[string]float64) float64 {
	total := 0.0
	for _, e := range list {
		total += prices[e.Symbol] * float64(e.Shares)
	}
	return total
}

func mostExpensive(list []BuyEntry, prices map[string]float64) int {
	best := 0
	bestCost := prices[list[0].Symbol] * float64(list[0].Shares)
	for i := 1; i < len(list); i++ {
		cost := prices[list[i].Symbol] * float64(list[i].Shares)
		if cost > bestCost {
			best, bestCost = i, cost
		}
	}
	return best
}
