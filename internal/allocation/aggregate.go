package allocation

import (
	"fmt"
	"math"
	"sort"
)

// Basis selects which value of a BuyCandidate is averaged per ticker.
type Basis string

const (
	// BasisScore averages the raw sentiment scores. The rounded average is the
	// final share count, so it is not rescaled by MaxShares.
	BasisScore Basis = "score"
	// BasisShares averages the per-observation share counts.
	BasisShares Basis = "shares"
)

func ParseBasis(s string) (Basis, error) {
	switch Basis(s) {
	case "", BasisScore:
		return BasisScore, nil
	case BasisShares:
		return BasisShares, nil
	}
	return "", fmt.Errorf("unknown aggregate basis %q", s)
}

type tally struct {
	symbol string
	sum    float64
	count  int
}

// Aggregate collapses repeated buy candidates into one entry per ticker,
// ordered by descending share count. Ties keep first-occurrence order.
func Aggregate(candidates []BuyCandidate, basis Basis) []BuyEntry {
	order := make([]*tally, 0, len(candidates))
	index := make(map[string]*tally, len(candidates))
	for _, c := range candidates {
		t, ok := index[c.Symbol]
		if !ok {
			t = &tally{symbol: c.Symbol}
			index[c.Symbol] = t
			order = append(order, t)
		}
		if basis == BasisShares {
			t.sum += float64(c.Shares)
		} else {
			t.sum += c.Score
		}
		t.count++
	}

	entries := make([]BuyEntry, 0, len(order))
	for _, t := range order {
		shares := int(math.Round(t.sum / float64(t.count)))
		if shares < 0 {
			shares = 0
		}
		entries = append(entries, BuyEntry{Symbol: t.symbol, Shares: shares})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Shares > entries[j].Shares
	})
	return entries
}
