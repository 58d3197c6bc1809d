package allocation

import "math"

// Classifier maps sentiment scores to trade actions.
type Classifier struct {
	// MaxShares caps the share count of a single buy signal.
	MaxShares int
	// SellThreshold is the score below which a ticker is sold. Scores in
	// [SellThreshold, 0] are ignored.
	SellThreshold float64
}

// NewClassifier returns a Classifier with the given cap and threshold,
// falling back to the defaults for non-positive maxShares.
func NewClassifier(maxShares int, sellThreshold float64) Classifier {
	if maxShares <= 0 {
		maxShares = DefaultMaxShares
	}
	return Classifier{MaxShares: maxShares, SellThreshold: sellThreshold}
}

// Classify walks the observations in order. Sell tickers may repeat.
func (c Classifier) Classify(observations []Observation) (sells []string, buys []BuyCandidate) {
	sells = []string{}
	buys = []BuyCandidate{}
	for _, obs := range observations {
		switch {
		case obs.Score < c.SellThreshold:
			sells = append(sells, obs.Symbol)
		case obs.Score > 0:
			buys = append(buys, BuyCandidate{
				Symbol: obs.Symbol,
				Score:  obs.Score,
				Shares: c.sharesFor(obs.Score),
			})
		}
	}
	return sells, buys
}

func (c Classifier) sharesFor(score float64) int {
	shares := int(math.Floor(score * float64(c.MaxShares)))
	if shares < 0 {
		return 0
	}
	if shares > c.MaxShares {
		return c.MaxShares
	}
	return shares
}
