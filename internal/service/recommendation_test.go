package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-trading/config"
	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		Allocation: config.Allocation{
			MaxShares:        15,
			SellThreshold:    -0.1,
			PriceConcurrency: 2,
			AggregateBasis:   "score",
		},
		Discovery: config.Discovery{Count: 20},
	}
}

type fixture struct {
	trending  *fakeTrendingRepo
	sentiment *fakeSentimentRepo
	prices    *fakePriceRepo
	runs      *fakeRunRepo
	metrics   *metrics.Metrics
}

func newFixture() *fixture {
	return &fixture{
		trending:  &fakeTrendingRepo{},
		sentiment: &fakeSentimentRepo{byDirection: map[dto.SentimentDirection][]allocation.Observation{}},
		prices:    &fakePriceRepo{prices: map[string]float64{}},
		runs:      &fakeRunRepo{},
		metrics:   metrics.New(),
	}
}

func (f *fixture) service(t *testing.T, cfg *config.Config) RecommendationService {
	t.Helper()
	svc, err := NewRecommendationService(cfg, logger.NewNop(), f.metrics, f.trending, f.sentiment, f.prices, f.runs)
	require.NoError(t, err)
	return svc
}

var newsDate = time.Date(2023, 12, 22, 0, 0, 0, 0, time.UTC)

func TestRecommendationService_Recommend(t *testing.T) {
	tests := []struct {
		name      string
		basis     string
		budget    float64
		wantBuys  []dto.BuyPosition
		wantTotal float64
		wantSteps int
	}{
		{
			name:      "score basis averages raw scores then trims",
			basis:     "score",
			budget:    120,
			wantBuys:  []dto.BuyPosition{{Symbol: "NVDA", Shares: 1, Price: 50, Cost: 50}},
			wantTotal: 50,
			wantSteps: 1,
		},
		{
			name:   "shares basis averages per observation shares",
			basis:  "shares",
			budget: 1000,
			wantBuys: []dto.BuyPosition{
				{Symbol: "NVDA", Shares: 10, Price: 50, Cost: 500},
				{Symbol: "AAPL", Shares: 5, Price: 100, Cost: 500},
			},
			wantTotal: 1000,
			wantSteps: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.trending.tickers = []string{"TSLA", "AAPL", "BRK.B"}
			f.sentiment.byDirection[dto.DirectionPositive] = []allocation.Observation{
				{Symbol: "AAPL", Score: 0.6},
				{Symbol: "NVDA", Score: 0.7},
				{Symbol: "TSLA", Score: 0.5},
				{Symbol: "BRK.B", Score: 0.9},
				{Symbol: "AAPL", Score: 0.4},
			}
			f.sentiment.byDirection[dto.DirectionNegative] = []allocation.Observation{
				{Symbol: "TSLA", Score: -0.5},
				{Symbol: "MSFT", Score: -0.3},
				{Symbol: "MSFT", Score: -0.2},
			}
			f.prices.prices = map[string]float64{"AAPL": 100, "NVDA": 50, "MSFT": 370}

			cfg := testConfig()
			cfg.Allocation.AggregateBasis = tt.basis

			got, err := f.service(t, cfg).Recommend(context.Background(), dto.RecommendationParam{
				Budget:       tt.budget,
				NewsDate:     newsDate,
				ExtraTickers: []string{" nvda"},
				Trigger:      common.TRIGGER_CONSOLE,
			})
			require.NoError(t, err)

			assert.Equal(t, []string{"TSLA", "AAPL", "BRK.B", "NVDA"}, got.Universe)
			assert.Equal(t, got.Universe, f.sentiment.gotSymbols)
			assert.Equal(t, []string{"MSFT"}, got.Sells)
			assert.Equal(t, tt.wantBuys, got.Buys)
			assert.InDelta(t, tt.wantTotal, got.TotalCost, 1e-9)
			assert.Equal(t, tt.wantSteps, got.TrimSteps)
			assert.Equal(t, "2023-12-22", got.NewsDate)
			assert.Equal(t, uint(1), got.RunID)
		})
	}
}

func TestRecommendationService_CollaboratorFailures(t *testing.T) {
	f := newFixture()
	f.trending.err = errors.New("trending page down")
	f.sentiment.err = errors.New("marketaux timeout")
	f.runs.createErr = errors.New("db down")

	got, err := f.service(t, testConfig()).Recommend(context.Background(), dto.RecommendationParam{
		Budget:       500,
		NewsDate:     newsDate,
		ExtraTickers: []string{"AAPL"},
		Trigger:      common.TRIGGER_HTTP,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"AAPL"}, got.Universe)
	assert.Empty(t, got.Sells)
	assert.Empty(t, got.Buys)
	assert.Zero(t, got.TotalCost)
	assert.Zero(t, got.RunID)

	count, err := testutil.GatherAndCount(f.metrics.Registry(), "sentiment_trading_collaborator_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "trending, marketaux and history series")
}

func TestRecommendationService_SellWinsOverBuy(t *testing.T) {
	f := newFixture()
	f.sentiment.byDirection[dto.DirectionPositive] = []allocation.Observation{
		{Symbol: "GME", Score: 0.8},
		{Symbol: "GME", Score: -0.5},
		{Symbol: "AMC", Score: 0.9},
	}
	f.prices.prices = map[string]float64{"AMC": 5}

	got, err := f.service(t, testConfig()).Recommend(context.Background(), dto.RecommendationParam{
		Budget:   100,
		NewsDate: newsDate,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"GME"}, got.Sells)
	assert.Equal(t, []dto.BuyPosition{{Symbol: "AMC", Shares: 1, Price: 5, Cost: 5}}, got.Buys)
}

func TestRecommendationService_UnpricedTickerIsFree(t *testing.T) {
	f := newFixture()
	f.sentiment.byDirection[dto.DirectionPositive] = []allocation.Observation{{Symbol: "OTC", Score: 0.9}}

	got, err := f.service(t, testConfig()).Recommend(context.Background(), dto.RecommendationParam{
		Budget:   0,
		NewsDate: newsDate,
	})
	require.NoError(t, err)

	assert.Equal(t, []dto.BuyPosition{{Symbol: "OTC", Shares: 1}}, got.Buys)
	assert.Zero(t, got.TotalCost)
}

func TestRecommendationService_InvalidBudget(t *testing.T) {
	f := newFixture()
	_, err := f.service(t, testConfig()).Recommend(context.Background(), dto.RecommendationParam{Budget: -1, NewsDate: newsDate})
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestNewRecommendationService_UnknownBasis(t *testing.T) {
	cfg := testConfig()
	cfg.Allocation.AggregateBasis = "median"
	_, err := NewRecommendationService(cfg, logger.NewNop(), metrics.New(), nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestRecommendationService_History(t *testing.T) {
	f := newFixture()
	f.sentiment.byDirection[dto.DirectionPositive] = []allocation.Observation{{Symbol: "AAPL", Score: 0.9}}
	f.sentiment.byDirection[dto.DirectionNegative] = []allocation.Observation{{Symbol: "TSLA", Score: -0.4}}
	f.prices.prices = map[string]float64{"AAPL": 10}
	svc := f.service(t, testConfig())

	for _, budget := range []float64{100, 5} {
		_, err := svc.Recommend(context.Background(), dto.RecommendationParam{
			Budget: budget, NewsDate: newsDate, Trigger: common.TRIGGER_SCHEDULER,
		})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	latest := history[0]
	assert.Equal(t, uint(2), latest.RunID)
	assert.Equal(t, 5.0, latest.Budget)
	assert.Equal(t, "2023-12-22", latest.NewsDate)
	assert.Equal(t, []string{"TSLA"}, latest.Sells)
	assert.Empty(t, latest.Buys)
	assert.Equal(t, []dto.BuyPosition{{Symbol: "AAPL", Shares: 1, Price: 10, Cost: 10}}, history[1].Buys)
}
