package repository

import (
	"gorm.io/gorm"

	"sentiment-trading/config"
	"sentiment-trading/pkg/cache"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
)

type Repository struct {
	TrendingRepo          TrendingTickerRepository
	SentimentRepo         SentimentRepository
	PriceRepo             PriceRepository
	RecommendationRunRepo RecommendationRunRepository
}

// NewRepository wires the collaborators. db may be nil, in which case run
// history is discarded. onPriceFailure receives the name of each failing
// price source.
func NewRepository(cfg *config.Config, db *gorm.DB, inMemoryCache cache.Cache, log *logger.Logger, onPriceFailure func(source string)) *Repository {
	yahooLimiters := ratelimit.NewLimiterStore(ratelimit.PerMinute(cfg.YahooFinance.MaxRequestPerMinute), 1)

	priceRepo := NewFallbackPriceRepository(log, onPriceFailure,
		PriceSource{Name: common.SOURCE_YAHOO_CHART, Repo: NewYahooFinanceRepository(cfg.YahooFinance, yahooLimiters, log)},
		PriceSource{Name: common.SOURCE_QUOTE_PAGE, Repo: NewQuotePageRepository(cfg.YahooFinance, yahooLimiters, log)},
	)
	if inMemoryCache != nil && cfg.Cache.PriceTTL > 0 {
		priceRepo = NewCachedPriceRepository(priceRepo, inMemoryCache, cfg.Cache.PriceTTL)
	}

	runRepo := NewNoopRecommendationRunRepository()
	if db != nil {
		runRepo = NewRecommendationRunRepository(db)
	}

	return &Repository{
		TrendingRepo:          NewTrendingTickerRepository(cfg.Discovery, log),
		SentimentRepo:         NewMarketauxRepository(cfg.Marketaux, log),
		PriceRepo:             priceRepo,
		RecommendationRunRepo: runRepo,
	}
}
