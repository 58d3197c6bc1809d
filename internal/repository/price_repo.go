package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sentiment-trading/pkg/cache"
	"sentiment-trading/pkg/common"
	"sentiment-trading/pkg/logger"
)

// PriceSource tags a PriceRepository with a name for logs and metrics.
type PriceSource struct {
	Name string
	Repo PriceRepository
}

// fallbackPriceRepository asks each source in turn and returns the first price.
type fallbackPriceRepository struct {
	sources   []PriceSource
	logger    *logger.Logger
	onFailure func(source string)
}

// NewFallbackPriceRepository chains sources. onFailure, when set, is called
// with the source name every time a source fails.
func NewFallbackPriceRepository(log *logger.Logger, onFailure func(source string), sources ...PriceSource) PriceRepository {
	return &fallbackPriceRepository{sources: sources, logger: log, onFailure: onFailure}
}

func (r *fallbackPriceRepository) GetPrice(ctx context.Context, symbol string) (float64, error) {
	var errs []error
	for _, src := range r.sources {
		price, err := src.Repo.GetPrice(ctx, symbol)
		if err == nil {
			return price, nil
		}
		if r.onFailure != nil {
			r.onFailure(src.Name)
		}
		r.logger.DebugContext(ctx, "price source failed",
			logger.StringField("source", src.Name),
			logger.StringField("symbol", symbol),
			logger.ErrorField(err),
		)
		errs = append(errs, fmt.Errorf("%s: %w", src.Name, err))
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return 0, fmt.Errorf("%s: %w", symbol, ErrPriceNotFound)
	}
	return 0, errors.Join(errs...)
}

// cachedPriceRepository memoizes successful lookups for ttl.
type cachedPriceRepository struct {
	next  PriceRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedPriceRepository(next PriceRepository, c cache.Cache, ttl time.Duration) PriceRepository {
	return &cachedPriceRepository{next: next, cache: c, ttl: ttl}
}

func (r *cachedPriceRepository) GetPrice(ctx context.Context, symbol string) (float64, error) {
	key := fmt.Sprintf(common.KEY_LAST_PRICE, symbol)
	if price, ok := cache.GetFromCache[float64](r.cache, key); ok {
		return price, nil
	}

	price, err := r.next.GetPrice(ctx, symbol)
	if err != nil {
		return 0, err
	}
	r.cache.Set(key, price, r.ttl)
	return price, nil
}
