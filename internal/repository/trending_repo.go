package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"

	"sentiment-trading/config"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
)

// TrendingTickerRepository lists the most active tickers from a public
// trending page, in page order.
type TrendingTickerRepository interface {
	GetTopTickers(ctx context.Context, count int) ([]string, error)
}

type trendingTickerRepository struct {
	cfg    config.Discovery
	logger *logger.Logger
}

func NewTrendingTickerRepository(cfg config.Discovery, log *logger.Logger) TrendingTickerRepository {
	return &trendingTickerRepository{cfg: cfg, logger: log}
}

func (r *trendingTickerRepository) GetTopTickers(ctx context.Context, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	c := colly.NewCollector(
		colly.MaxDepth(1),
		colly.Async(false),
		colly.UserAgent(httpclient.DefaultBrowserHeaders["User-Agent"]),
	)
	if r.cfg.Timeout > 0 {
		c.SetRequestTimeout(r.cfg.Timeout)
	}

	c.OnRequest(func(req *colly.Request) {
		if ctx.Err() != nil {
			req.Abort()
		}
	})

	tickers := make([]string, 0, count)
	seen := make(map[string]struct{}, count)
	c.OnHTML(r.cfg.RowSelector, func(e *colly.HTMLElement) {
		if len(tickers) >= count {
			return
		}
		symbol := strings.ToUpper(strings.TrimSpace(e.ChildText(r.cfg.SymbolSelector)))
		if symbol == "" {
			return
		}
		if _, ok := seen[symbol]; ok {
			return
		}
		seen[symbol] = struct{}{}
		tickers = append(tickers, symbol)
	})

	var scrapeErr error
	c.OnError(func(resp *colly.Response, err error) {
		scrapeErr = fmt.Errorf("trending page returned status %d: %w", resp.StatusCode, err)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(r.cfg.TrendingURL); err != nil {
		return nil, fmt.Errorf("failed to visit %s: %w", r.cfg.TrendingURL, err)
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, scrapeErr
	}

	r.logger.DebugContext(ctx, "scraped trending tickers",
		logger.IntField("requested", count),
		logger.StringsField("tickers", tickers),
	)
	return tickers, nil
}
