package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"sentiment-trading/config"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
)

// PriceRepository resolves the current market price of a ticker.
type PriceRepository interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// yahooFinanceRepository reads meta.regularMarketPrice from the chart API.
type yahooFinanceRepository struct {
	httpClient httpclient.HTTPClient
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
	host       string
}

func NewYahooFinanceRepository(cfg config.YahooFinance, limiters *ratelimit.LimiterStore, log *logger.Logger) PriceRepository {
	return &yahooFinanceRepository{
		httpClient: httpclient.New(cfg.BaseURL, cfg.Timeout, httpclient.DefaultBrowserHeaders),
		logger:     log,
		limiters:   limiters,
		host:       hostOf(cfg.BaseURL),
	}
}

func (r *yahooFinanceRepository) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if err := r.limiters.Wait(ctx, r.host); err != nil {
		return 0, fmt.Errorf("yahoo finance rate limit wait: %w", err)
	}

	queryParams := map[string]string{
		"interval": "1d",
		"range":    "1d",
	}

	var chartResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, "/"+url.PathEscape(symbol), queryParams, nil, &chartResp)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch chart for %s: %w", symbol, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%s: %w", symbol, ErrPriceNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "yahoo finance returned non-OK status",
			logger.StringField("symbol", symbol),
			logger.IntField("status_code", resp.StatusCode),
		)
		return 0, fmt.Errorf("yahoo finance returned status: %d", resp.StatusCode)
	}

	if chartResp.Chart.Error != nil {
		return 0, fmt.Errorf("yahoo finance error %s: %s", chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 || chartResp.Chart.Result[0].Meta.RegularMarketPrice <= 0 {
		return 0, fmt.Errorf("%s: %w", symbol, ErrPriceNotFound)
	}

	return chartResp.Chart.Result[0].Meta.RegularMarketPrice, nil
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
