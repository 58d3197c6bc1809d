package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"sentiment-trading/config"
	"sentiment-trading/internal/allocation"
	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
	"sentiment-trading/pkg/utils"
)

// SentimentRepository returns (ticker, score) observations from news
// published on date whose sentiment matches direction.
type SentimentRepository interface {
	Fetch(ctx context.Context, symbols []string, direction dto.SentimentDirection, date time.Time) ([]allocation.Observation, error)
}

type marketauxRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            config.Marketaux
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

func NewMarketauxRepository(cfg config.Marketaux, log *logger.Logger) SentimentRepository {
	return &marketauxRepository{
		httpClient:     httpclient.New(cfg.BaseURL, cfg.Timeout, nil),
		cfg:            cfg,
		logger:         log,
		requestLimiter: ratelimit.NewPerMinute(cfg.MaxRequestPerMinute),
	}
}

func (r *marketauxRepository) Fetch(ctx context.Context, symbols []string, direction dto.SentimentDirection, date time.Time) ([]allocation.Observation, error) {
	if len(symbols) == 0 {
		return []allocation.Observation{}, nil
	}
	if !direction.Valid() {
		return nil, fmt.Errorf("invalid sentiment direction %q", direction)
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("marketaux rate limit wait: %w", err)
	}

	queryParams := map[string]string{
		"api_token":    r.cfg.APIToken,
		"symbols":      strings.Join(symbols, ","),
		"published_on": utils.FormatDate(date),
	}
	queryParams["sentiment_"+string(direction)] = "0"
	if r.cfg.Countries != "" {
		queryParams["countries"] = r.cfg.Countries
	}
	if r.cfg.Language != "" {
		queryParams["language"] = r.cfg.Language
	}

	var newsResp dto.MarketauxNewsResponse
	resp, err := r.httpClient.Get(ctx, "/v1/news/all", queryParams, nil, &newsResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news from marketaux: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "marketaux returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)),
		)
		return nil, fmt.Errorf("marketaux returned status: %d", resp.StatusCode)
	}
	if newsResp.Error != nil {
		return nil, fmt.Errorf("marketaux error %s: %s", newsResp.Error.Code, newsResp.Error.Message)
	}

	observations := make([]allocation.Observation, 0, len(newsResp.Data))
	for _, article := range newsResp.Data {
		for _, entity := range article.Entities {
			if entity.SentimentScore == 0 || entity.Symbol == "" {
				continue
			}
			observations = append(observations, allocation.Observation{
				Symbol: entity.Symbol,
				Score:  entity.SentimentScore,
			})
		}
	}

	r.logger.DebugContext(ctx, "fetched sentiment",
		logger.StringField("direction", string(direction)),
		logger.IntField("articles", len(newsResp.Data)),
		logger.IntField("observations", len(observations)),
	)
	return observations, nil
}
