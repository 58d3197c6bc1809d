package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"sentiment-trading/config"
	"sentiment-trading/pkg/httpclient"
	"sentiment-trading/pkg/logger"
	"sentiment-trading/pkg/ratelimit"
)

const quotePriceSelector = `fin-streamer[data-field="regularMarketPrice"]`

// quotePageRepository scrapes the price out of the public quote page.
type quotePageRepository struct {
	httpClient httpclient.HTTPClient
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
	host       string
}

func NewQuotePageRepository(cfg config.YahooFinance, limiters *ratelimit.LimiterStore, log *logger.Logger) PriceRepository {
	return &quotePageRepository{
		httpClient: httpclient.New(cfg.QuoteBaseURL, cfg.Timeout, httpclient.DefaultBrowserHeaders),
		logger:     log,
		limiters:   limiters,
		host:       hostOf(cfg.QuoteBaseURL),
	}
}

func (r *quotePageRepository) GetPrice(ctx context.Context, symbol string) (float64, error) {
	if err := r.limiters.Wait(ctx, r.host); err != nil {
		return 0, fmt.Errorf("quote page rate limit wait: %w", err)
	}

	headers := map[string]string{"Accept": "text/html,application/xhtml+xml"}
	resp, err := r.httpClient.Get(ctx, "/"+url.PathEscape(symbol)+"/", nil, headers, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch quote page for %s: %w", symbol, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return 0, fmt.Errorf("%s: %w", symbol, ErrPriceNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("quote page returned status: %d", resp.StatusCode)
	}

	return ParseQuotePrice(resp.Body, symbol)
}

// ParseQuotePrice extracts the regular market price from a quote page. A
// streamer tagged with the ticker wins over the first streamer on the page.
func ParseQuotePrice(page []byte, symbol string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return 0, fmt.Errorf("parse quote page: %w", err)
	}

	streamers := doc.Find(quotePriceSelector)
	if streamers.Length() == 0 {
		return 0, fmt.Errorf("%s: %w", symbol, ErrPriceNotFound)
	}

	target := streamers.First()
	streamers.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(s.AttrOr("data-symbol", ""), symbol) {
			target = s
			return false
		}
		return true
	})

	raw, ok := target.Attr("value")
	if !ok || strings.TrimSpace(raw) == "" {
		raw = target.Text()
	}
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || price <= 0 {
		return 0, fmt.Errorf("%s: unreadable price %q: %w", symbol, raw, ErrPriceNotFound)
	}
	return price, nil
}
