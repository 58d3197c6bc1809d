package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentiment-trading/config"
	"sentiment-trading/pkg/logger"
)

const trendingPage = `<html><body><table><tbody>
<tr><td aria-label="Symbol"><a href="/quote/TSLA">TSLA</a></td><td aria-label="Name">Tesla</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/BRK.B">BRK.B</a></td><td aria-label="Name">Berkshire</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/tsla">tsla</a></td><td aria-label="Name">dup</td></tr>
<tr><td aria-label="Name">no symbol</td></tr>
<tr><td aria-label="Symbol"><a href="/quote/NVDA">NVDA</a></td></tr>
<tr><td aria-label="Symbol"><a href="/quote/AMD">AMD</a></td></tr>
</tbody></table></body></html>`

func newTrendingTestRepo(url string) TrendingTickerRepository {
	return NewTrendingTickerRepository(config.Discovery{
		TrendingURL:    url,
		RowSelector:    "tbody tr",
		SymbolSelector: `td[aria-label="Symbol"] a`,
		Timeout:        time.Second,
	}, logger.NewNop())
}

func TestTrendingTickerRepository_GetTopTickers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(trendingPage))
	}))
	defer srv.Close()

	tests := []struct {
		name  string
		count int
		want  []string
	}{
		{name: "first rows in page order", count: 3, want: []string{"TSLA", "BRK.B", "NVDA"}},
		{name: "count above rows", count: 20, want: []string{"TSLA", "BRK.B", "NVDA", "AMD"}},
		{name: "zero count skips the request", count: 0, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newTrendingTestRepo(srv.URL).GetTopTickers(context.Background(), tt.count)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrendingTickerRepository_GetTopTickersError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTrendingTestRepo(srv.URL).GetTopTickers(context.Background(), 5)
	assert.Error(t, err)
}
