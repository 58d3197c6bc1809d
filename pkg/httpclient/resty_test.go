package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ping", r.URL.Path)
		assert.Equal(t, "yes", r.URL.Query().Get("q"))
		assert.Equal(t, "unit", r.Header.Get("X-Test"))
		assert.Equal(t, "agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"pong"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, map[string]string{"User-Agent": "agent"})

	var out struct {
		Name string `json:"name"`
	}
	resp, err := client.Get(context.Background(), "/v1/ping", map[string]string{"q": "yes"}, map[string]string{"X-Test": "unit"}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", out.Name)
	assert.Contains(t, string(resp.Body), "pong")
}

func TestRestyClient_GetRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	resp, err := New(srv.URL, time.Second, nil).Get(context.Background(), "/", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "<html><body>ok</body></html>", string(resp.Body))
}
