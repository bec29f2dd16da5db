package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/pkg/cache"
	"btc-signal-bot/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		CoinGecko: config.CoinGeckoConfig{
			BaseURL:             baseURL,
			CoinID:              "bitcoin",
			VsCurrency:          "usd",
			Timeout:             5 * time.Second,
			MaxRequestPerMinute: 600,
		},
		Cache: config.Cache{
			DefaultExpiration: time.Minute,
			CleanupInterval:   time.Minute,
		},
	}
}

func marketChartBody(prices []float64) string {
	body := `{"prices":[`
	for i, p := range prices {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf("[%d,%g]", 1700000000000+int64(i)*86400000, p)
	}
	return body + `]}`
}

func TestCoinGeckoRepository_GetDailyCloses(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/api/v3/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "15", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, marketChartBody([]float64{100, 101.5, 99}))
	}))
	defer srv.Close()

	repo := NewCoinGeckoRepository(testConfig(srv.URL), logger.NewNop(), cache.NewCache(time.Minute, time.Minute))

	closes, err := repo.GetDailyCloses(context.Background(), 15)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101.5, 99}, closes)
	assert.Equal(t, 1, hits)
}

func TestCoinGeckoRepository_GetDailyClosesCached(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, marketChartBody([]float64{100, 101}))
	}))
	defer srv.Close()

	repo := NewCoinGeckoRepository(testConfig(srv.URL), logger.NewNop(), cache.NewCache(time.Minute, time.Minute))

	_, err := repo.GetDailyCloses(context.Background(), 15)
	require.NoError(t, err)
	closes, err := repo.GetDailyCloses(context.Background(), 15)
	require.NoError(t, err)

	assert.Equal(t, []float64{100, 101}, closes)
	assert.Equal(t, 1, hits, "second call must be served from cache")
}

func TestCoinGeckoRepository_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := NewCoinGeckoRepository(testConfig(srv.URL), logger.NewNop(), cache.NewCache(time.Minute, time.Minute))

	_, err := repo.GetDailyCloses(context.Background(), 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCoinGeckoRepository_EmptyPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"prices":[]}`)
	}))
	defer srv.Close()

	repo := NewCoinGeckoRepository(testConfig(srv.URL), logger.NewNop(), cache.NewCache(time.Minute, time.Minute))

	_, err := repo.GetDailyCloses(context.Background(), 15)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no price data")
}

func TestCoinGeckoRepository_Unreachable(t *testing.T) {
	repo := NewCoinGeckoRepository(testConfig("http://127.0.0.1:1"), logger.NewNop(), cache.NewCache(time.Minute, time.Minute))

	_, err := repo.GetDailyCloses(context.Background(), 15)
	assert.Error(t, err)
}
