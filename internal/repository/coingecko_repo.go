package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"btc-signal-bot/config"
	"btc-signal-bot/internal/dto"
	"btc-signal-bot/pkg/cache"
	"btc-signal-bot/pkg/httpclient"
	"btc-signal-bot/pkg/logger"

	"golang.org/x/time/rate"
)

type MarketRepository interface {
	GetDailyCloses(ctx context.Context, days int) ([]float64, error)
}

type coinGeckoRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	inmemoryCache  cache.Cache
	requestLimiter *rate.Limiter
}

func NewCoinGeckoRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) MarketRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.CoinGecko.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &coinGeckoRepository{
		httpClient:     httpclient.New(cfg.CoinGecko.BaseURL, cfg.CoinGecko.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		inmemoryCache:  inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

// GetDailyCloses fetches the last `days` daily closing prices in ascending
// time order. Responses are cached briefly so a manual check right after a
// scheduled one does not burn another API call.
func (r *coinGeckoRepository) GetDailyCloses(ctx context.Context, days int) ([]float64, error) {
	cacheKey := fmt.Sprintf("market_chart:%s:%s:%d", r.cfg.CoinGecko.CoinID, r.cfg.CoinGecko.VsCurrency, days)
	if cached, found := r.inmemoryCache.Get(cacheKey); found {
		if closes, ok := cached.([]float64); ok {
			r.logger.DebugContext(ctx, "Serving price history from cache", logger.StringField("cache_key", cacheKey))
			return closes, nil
		}
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/api/v3/coins/%s/market_chart", r.cfg.CoinGecko.CoinID)
	queryParams := map[string]string{
		"vs_currency": r.cfg.CoinGecko.VsCurrency,
		"days":        strconv.Itoa(days),
		"interval":    "daily",
	}

	var headers map[string]string
	if r.cfg.CoinGecko.APIKey != "" {
		headers = map[string]string{"x-cg-demo-api-key": r.cfg.CoinGecko.APIKey}
	}

	var chart dto.MarketChartResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &chart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch market chart from coingecko: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "CoinGecko API returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("coingecko api returned status: %d", resp.StatusCode)
	}

	closes := chart.ClosePrices()
	if len(closes) == 0 {
		return nil, fmt.Errorf("coingecko returned no price data")
	}

	r.inmemoryCache.Set(cacheKey, closes, r.cfg.Cache.DefaultExpiration)

	r.logger.InfoContext(ctx, "Fetched price history",
		logger.StringField("coin_id", r.cfg.CoinGecko.CoinID),
		logger.IntField("price_points", len(closes)))
	return closes, nil
}
