package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signalist/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alphaVantageTestConfig(baseURL string) *config.Config {
	return &config.Config{
		Providers: config.ProvidersConfig{
			AlphaVantage: config.Provider{
				BaseURL:             baseURL,
				APIKey:              "test-key",
				Timeout:             5 * time.Second,
				MaxRequestPerMinute: 6000,
			},
			HistoryWindowDays: 180,
		},
	}
}

func TestAlphaVantageGetDailyHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("time series parsed, sorted ascending and windowed", func(t *testing.T) {
		recent := time.Now().UTC().AddDate(0, 0, -2).Format("2006-01-02")
		older := time.Now().UTC().AddDate(0, 0, -5).Format("2006-01-02")
		stale := time.Now().UTC().AddDate(0, 0, -400).Format("2006-01-02")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/query", r.URL.Path)
			assert.Equal(t, "TIME_SERIES_DAILY", r.URL.Query().Get("function"))
			fmt.Fprintf(w, `{"Time Series (Daily)":{
				%q:{"4. close":"11.50"},
				%q:{"4. close":"10.25"},
				%q:{"4. close":"5.00"}
			}}`, recent, older, stale)
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		points, err := repo.GetDailyHistory(ctx, "IBM")

		require.NoError(t, err)
		require.Len(t, points, 2, "bars older than the window are dropped")
		assert.Equal(t, older, points[0].Date)
		assert.Equal(t, 10.25, points[0].Close)
		assert.Equal(t, recent, points[1].Date)
		assert.Equal(t, 11.5, points[1].Close)
	})

	t.Run("quota note on a 200 response maps to rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`))
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		_, err := repo.GetDailyHistory(ctx, "IBM")

		assert.ErrorIs(t, err, ErrRateLimited)
	})

	t.Run("missing series maps to symbol not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		_, err := repo.GetDailyHistory(ctx, "NOPE")

		assert.ErrorIs(t, err, ErrSymbolNotFound)
	})

	t.Run("unparseable close is malformed", func(t *testing.T) {
		recent := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"Time Series (Daily)":{%q:{"4. close":"n/a"}}}`, recent)
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		_, err := repo.GetDailyHistory(ctx, "IBM")

		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestAlphaVantageGetCompanyProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("overview fields populated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
			w.Write([]byte(`{"Symbol":"IBM","Name":"International Business Machines","Sector":"Technology","Industry":"IT Services","MarketCapitalization":"170000000000","Description":"IBM is a global technology company."}`))
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		profile, err := repo.GetCompanyProfile(ctx, "IBM")

		require.NoError(t, err)
		assert.True(t, profile.Complete())
		assert.Equal(t, "Technology", *profile.Sector)
		assert.Equal(t, "170000000000", *profile.MarketCap)
	})

	t.Run("empty object means unknown symbol", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer server.Close()

		repo := NewAlphaVantageRepository(alphaVantageTestConfig(server.URL), testLogger(t))
		_, err := repo.GetCompanyProfile(ctx, "NOPE")

		assert.ErrorIs(t, err, ErrSymbolNotFound)
	})
}
