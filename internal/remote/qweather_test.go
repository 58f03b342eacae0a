package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deskpet/panel/internal/config"
)

func weatherCfg(host string) *config.WeatherCfg {
	return &config.WeatherCfg{
		Host:           host,
		APIKey:         "k",
		Lang:           "en",
		Unit:           "m",
		TimeoutSeconds: 2,
		RatePerSec:     100,
		Lookup:         config.LookupCfg{LocationText: "Springfield", Range: "cn", Number: 1},
	}
}

// TestQWeather_ResolveLocation checks header auth and payload mapping.
func TestQWeather_ResolveLocation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/geo/v2/city/lookup", r.URL.Path)
		require.Equal(t, "k", r.Header.Get("X-QW-Api-Key"))
		require.Equal(t, "Springfield", r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{"code":"200","location":[{"id":"101010100","name":"Springfield"}]}`))
	}))
	defer ts.Close()

	c := NewQWeather(weatherCfg(ts.URL))
	loc, err := c.ResolveLocation(context.Background(), "Springfield")
	require.NoError(t, err)
	require.Equal(t, Location{ID: "101010100", Name: "Springfield"}, loc)
}

// TestQWeather_ResolveLocation_DomainError: HTTP 200 with a non-success
// code is still a failure.
func TestQWeather_ResolveLocation_DomainError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"402","location":[]}`))
	}))
	defer ts.Close()

	c := NewQWeather(weatherCfg(ts.URL))
	_, err := c.ResolveLocation(context.Background(), "Springfield")
	require.ErrorContains(t, err, "code 402")
}

// TestQWeather_FetchWeather maps now + 7d into typed results.
func TestQWeather_FetchWeather(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/weather/now":
			require.Equal(t, "101010100", r.URL.Query().Get("location"))
			_, _ = w.Write([]byte(`{"code":"200","updateTime":"2026-08-28T10:00+08:00",
				"now":{"temp":"21","text":"Cloudy","icon":"101","obsTime":"2026-08-28T09:50+08:00"}}`))
		case "/v7/weather/7d":
			_, _ = w.Write([]byte(`{"code":"200","daily":[
				{"fxDate":"2026-08-28","textDay":"Cloudy","tempMax":"25","tempMin":"17","iconDay":"101"},
				{"fxDate":"2026-08-29","textDay":"Rain","tempMax":"22","tempMin":"16","iconDay":"305"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	c := NewQWeather(weatherCfg(ts.URL))
	now, daily, err := c.FetchWeather(context.Background(), "101010100")
	require.NoError(t, err)
	require.Equal(t, CurrentConditions{
		TempC:      "21",
		Text:       "Cloudy",
		Icon:       "101",
		ObsTime:    "2026-08-28T09:50+08:00",
		UpdateTime: "2026-08-28T10:00+08:00",
	}, now)
	require.Len(t, daily, 2)
	require.Equal(t, "Rain", daily[1].TextDay)
}

// TestQWeather_FetchWeather_ForecastError: a bad 7d response fails the
// whole fetch; pollers retry it as one unit.
func TestQWeather_FetchWeather_ForecastError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v7/weather/now":
			_, _ = w.Write([]byte(`{"code":"200","updateTime":"t","now":{"temp":"21"}}`))
		default:
			_, _ = w.Write([]byte(`{"code":"500"}`))
		}
	}))
	defer ts.Close()

	c := NewQWeather(weatherCfg(ts.URL))
	_, _, err := c.FetchWeather(context.Background(), "101010100")
	require.ErrorContains(t, err, "weather 7d failed")
}

// TestQWeather_HTTPError: non-2xx is a transport-level failure.
func TestQWeather_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewQWeather(weatherCfg(ts.URL))
	_, err := c.ResolveLocation(context.Background(), "Springfield")
	require.ErrorContains(t, err, "http 502")
}

// TestQWeather_NotConfigured: missing key degrades to a per-attempt
// failure instead of a crash.
func TestQWeather_NotConfigured(t *testing.T) {
	cfg := weatherCfg("example.test")
	cfg.APIKey = ""

	c := NewQWeather(cfg)
	_, err := c.ResolveLocation(context.Background(), "Springfield")
	require.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = c.FetchWeather(context.Background(), "101010100")
	require.ErrorIs(t, err, ErrNotConfigured)
}
