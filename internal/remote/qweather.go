package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/deskpet/panel/internal/config"
)

// qweatherOK is the domain status sentinel; anything else in the "code"
// field is a fetch failure even on HTTP 200.
const qweatherOK = "200"

// Location is resolved city reference data, cacheable indefinitely.
type Location struct {
	ID   string
	Name string
}

// CurrentConditions mirrors the subset of /v7/weather/now the panel shows.
// Everything stays a string: the display renders verbatim and "-" is a
// valid placeholder.
type CurrentConditions struct {
	TempC      string
	Text       string
	Icon       string
	ObsTime    string
	UpdateTime string
}

// DailyForecast is one day of /v7/weather/7d.
type DailyForecast struct {
	Date    string
	TextDay string
	TempMax string
	TempMin string
	IconDay string
}

// QWeather authenticates with the X-QW-Api-Key header against the
// account-specific API host.
type QWeather struct {
	cfg  *config.WeatherCfg
	base string
	http *httpClient
}

func NewQWeather(cfg *config.WeatherCfg) *QWeather {
	return &QWeather{
		cfg:  cfg,
		base: baseURL(cfg.Host),
		http: newHTTPClient(cfg.Timeout(), cfg.RatePerSec),
	}
}

func (c *QWeather) header() http.Header {
	h := http.Header{}
	h.Set("X-QW-Api-Key", c.cfg.APIKey)
	return h
}

func (c *QWeather) configured() error {
	if c.cfg.Host == "" || c.cfg.APIKey == "" {
		return fmt.Errorf("%w: qweather host/api_key", ErrNotConfigured)
	}
	return nil
}

// ResolveLocation looks up the location id for a free-text city query.
func (c *QWeather) ResolveLocation(ctx context.Context, query string) (Location, error) {
	if err := c.configured(); err != nil {
		return Location{}, err
	}

	q := url.Values{}
	q.Set("location", query)
	q.Set("lang", c.cfg.Lang)
	q.Set("range", c.cfg.Lookup.Range)
	q.Set("number", fmt.Sprint(c.cfg.Lookup.Number))

	var resp struct {
		Code     string `json:"code"`
		Location []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"location"`
	}
	if err := c.http.getJSON(ctx, c.base+"/geo/v2/city/lookup?"+q.Encode(), c.header(), &resp); err != nil {
		return Location{}, err
	}
	if resp.Code != qweatherOK || len(resp.Location) == 0 {
		return Location{}, fmt.Errorf("geo lookup failed: code %s", resp.Code)
	}
	return Location{ID: resp.Location[0].ID, Name: resp.Location[0].Name}, nil
}

// FetchWeather returns current conditions plus the 7-day forecast for a
// resolved location id.
func (c *QWeather) FetchWeather(ctx context.Context, locationID string) (CurrentConditions, []DailyForecast, error) {
	if err := c.configured(); err != nil {
		return CurrentConditions{}, nil, err
	}

	q := url.Values{}
	q.Set("location", locationID)
	q.Set("lang", c.cfg.Lang)
	q.Set("unit", c.cfg.Unit)

	var nowResp struct {
		Code       string `json:"code"`
		UpdateTime string `json:"updateTime"`
		Now        struct {
			Temp    string `json:"temp"`
			Text    string `json:"text"`
			Icon    string `json:"icon"`
			ObsTime string `json:"obsTime"`
		} `json:"now"`
	}
	if err := c.http.getJSON(ctx, c.base+"/v7/weather/now?"+q.Encode(), c.header(), &nowResp); err != nil {
		return CurrentConditions{}, nil, err
	}
	if nowResp.Code != qweatherOK {
		return CurrentConditions{}, nil, fmt.Errorf("weather now failed: code %s", nowResp.Code)
	}

	var fcResp struct {
		Code  string `json:"code"`
		Daily []struct {
			FxDate  string `json:"fxDate"`
			TextDay string `json:"textDay"`
			TempMax string `json:"tempMax"`
			TempMin string `json:"tempMin"`
			IconDay string `json:"iconDay"`
		} `json:"daily"`
	}
	if err := c.http.getJSON(ctx, c.base+"/v7/weather/7d?"+q.Encode(), c.header(), &fcResp); err != nil {
		return CurrentConditions{}, nil, err
	}
	if fcResp.Code != qweatherOK {
		return CurrentConditions{}, nil, fmt.Errorf("weather 7d failed: code %s", fcResp.Code)
	}

	now := CurrentConditions{
		TempC:      nowResp.Now.Temp,
		Text:       nowResp.Now.Text,
		Icon:       nowResp.Now.Icon,
		ObsTime:    nowResp.Now.ObsTime,
		UpdateTime: nowResp.UpdateTime,
	}
	daily := make([]DailyForecast, 0, len(fcResp.Daily))
	for _, d := range fcResp.Daily {
		daily = append(daily, DailyForecast{
			Date:    d.FxDate,
			TextDay: d.TextDay,
			TempMax: d.TempMax,
			TempMin: d.TempMin,
			IconDay: d.IconDay,
		})
	}
	return now, daily, nil
}
