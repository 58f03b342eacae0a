package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/deskpet/panel/internal/config"
)

// textAPIOK is the shwgij success code. The field is a JSON number, unlike
// QWeather's string code.
const textAPIOK = 200

// LunarInfo is one day of the lunar calendar endpoint.
type LunarInfo struct {
	Solar         string
	Lunar         string
	Week          string
	GanZhiYear    string
	GanZhiMonth   string
	GanZhiDay     string
	Constellation string
	Yi            string
	Ji            string
}

// TextAPI authenticates with a query-string key, unlike QWeather.
type TextAPI struct {
	cfg  *config.TextAPICfg
	base string
	http *httpClient
}

func NewTextAPI(cfg *config.TextAPICfg) *TextAPI {
	return &TextAPI{
		cfg:  cfg,
		base: baseURL(cfg.Host),
		http: newHTTPClient(cfg.Timeout(), cfg.RatePerSec),
	}
}

func (c *TextAPI) configured() error {
	if c.cfg.Host == "" || c.cfg.APIKey == "" {
		return fmt.Errorf("%w: textapi host/api_key", ErrNotConfigured)
	}
	return nil
}

// FetchQuote returns one short text. When the payload carries both the
// original text and a translation, they are joined with a space.
func (c *TextAPI) FetchQuote(ctx context.Context) (string, error) {
	if err := c.configured(); err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("key", c.cfg.APIKey)
	q.Set("type", fmt.Sprint(c.cfg.QuoteType))
	q.Set("m", "")

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Text string `json:"text"`
			CN   string `json:"cn"`
		} `json:"data"`
	}
	if err := c.http.getJSON(ctx, c.base+"/api/randtext/get?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if resp.Code != textAPIOK {
		return "", fmt.Errorf("randtext failed: code %d", resp.Code)
	}

	text := strings.TrimSpace(resp.Data.Text)
	cn := strings.TrimSpace(resp.Data.CN)
	switch {
	case text != "" && cn != "":
		return text + " " + cn, nil
	case text != "":
		return text, nil
	case cn != "":
		return cn, nil
	}
	return "", fmt.Errorf("randtext returned empty payload")
}

// FetchLunar returns today's lunar calendar record.
func (c *TextAPI) FetchLunar(ctx context.Context) (LunarInfo, error) {
	if err := c.configured(); err != nil {
		return LunarInfo{}, err
	}

	q := url.Values{}
	q.Set("key", c.cfg.APIKey)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Solar         string `json:"Solar"`
			Lunar         string `json:"Lunar"`
			Week          string `json:"Week"`
			GanZhiYear    string `json:"GanZhiYear"`
			GanZhiMonth   string `json:"GanZhiMonth"`
			GanZhiDay     string `json:"GanZhiDay"`
			Constellation string `json:"Constellation"`
			YiDay         string `json:"YiDay"`
			JiDay         string `json:"JiDay"`
		} `json:"data"`
	}
	if err := c.http.getJSON(ctx, c.base+"/api/lunars/lunarpro?"+q.Encode(), nil, &resp); err != nil {
		return LunarInfo{}, err
	}
	if resp.Code != textAPIOK {
		return LunarInfo{}, fmt.Errorf("lunarpro failed: code %d", resp.Code)
	}

	return LunarInfo{
		Solar:         resp.Data.Solar,
		Lunar:         resp.Data.Lunar,
		Week:          resp.Data.Week,
		GanZhiYear:    resp.Data.GanZhiYear,
		GanZhiMonth:   resp.Data.GanZhiMonth,
		GanZhiDay:     resp.Data.GanZhiDay,
		Constellation: resp.Data.Constellation,
		Yi:            resp.Data.YiDay,
		Ji:            resp.Data.JiDay,
	}, nil
}
