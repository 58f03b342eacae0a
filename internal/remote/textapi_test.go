package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deskpet/panel/internal/config"
)

func textCfg(host string) *config.TextAPICfg {
	return &config.TextAPICfg{
		Host:           host,
		APIKey:         "k",
		QuoteType:      5,
		TimeoutSeconds: 2,
		RatePerSec:     100,
	}
}

// TestTextAPI_FetchQuote joins original text and translation.
func TestTextAPI_FetchQuote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/randtext/get", r.URL.Path)
		require.Equal(t, "k", r.URL.Query().Get("key"))
		require.Equal(t, "5", r.URL.Query().Get("type"))
		_, _ = w.Write([]byte(`{"code":200,"data":{"text":"Stay hungry.","cn":"求知若饥。"}}`))
	}))
	defer ts.Close()

	c := NewTextAPI(textCfg(ts.URL))
	q, err := c.FetchQuote(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Stay hungry. 求知若饥。", q)
}

// TestTextAPI_FetchQuote_TextOnly tolerates a missing translation.
func TestTextAPI_FetchQuote_TextOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"text":"Plain.","cn":""}}`))
	}))
	defer ts.Close()

	c := NewTextAPI(textCfg(ts.URL))
	q, err := c.FetchQuote(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Plain.", q)
}

// TestTextAPI_FetchQuote_EmptyPayload is a failure, not an empty quote.
func TestTextAPI_FetchQuote_EmptyPayload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":{"text":"","cn":""}}`))
	}))
	defer ts.Close()

	c := NewTextAPI(textCfg(ts.URL))
	_, err := c.FetchQuote(context.Background())
	require.ErrorContains(t, err, "empty payload")
}

// TestTextAPI_DomainError: numeric non-200 code fails.
func TestTextAPI_DomainError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":403,"data":{}}`))
	}))
	defer ts.Close()

	c := NewTextAPI(textCfg(ts.URL))
	_, err := c.FetchQuote(context.Background())
	require.ErrorContains(t, err, "code 403")
}

// TestTextAPI_FetchLunar maps the lunar payload.
func TestTextAPI_FetchLunar(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/lunars/lunarpro", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"data":{
			"Solar":"2026-08-28","Lunar":"七月十六","Week":"五",
			"GanZhiYear":"丙午","GanZhiMonth":"丙申","GanZhiDay":"戊辰",
			"Constellation":"处女座","YiDay":"祭祀","JiDay":"动土"}}`))
	}))
	defer ts.Close()

	c := NewTextAPI(textCfg(ts.URL))
	li, err := c.FetchLunar(context.Background())
	require.NoError(t, err)
	require.Equal(t, "七月十六", li.Lunar)
	require.Equal(t, "丙午", li.GanZhiYear)
	require.Equal(t, "祭祀", li.Yi)
}

// TestTextAPI_NotConfigured degrades per attempt.
func TestTextAPI_NotConfigured(t *testing.T) {
	cfg := textCfg("example.test")
	cfg.APIKey = ""

	c := NewTextAPI(cfg)
	_, err := c.FetchQuote(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = c.FetchLunar(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}
