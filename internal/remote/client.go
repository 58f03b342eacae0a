// Package remote wraps the two upstream HTTP APIs (QWeather and the
// shwgij text service) behind typed calls. Transport errors, non-2xx
// responses and non-success domain status codes all collapse into a plain
// error so pollers treat them through a single retry path.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/ratelimit"
)

// ErrNotConfigured is returned per attempt when host or key are missing,
// so an unconfigured source degrades to permanently-stale instead of
// crashing at startup.
var ErrNotConfigured = errors.New("remote api not configured")

// httpClient is the shared rate-limited JSON GET transport. The limiter
// paces outbound requests client-side so upstream quotas are never burned
// by retry storms.
type httpClient struct {
	hc      *http.Client
	limiter ratelimit.Limiter
}

func newHTTPClient(timeout time.Duration, ratePerSec int) *httpClient {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &httpClient{
		hc:      &http.Client{Timeout: timeout},
		limiter: ratelimit.New(ratePerSec),
	}
}

func (c *httpClient) getJSON(ctx context.Context, url string, header http.Header, out any) error {
	c.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("http %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// baseURL accepts either a bare API host or a full URL (handy for tests).
func baseURL(host string) string {
	if strings.Contains(host, "://") {
		return strings.TrimRight(host, "/")
	}
	return "https://" + host
}
