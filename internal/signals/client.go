// Package signals queries the external weather and news services used to
// compound shipment risk.
package signals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Source is the capability the risk engine depends on. Both lookups may
// fail; callers decide the fallback.
type Source interface {
	Weather(ctx context.Context, location string) (string, error)
	NewsCount(ctx context.Context, query string) (int, error)
}

type Options struct {
	WeatherBaseURL string
	NewsBaseURL    string
	WeatherAPIKey  string
	NewsAPIKey     string
	Timeout        time.Duration
	Retries        int
	Backoff        time.Duration
	HTTPClient     *http.Client
	Logger         *zap.Logger
}

// Client talks to OpenWeatherMap and NewsAPI.
type Client struct {
	http       *http.Client
	weatherURL string
	newsURL    string
	weatherKey string
	newsKey    string
	timeout    time.Duration
	retries    int
	backoff    time.Duration
	logger     *zap.Logger
}

func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	backoff := opts.Backoff
	if backoff <= 0 {
		backoff = 200 * time.Millisecond
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:       httpClient,
		weatherURL: strings.TrimRight(opts.WeatherBaseURL, "/") + "/data/2.5/weather",
		newsURL:    strings.TrimRight(opts.NewsBaseURL, "/") + "/v2/everything",
		weatherKey: opts.WeatherAPIKey,
		newsKey:    opts.NewsAPIKey,
		timeout:    timeout,
		retries:    max(opts.Retries, 0),
		backoff:    backoff,
		logger:     logger,
	}
}

type weatherResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

// Weather returns the headline condition ("Clear", "Rain", ...) for a city.
func (c *Client) Weather(ctx context.Context, location string) (string, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("appid", c.weatherKey)

	var payload weatherResponse
	if err := c.getJSON(ctx, c.weatherURL+"?"+q.Encode(), &payload); err != nil {
		return "", fmt.Errorf("weather lookup %s: %w", location, err)
	}
	if fmt.Sprint(payload.Cod) != "200" {
		return "", fmt.Errorf("weather lookup %s: cod=%v %s", location, payload.Cod, payload.Message)
	}
	if len(payload.Weather) == 0 || payload.Weather[0].Main == "" {
		return "", fmt.Errorf("weather lookup %s: empty condition", location)
	}
	return payload.Weather[0].Main, nil
}

type newsResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	TotalResults int    `json:"totalResults"`
}

// NewsCount returns how many articles match query.
func (c *Client) NewsCount(ctx context.Context, query string) (int, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("apiKey", c.newsKey)

	var payload newsResponse
	if err := c.getJSON(ctx, c.newsURL+"?"+q.Encode(), &payload); err != nil {
		return 0, fmt.Errorf("news lookup %q: %w", query, err)
	}
	if payload.Status != "ok" {
		return 0, fmt.Errorf("news lookup %q: status=%s %s", query, payload.Status, payload.Message)
	}
	if payload.TotalResults < 0 {
		return 0, fmt.Errorf("news lookup %q: negative totalResults %d", query, payload.TotalResults)
	}
	return payload.TotalResults, nil
}

var errRetryable = errors.New("retryable upstream response")

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		err := c.getOnce(ctx, rawURL, dst)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || !isTransient(err) {
			return err
		}
		c.logger.Debug("signal lookup retry", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	return lastErr
}

func (c *Client) getOnce(ctx context.Context, rawURL string, dst any) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	}
	// Both services put an error envelope in 4xx bodies; decode it and let
	// the caller inspect cod/status.
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isTransient(err error) bool {
	return errors.Is(err, errRetryable)
}
