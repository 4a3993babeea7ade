package signals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, retries int) *Client {
	return NewClient(Options{
		WeatherBaseURL: srv.URL,
		NewsBaseURL:    srv.URL + "/",
		WeatherAPIKey:  "w-key",
		NewsAPIKey:     "n-key",
		Timeout:        time.Second,
		Retries:        retries,
		Backoff:        time.Millisecond,
	})
}

func TestWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "Rotterdam", r.URL.Query().Get("q"))
		assert.Equal(t, "w-key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`{"cod":200,"weather":[{"main":"Thunderstorm"}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv, 0).Weather(context.Background(), "Rotterdam")
	require.NoError(t, err)
	assert.Equal(t, "Thunderstorm", got)
}

func TestWeatherNotFoundIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 2).Weather(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "city not found")
}

func TestNewsCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/everything", r.URL.Path)
		assert.Equal(t, "supply chain strike", r.URL.Query().Get("q"))
		assert.Equal(t, "n-key", r.URL.Query().Get("apiKey"))
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":137}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv, 0).NewsCount(context.Background(), "supply chain strike")
	require.NoError(t, err)
	assert.Equal(t, 137, got)
}

func TestNewsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","message":"apiKeyInvalid"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 0).NewsCount(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":4}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv, 2).NewsCount(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 4, got)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRetriesAreBounded(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, 1).NewsCount(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTimeoutPerCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(Options{WeatherBaseURL: srv.URL, Timeout: 20 * time.Millisecond, Backoff: time.Millisecond})

	start := time.Now()
	_, err := client.Weather(context.Background(), "Slowtown")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
