package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherinsight/internal/weather"
)

const forecastFixture = `{
  "location": {"name": "Cologne", "country": "Germany"},
  "forecast": {
    "forecastday": [
      {
        "date": "2025-11-21",
        "day": {
          "maxtemp_c": 8.4,
          "mintemp_c": 2.1,
          "condition": {"text": "Overcast"}
        },
        "hour": [
          {"time": "2025-11-21 00:00", "temp_c": 3.0, "condition": {"text": "Clear"}},
          {"time": "2025-11-21 01:00", "temp_c": 2.8, "condition": {"text": "Clear"}}
        ]
      },
      {
        "date": "2025-11-22",
        "day": {
          "maxtemp_c": 11.7,
          "mintemp_c": 4.2,
          "condition": {"text": "Partly cloudy"}
        },
        "hour": []
      }
    ]
  }
}`

func TestWeatherAPIFetchForecast(t *testing.T) {
	var gotQuery map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = map[string]string{
			"key":    q.Get("key"),
			"q":      q.Get("q"),
			"days":   q.Get("days"),
			"aqi":    q.Get("aqi"),
			"alerts": q.Get("alerts"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(forecastFixture))
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	got, err := p.FetchForecast(context.Background(), "Cologne", 2)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"key":    "test-key",
		"q":      "Cologne",
		"days":   "2",
		"aqi":    "no",
		"alerts": "no",
	}, gotQuery)

	assert.Equal(t, "Cologne", got.City)
	require.Len(t, got.Days, 2)
	assert.Equal(t, "2025-11-21", got.Days[0].Date)
	assert.InDelta(t, 8.4, got.Days[0].MaxTempC, 0.001)
	assert.InDelta(t, 2.1, got.Days[0].MinTempC, 0.001)
	assert.Equal(t, "Overcast", got.Days[0].Condition)
	require.Len(t, got.Days[0].Hours, 2)
	assert.Equal(t, "2025-11-21 01:00", got.Days[0].Hours[1].Time)
	assert.Equal(t, "Partly cloudy", got.Days[1].Condition)
	assert.Empty(t, got.Days[1].Hours)
}

func TestWeatherAPIFetchForecastNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, err := p.FetchForecast(context.Background(), "Cologne", 1)

	var statusErr *weather.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.Code)
}

func TestWeatherAPIFetchForecastServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewWeatherAPIProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, err := p.FetchForecast(context.Background(), "Cologne", 1)

	var statusErr *weather.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
}

func TestWeatherAPIFetchForecastMissingKey(t *testing.T) {
	p := NewWeatherAPIProvider(http.DefaultClient, "")

	_, err := p.FetchForecast(context.Background(), "Cologne", 1)
	assert.ErrorContains(t, err, "api key")
}
