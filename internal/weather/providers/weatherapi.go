package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"weatherinsight/internal/weather"
)

// WeatherAPIProvider implements the weather.Provider interface for the
// WeatherAPI.com forecast endpoint.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weatherapi",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/forecast.json",
		client:  client,
		circuit: cb,
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

// FetchForecast requests a multi-day forecast for the city and normalizes
// the response. The window is anchored at WeatherAPI's "today", so the
// caller selects its target day by date, not by index.
func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, city string, days int) (weather.ProviderForecast, error) {
	if p.apiKey == "" {
		return weather.ProviderForecast{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		values.Set("q", city)
		values.Set("days", strconv.Itoa(days))
		values.Set("aqi", "no")
		values.Set("alerts", "no")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithBreaker(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.ProviderForecast{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return weather.ProviderForecast{}, &weather.StatusError{Code: resp.StatusCode}
	}

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC  float64 `json:"maxtemp_c"`
					MinTempC  float64 `json:"mintemp_c"`
					Condition struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
				Hour []struct {
					Time      string  `json:"time"`
					TempC     float64 `json:"temp_c"`
					Condition struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ProviderForecast{}, fmt.Errorf("decode weatherapi response: %w", err)
	}

	out := weather.ProviderForecast{
		City: payload.Location.Name,
		Days: make([]weather.ProviderDay, 0, len(payload.Forecast.ForecastDay)),
	}

	for _, d := range payload.Forecast.ForecastDay {
		day := weather.ProviderDay{
			Date:      d.Date,
			MaxTempC:  d.Day.MaxTempC,
			MinTempC:  d.Day.MinTempC,
			Condition: d.Day.Condition.Text,
			Hours:     make([]weather.HourForecast, 0, len(d.Hour)),
		}
		for _, h := range d.Hour {
			day.Hours = append(day.Hours, weather.HourForecast{
				Time:      h.Time,
				TempC:     h.TempC,
				Condition: h.Condition.Text,
			})
		}
		out.Days = append(out.Days, day)
	}

	return out, nil
}
