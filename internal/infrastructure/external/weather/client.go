// Package weather is a minimal client for an apixu-style forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tuananhdev/slack-assistant/pkg/config"
)

// Client is a minimal forecast API client
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a forecast client using values from the provided config.
func NewClient(cfg *config.WeatherConfig) *Client {
	base := "http://api.apixu.com/v1"
	if cfg != nil && cfg.BaseURL != "" {
		base = cfg.BaseURL
	}

	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}

	return &Client{
		apiKey:  apiKey,
		baseURL: base,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Condition is a textual weather condition
type Condition struct {
	Text string `json:"text"`
}

// Location identifies the resolved place for a forecast
type Location struct {
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Current holds current conditions
type Current struct {
	TempF     float64   `json:"temp_f"`
	Condition Condition `json:"condition"`
}

// Day holds per-day aggregates
type Day struct {
	MaxTempF  float64   `json:"maxtemp_f"`
	MinTempF  float64   `json:"mintemp_f"`
	Condition Condition `json:"condition"`
}

// Astro holds sunrise/sunset times as display strings
type Astro struct {
	Sunrise string `json:"sunrise"`
	Sunset  string `json:"sunset"`
}

// ForecastDay is one day of the forecast
type ForecastDay struct {
	DateEpoch int64 `json:"date_epoch"`
	Day       Day   `json:"day"`
	Astro     Astro `json:"astro"`
}

// Forecast wraps the per-day list
type Forecast struct {
	ForecastDay []ForecastDay `json:"forecastday"`
}

// ForecastResponse is the forecast.json response shape
type ForecastResponse struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

// Forecast fetches the forecast for a free-text location query.
func (c *Client) Forecast(ctx context.Context, query string, days int) (*ForecastResponse, error) {
	endpoint := fmt.Sprintf("%s/forecast.json?key=%s&q=%s&days=%s",
		c.baseURL,
		url.QueryEscape(c.apiKey),
		url.QueryEscape(query),
		strconv.Itoa(days),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var fr ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		return nil, err
	}
	return &fr, nil
}
