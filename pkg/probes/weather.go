package probes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/readykit/pulse/pkg/models"
)

const (
	weatherDefaultBaseURL  = "https://api.weatherapi.com"
	weatherDefaultLocation = "Seattle"
)

// WeatherProbe issues a current-conditions lookup against WeatherAPI, which
// the preparedness planner depends on for hazard context.
type WeatherProbe struct {
	baseURL  string
	apiKey   string
	location string
	client   *http.Client
}

func NewWeatherProbe(baseURL, apiKey, location string, timeout time.Duration) *WeatherProbe {
	if baseURL == "" {
		baseURL = weatherDefaultBaseURL
	}

	if location == "" {
		location = weatherDefaultLocation
	}

	return &WeatherProbe{
		baseURL:  baseURL,
		apiKey:   apiKey,
		location: location,
		client:   newHTTPClient(timeout),
	}
}

func (*WeatherProbe) Name() string { return "weather" }

func (w *WeatherProbe) Probe(ctx context.Context) models.ServiceHealth {
	start := time.Now()

	if w.apiKey == "" {
		return result(w.Name(), models.StatusUnknown, start, "no API key configured")
	}

	q := url.Values{}
	q.Set("key", w.apiKey)
	q.Set("q", w.location)

	var current struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current struct {
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	reqURL := w.baseURL + "/v1/current.json?" + q.Encode()

	if _, err := getJSON(ctx, w.client, reqURL, nil, &current); err != nil {
		return result(w.Name(), classify(err), start, fmt.Sprintf("current conditions lookup failed: %v", err))
	}

	h := result(w.Name(), models.StatusHealthy, start, "weather API responding")

	return withDetails(h, map[string]string{
		"location":  current.Location.Name,
		"condition": current.Current.Condition.Text,
	})
}
