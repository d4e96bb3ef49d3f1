package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dk472310/personal-dashboard/internal/httpx"
	"github.com/sony/gobreaker"
)

// Reading is one normalized forecast step from MET Norway.
type Reading struct {
	Time          time.Time
	Temperature   float64 // °C
	WindSpeed     float64 // m/s
	UVIndex       float64
	Precipitation float64 // mm over the next 6 hours
	SymbolCode    string
}

// Client wraps the MET Norway locationforecast 2.0 compact endpoint.
// The API requires an identifying User-Agent.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	circuit   *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, userAgent string) *Client {
	return &Client{
		baseURL:   "https://api.met.no/weatherapi/locationforecast/2.0/compact",
		userAgent: userAgent,
		client:    client,
		circuit:   httpx.NewBreaker("metno"),
	}
}

// Forecast fetches the full timeseries for a location, ordered by time
// ascending as the API delivers it.
func (c *Client) Forecast(ctx context.Context, lat, lon string) ([]Reading, error) {
	values := url.Values{}
	values.Set("lat", lat)
	values.Set("lon", lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httpx.Do(c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("metno fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Timeseries []struct {
				Time time.Time `json:"time"`
				Data struct {
					Instant struct {
						Details struct {
							AirTemperature           float64 `json:"air_temperature"`
							WindSpeed                float64 `json:"wind_speed"`
							UltravioletIndexClearSky float64 `json:"ultraviolet_index_clear_sky"`
						} `json:"details"`
					} `json:"instant"`
					Next6Hours *struct {
						Summary struct {
							SymbolCode string `json:"symbol_code"`
						} `json:"summary"`
						Details struct {
							PrecipitationAmount float64 `json:"precipitation_amount"`
						} `json:"details"`
					} `json:"next_6_hours"`
				} `json:"data"`
			} `json:"timeseries"`
		} `json:"properties"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("metno decode failed: %w", err)
	}

	readings := make([]Reading, 0, len(payload.Properties.Timeseries))
	for _, step := range payload.Properties.Timeseries {
		r := Reading{
			Time:        step.Time.UTC(),
			Temperature: step.Data.Instant.Details.AirTemperature,
			WindSpeed:   step.Data.Instant.Details.WindSpeed,
			UVIndex:     step.Data.Instant.Details.UltravioletIndexClearSky,
		}
		if step.Data.Next6Hours != nil {
			r.Precipitation = step.Data.Next6Hours.Details.PrecipitationAmount
			r.SymbolCode = step.Data.Next6Hours.Summary.SymbolCode
		}
		readings = append(readings, r)
	}
	return readings, nil
}
