package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dk472310/personal-dashboard/internal/httpx"
	"github.com/sony/gobreaker"
)

// TagesschauClient fetches the Tagesschau homepage feed.
type TagesschauClient struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewTagesschauClient(client *http.Client) *TagesschauClient {
	return &TagesschauClient{
		baseURL: "https://www.tagesschau.de/api2u/homepage",
		client:  client,
		circuit: httpx.NewBreaker("tagesschau"),
	}
}

func (c *TagesschauClient) Fetch(ctx context.Context) ([]RawArticle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpx.Do(c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("tagesschau fetch failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		News []RawArticle `json:"news"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("tagesschau decode failed: %w", err)
	}

	return payload.News, nil
}
