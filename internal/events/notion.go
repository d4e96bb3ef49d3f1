package events

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dk472310/personal-dashboard/internal/httpx"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
)

const notionVersion = "2022-06-28"

// Client wraps one Notion database holding calendar entries.
type Client struct {
	token      string
	databaseID string
	baseURL    string
	client     *http.Client
	circuit    *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, token, databaseID string) *Client {
	return &Client{
		token:      token,
		databaseID: databaseID,
		baseURL:    "https://api.notion.com/v1",
		client:     client,
		circuit:    httpx.NewBreaker("notion"),
	}
}

// QueryPages returns the raw database pages. Notion page properties vary per
// record (empty titles, missing dates), so pages are handed to the normalizer
// as gjson results instead of rigid structs.
func (c *Client) QueryPages(ctx context.Context) ([]gjson.Result, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, c.databaseID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte(`{"page_size":100}`)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := httpx.Do(c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("notion query failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return gjson.GetBytes(body, "results").Array(), nil
}
