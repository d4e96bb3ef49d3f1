package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dk472310/personal-dashboard/internal/httpx"
	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"
)

// Task is a normalized Todoist task. The source assigns stable IDs; one raw
// record maps to exactly one Task.
type Task struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Priority  int    `json:"priority"`
	ProjectID int64  `json:"project_id"`
	Due       string `json:"due,omitempty"`
}

// Client wraps the Todoist REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewClient(client *http.Client, apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: "https://api.todoist.com/rest/v2",
		client:  client,
		circuit: httpx.NewBreaker("todoist"),
	}
}

// List fetches all active tasks. Todoist serializes IDs as strings in newer
// API versions and as numbers in older ones, so fields are read with gjson
// rather than a rigid struct.
func (c *Client) List(ctx context.Context) ([]Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}

	var tasks []Task
	for _, item := range gjson.ParseBytes(body).Array() {
		tasks = append(tasks, Task{
			ID:        item.Get("id").Int(),
			Content:   item.Get("content").String(),
			Priority:  int(item.Get("priority").Int()),
			ProjectID: item.Get("project_id").Int(),
			Due:       item.Get("due.date").String(),
		})
	}
	return tasks, nil
}

// Add creates a task. Priority defaults to 1 upstream when zero; due is
// passed through only when set.
func (c *Client) Add(ctx context.Context, content string, priority int, due string) error {
	payload := map[string]any{"content": content}
	if priority > 0 {
		payload["priority"] = priority
	}
	if due != "" {
		payload["due_date"] = due
	}

	_, err := c.do(ctx, http.MethodPost, "/tasks", payload)
	return err
}

// Complete marks a task done.
func (c *Client) Complete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/tasks/%d/close", id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpx.Do(c.client, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("todoist request failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}
