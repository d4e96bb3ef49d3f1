package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/dk472310/personal-dashboard/internal/events"
	"github.com/dk472310/personal-dashboard/internal/news"
	"github.com/dk472310/personal-dashboard/internal/tasks"
	"github.com/dk472310/personal-dashboard/internal/weather"
)

type stubTasks struct {
	list      []tasks.Task
	err       error
	added     []string
	completed []int64
}

func (s *stubTasks) List(context.Context) ([]tasks.Task, error) { return s.list, s.err }

func (s *stubTasks) Add(_ context.Context, content string, _ int, _ string) error {
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, content)
	return nil
}

func (s *stubTasks) Complete(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.completed = append(s.completed, id)
	return nil
}

type stubEvents struct {
	list []events.Event
	err  error
}

func (s *stubEvents) List(context.Context) ([]events.Event, error) { return s.list, s.err }

type stubWeather struct {
	snapshot weather.Snapshot
	err      error
}

func (s *stubWeather) Snapshot(context.Context) (weather.Snapshot, error) {
	return s.snapshot, s.err
}

type stubNews struct {
	articles []news.Article
	err      error
}

func (s *stubNews) Articles(context.Context) ([]news.Article, error) {
	return s.articles, s.err
}

func newTestApp(svc Services) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

func TestGetTasksMapsResponseFields(t *testing.T) {
	app := newTestApp(Services{Tasks: &stubTasks{list: []tasks.Task{
		{ID: 1, Content: "Buy milk", Priority: 4, ProjectID: 9, Due: "2024-06-01"},
		{ID: 2, Content: "No due", Priority: 1, ProjectID: 9},
	}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0]["task"] != "Buy milk" {
		t.Errorf("expected content under 'task' key, got %v", got[0])
	}
	if got[0]["due"] != "2024-06-01" {
		t.Errorf("expected due field, got %v", got[0])
	}
	if _, ok := got[1]["due"]; ok {
		t.Errorf("empty due must be omitted, got %v", got[1])
	}
}

func TestGetTasksAdapterFailure(t *testing.T) {
	app := newTestApp(Services{Tasks: &stubTasks{err: errors.New("todoist unreachable")}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502 on adapter failure, got %d", resp.StatusCode)
	}
}

func TestAddTaskValidation(t *testing.T) {
	stub := &stubTasks{}
	app := newTestApp(Services{Tasks: stub})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"task": "Water plants", "priority": 2, "due": "2024-06-15"}`, http.StatusOK},
		{"missing task", `{"priority": 2}`, http.StatusBadRequest},
		{"priority out of range", `{"task": "x", "priority": 5}`, http.StatusBadRequest},
		{"malformed due date", `{"task": "x", "due": "15.06.2024"}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/todoist/add", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}

	if len(stub.added) != 1 {
		t.Errorf("expected exactly the valid request to reach the service, got %v", stub.added)
	}
}

func TestCompleteTaskRejectsNonNumericID(t *testing.T) {
	app := newTestApp(Services{Tasks: &stubTasks{}})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/todoist/remove/abc", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric task id, got %d", resp.StatusCode)
	}
}

func TestCompleteTask(t *testing.T) {
	stub := &stubTasks{}
	app := newTestApp(Services{Tasks: stub})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/todoist/remove/42", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if len(stub.completed) != 1 || stub.completed[0] != 42 {
		t.Errorf("expected task 42 completed, got %v", stub.completed)
	}
}

func TestGetEventsRendersDates(t *testing.T) {
	app := newTestApp(Services{Events: &stubEvents{list: []events.Event{
		{
			ID:          "page-a",
			Name:        "Dentist",
			Date:        events.EventDate{StartDate: "2024-06-01", StartTime: "09:00", EndTime: "10:00"},
			Description: "Checkup",
		},
	}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/events", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0]["event_name"] != "Dentist" {
		t.Errorf("unexpected event name: %v", got[0])
	}
	if got[0]["event_date"] != "2024-06-01 09:00 - 10:00" {
		t.Errorf("unexpected event date rendering: %v", got[0]["event_date"])
	}
}

func TestGetWeather(t *testing.T) {
	app := newTestApp(Services{Weather: &stubWeather{snapshot: weather.Snapshot{
		Temperature:         21.5,
		Unit:                "°C",
		TodaysSuggestion:    "today",
		TomorrowsSuggestion: "tomorrow",
	}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, key := range []string{"temperature", "unit", "todays_suggestion", "tomorrows_suggestion"} {
		if !strings.Contains(string(body), key) {
			t.Errorf("expected %q in response body %s", key, body)
		}
	}
}

func TestGetWeatherUpstreamFailure(t *testing.T) {
	app := newTestApp(Services{Weather: &stubWeather{err: errors.New("met.no unreachable")}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", resp.StatusCode)
	}
}

func TestGetNewsReturnsCachedArticles(t *testing.T) {
	app := newTestApp(Services{News: &stubNews{articles: []news.Article{
		{Title: "Headline", Date: "2024-06-01", TextContent: "Summary", Link: "https://example.org"},
	}}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/news", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var got []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got) != 1 || got[0]["title"] != "Headline" {
		t.Errorf("unexpected news payload: %v", got)
	}
	if got[0]["text_content"] != "Summary" {
		t.Errorf("expected text_content key, got %v", got[0])
	}
}

func TestGetNewsStorageFailure(t *testing.T) {
	app := newTestApp(Services{News: &stubNews{err: errors.New("cache corrupt")}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/news", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500 on cache read failure, got %d", resp.StatusCode)
	}
}
