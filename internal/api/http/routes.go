package httpapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/dk472310/personal-dashboard/internal/events"
	"github.com/dk472310/personal-dashboard/internal/news"
	"github.com/dk472310/personal-dashboard/internal/tasks"
	"github.com/dk472310/personal-dashboard/internal/weather"
)

var validate = validator.New()

// TaskService is the task-manager surface the handlers need.
type TaskService interface {
	List(ctx context.Context) ([]tasks.Task, error)
	Add(ctx context.Context, content string, priority int, due string) error
	Complete(ctx context.Context, id int64) error
}

// EventService lists normalized calendar events.
type EventService interface {
	List(ctx context.Context) ([]events.Event, error)
}

// WeatherService produces the current weather snapshot.
type WeatherService interface {
	Snapshot(ctx context.Context) (weather.Snapshot, error)
}

// NewsService serves the cached article set, refreshing when stale.
type NewsService interface {
	Articles(ctx context.Context) ([]news.Article, error)
}

// Services bundles the per-domain services the routes are wired against.
type Services struct {
	Tasks   TaskService
	Events  EventService
	Weather WeatherService
	News    NewsService
}

// taskResponse mirrors the shape the dashboard frontend expects.
type taskResponse struct {
	ID        int64  `json:"id"`
	Task      string `json:"task"`
	Priority  int    `json:"priority"`
	ProjectID int64  `json:"project_id"`
	Due       string `json:"due,omitempty"`
}

type eventResponse struct {
	ID          string `json:"id"`
	EventName   string `json:"event_name"`
	EventDate   string `json:"event_date"`
	Description string `json:"description"`
}

type addTaskRequest struct {
	Task     string `json:"task" validate:"required"`
	Priority int    `json:"priority" validate:"omitempty,min=1,max=4"`
	Due      string `json:"due" validate:"omitempty,datetime=2006-01-02"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Services) {
	api := app.Group("/api")

	api.Get("/tasks", func(c *fiber.Ctx) error {
		list, err := svc.Tasks.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("failed to fetch tasks: %v", err))
		}

		out := make([]taskResponse, 0, len(list))
		for _, t := range list {
			out = append(out, taskResponse{
				ID:        t.ID,
				Task:      t.Content,
				Priority:  t.Priority,
				ProjectID: t.ProjectID,
				Due:       t.Due,
			})
		}
		return c.JSON(out)
	})

	api.Post("/todoist/remove/:task_id", func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("task_id"), 10, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "task_id must be an integer")
		}

		if err := svc.Tasks.Complete(c.Context(), id); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("failed to complete task %d: %v", id, err))
		}
		return c.JSON(fiber.Map{"message": fmt.Sprintf("Task %d removed successfully", id)})
	})

	api.Post("/todoist/add", func(c *fiber.Ctx) error {
		var req addTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := svc.Tasks.Add(c.Context(), req.Task, req.Priority, req.Due); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("failed to add task: %v", err))
		}
		return c.JSON(fiber.Map{"message": "Task added successfully"})
	})

	api.Get("/weather", func(c *fiber.Ctx) error {
		snapshot, err := svc.Weather.Snapshot(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("failed to fetch weather: %v", err))
		}
		return c.JSON(snapshot)
	})

	api.Get("/events", func(c *fiber.Ctx) error {
		list, err := svc.Events.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, fmt.Sprintf("error fetching events: %v", err))
		}

		out := make([]eventResponse, 0, len(list))
		for _, e := range list {
			out = append(out, eventResponse{
				ID:          e.ID,
				EventName:   e.Name,
				EventDate:   e.Date.String(),
				Description: e.Description,
			})
		}
		return c.JSON(out)
	})

	api.Get("/news", func(c *fiber.Ctx) error {
		articles, err := svc.News.Articles(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to read news cache: %v", err))
		}
		return c.JSON(articles)
	})
}
