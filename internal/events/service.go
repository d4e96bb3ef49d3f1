package events

import (
	"context"

	"github.com/tidwall/gjson"
)

// PageSource abstracts the Notion adapter for testing.
type PageSource interface {
	QueryPages(ctx context.Context) ([]gjson.Result, error)
}

// Service fetches and normalizes calendar events. Nothing is cached.
type Service struct {
	source PageSource
}

func NewService(source PageSource) *Service {
	return &Service{source: source}
}

func (s *Service) List(ctx context.Context) ([]Event, error) {
	pages, err := s.source.QueryPages(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(pages), nil
}
