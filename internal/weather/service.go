package weather

import (
	"context"
	"fmt"
	"time"
)

// Snapshot is the aggregated weather view served to the dashboard.
type Snapshot struct {
	Temperature         float64 `json:"temperature"`
	Unit                string  `json:"unit"`
	TodaysSuggestion    string  `json:"todays_suggestion"`
	TomorrowsSuggestion string  `json:"tomorrows_suggestion"`
}

// Forecaster abstracts the forecast source for testing.
type Forecaster interface {
	Forecast(ctx context.Context, lat, lon string) ([]Reading, error)
}

// Service turns a raw forecast timeseries into a dashboard snapshot.
// Nothing is cached: every call is a live round trip.
type Service struct {
	forecaster Forecaster
	lat, lon   string
	now        func() time.Time
}

func NewService(forecaster Forecaster, lat, lon string) *Service {
	return &Service{
		forecaster: forecaster,
		lat:        lat,
		lon:        lon,
		now:        time.Now,
	}
}

// Snapshot fetches the forecast once and derives the current temperature plus
// today's and tomorrow's clothing suggestions from it.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	readings, err := s.forecaster.Forecast(ctx, s.lat, s.lon)
	if err != nil {
		return Snapshot{}, err
	}
	if len(readings) == 0 {
		return Snapshot{}, fmt.Errorf("forecast contained no readings")
	}

	current := readings[0]

	snapshot := Snapshot{
		Temperature:      current.Temperature,
		Unit:             "°C",
		TodaysSuggestion: SuggestToday(current),
	}

	if tomorrow, ok := middayTomorrow(readings, s.now().UTC()); ok {
		snapshot.TomorrowsSuggestion = SuggestTomorrow(tomorrow)
	} else {
		snapshot.TomorrowsSuggestion = "Unable to retrieve tomorrow's forecast."
	}

	return snapshot, nil
}

// middayTomorrow picks the forecast step at 12:00 UTC the next day.
func middayTomorrow(readings []Reading, now time.Time) (Reading, bool) {
	tomorrow := now.AddDate(0, 0, 1)
	target := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 12, 0, 0, 0, time.UTC)

	for _, r := range readings {
		if r.Time.Equal(target) {
			return r, true
		}
	}
	return Reading{}, false
}
