package events

import (
	"fmt"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// Event is a normalized calendar entry from the Notion database.
type Event struct {
	ID          string
	Name        string
	Date        EventDate
	Description string
}

// EventDate holds the extracted date range. EndDate is empty for same-day
// events; String renders either form.
type EventDate struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

func (d EventDate) SameDay() bool {
	return d.EndDate == ""
}

func (d EventDate) String() string {
	if d.SameDay() {
		return fmt.Sprintf("%s %s - %s", d.StartDate, d.StartTime, d.EndTime)
	}
	return fmt.Sprintf("%s %s to %s %s", d.StartDate, d.StartTime, d.EndDate, d.EndTime)
}

var (
	datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	timePattern = regexp.MustCompile(`\d{2}:\d{2}`)
)

// Normalize turns raw Notion pages into Events. Names, dates and descriptions
// are extracted in independent passes, each keyed by the page ID; the final
// join is by that ID, so a page skipped in one pass can never shift another
// page's fields. Pages without a usable name or start date are skipped with a
// diagnostic; a missing description gets a default.
func Normalize(pages []gjson.Result) []Event {
	names := extractNames(pages)
	dates := extractDates(pages)
	descriptions := extractDescriptions(pages)

	events := make([]Event, 0, len(pages))
	for _, page := range pages {
		id := page.Get("id").String()

		name, ok := names[id]
		if !ok {
			continue
		}
		date, ok := dates[id]
		if !ok {
			continue
		}

		description := descriptions[id]
		if description == "" {
			description = "No description available"
		}

		events = append(events, Event{
			ID:          id,
			Name:        name,
			Date:        date,
			Description: description,
		})
	}
	return events
}

func extractNames(pages []gjson.Result) map[string]string {
	names := make(map[string]string, len(pages))
	for _, page := range pages {
		id := page.Get("id").String()
		title := page.Get("properties.Action.title.0.plain_text").String()
		if title == "" {
			logrus.Debugf("skipping page %s: empty event name", id)
			continue
		}
		names[id] = title
	}
	return names
}

func extractDates(pages []gjson.Result) map[string]EventDate {
	dates := make(map[string]EventDate, len(pages))
	for _, page := range pages {
		id := page.Get("id").String()

		dateProp := page.Get("properties.Date.date")
		if !dateProp.Exists() || dateProp.Type == gjson.Null {
			logrus.Debugf("skipping page %s: no date property", id)
			continue
		}

		date, err := ParseEventDate(dateProp.Get("start").String(), dateProp.Get("end").String())
		if err != nil {
			logrus.Warnf("skipping page %s: %v", id, err)
			continue
		}
		dates[id] = date
	}
	return dates
}

func extractDescriptions(pages []gjson.Result) map[string]string {
	descriptions := make(map[string]string, len(pages))
	for _, page := range pages {
		id := page.Get("id").String()
		text := page.Get("properties.Description.rich_text.0.plain_text").String()
		if text == "" {
			logrus.Debugf("page %s has no description", id)
			continue
		}
		descriptions[id] = text
	}
	return descriptions
}

// ParseEventDate extracts YYYY-MM-DD and HH:MM substrings from free-form
// start/end strings. The start time defaults to 00:00 and the end time to
// 23:59 when absent; a missing end date means a same-day event. An input
// with no extractable start date is an error, not a panic.
func ParseEventDate(start, end string) (EventDate, error) {
	startDate := datePattern.FindString(start)
	if startDate == "" {
		return EventDate{}, fmt.Errorf("no start date in %q", start)
	}

	startTime := timePattern.FindString(start)
	if startTime == "" {
		startTime = "00:00"
	}

	endDate := datePattern.FindString(end)
	endTime := timePattern.FindString(end)
	if endTime == "" {
		endTime = "23:59"
	}

	if endDate == "" || endDate == startDate {
		return EventDate{StartDate: startDate, StartTime: startTime, EndTime: endTime}, nil
	}
	return EventDate{StartDate: startDate, StartTime: startTime, EndDate: endDate, EndTime: endTime}, nil
}
