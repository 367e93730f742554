// Package calendar consumes a pre-parsed calendar feed as a date-keyed
// event lookup. Fetching and format parsing belong to whatever produced
// the feed file; nothing here touches the network.
package calendar

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
)

// Event is a single calendar entry.
type Event struct {
	ID       string `json:"id,omitempty"`
	Title    string `json:"title"`
	Date     string `json:"date"` // YYYY-MM-DD
	Start    string `json:"start,omitempty"`
	End      string `json:"end,omitempty"`
	AllDay   bool   `json:"all_day,omitempty"`
	Location string `json:"location,omitempty"`
	Calendar string `json:"calendar,omitempty"`
}

// Feed is an in-memory date→events index.
type Feed struct {
	byDate map[string][]Event
}

// Empty returns a feed with no events.
func Empty() *Feed {
	return &Feed{byDate: make(map[string][]Event)}
}

// Load reads a feed file: a JSON array of events. A missing file is an
// empty feed, not an error, so the feature stays optional.
func Load(path string) (*Feed, error) {
	if path == "" {
		return Empty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("reading calendar feed: %w", err)
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing calendar feed: %w", err)
	}

	f := Empty()
	for _, ev := range events {
		if ev.Date == "" {
			continue
		}
		if ev.ID == "" {
			ev.ID = uuid.New().String()
		}
		f.byDate[ev.Date] = append(f.byDate[ev.Date], ev)
	}

	// All-day events lead, the rest ordered by start time.
	for date := range f.byDate {
		evs := f.byDate[date]
		sort.SliceStable(evs, func(i, j int) bool {
			if evs[i].AllDay != evs[j].AllDay {
				return evs[i].AllDay
			}
			return evs[i].Start < evs[j].Start
		})
	}
	return f, nil
}

// EventsOn returns the events on a date, sorted by start time.
func (f *Feed) EventsOn(date string) []Event {
	return append([]Event(nil), f.byDate[date]...)
}
