package game

import (
	"sort"
	"time"

	"github.com/julianstephens/dayquest/internal/models"
)

// newestFirst returns the full log ordered by timestamp descending.
func (e *Engine) newestFirst() ([]models.Event, error) {
	events, err := e.store.GetEvents()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events, nil
}

// RecentEvents returns up to n events, newest first.
func (e *Engine) RecentEvents(n int) ([]models.Event, error) {
	events, err := e.newestFirst()
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(events) {
		events = events[:n]
	}
	return events, nil
}

// EventsByType filters the log by event type, newest first.
func (e *Engine) EventsByType(t models.EventType) ([]models.Event, error) {
	events, err := e.newestFirst()
	if err != nil {
		return nil, err
	}
	filtered := events[:0]
	for _, ev := range events {
		if ev.Type == t {
			filtered = append(filtered, ev)
		}
	}
	return filtered, nil
}

// EventsByDateRange returns events with start <= timestamp < end, newest
// first.
func (e *Engine) EventsByDateRange(start, end time.Time) ([]models.Event, error) {
	events, err := e.newestFirst()
	if err != nil {
		return nil, err
	}
	filtered := events[:0]
	for _, ev := range events {
		if !ev.Timestamp.Before(start) && ev.Timestamp.Before(end) {
			filtered = append(filtered, ev)
		}
	}
	return filtered, nil
}
