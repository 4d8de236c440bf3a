package event

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// EventRepoStub is an in-memory EventRepo for tests. It mirrors the storage
// uniqueness constraint over (user, title, date, start_time), with an absent
// start time forming its own equality class.
type EventRepoStub struct {
	mu     sync.RWMutex
	items  map[int]Event
	nextID int
}

func NewEventRepoStub() *EventRepoStub {
	return &EventRepoStub{
		items:  make(map[int]Event),
		nextID: 1,
	}
}

// Cleanup removes all stored events and resets the id sequence.
func (r *EventRepoStub) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[int]Event)
	r.nextID = 1
}

func uniquenessKey(e Event) string {
	return e.User + "\x00" + e.Title + "\x00" + e.Date + "\x00" + e.StartTime
}

func (r *EventRepoStub) StoreEvent(ctx context.Context, e Event) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := uniquenessKey(e)
	for _, existing := range r.items {
		if uniquenessKey(existing) == key {
			return 0, ErrDuplicateEvent
		}
	}

	e.ID = r.nextID
	r.nextID++
	r.items[e.ID] = e
	return e.ID, nil
}

func (r *EventRepoStub) GetAll(ctx context.Context, username string) ([]Event, error) {
	return r.filter(username, func(Event) bool { return true }), nil
}

func (r *EventRepoStub) GetOnDate(ctx context.Context, username string, date string) ([]Event, error) {
	return r.filter(username, func(e Event) bool { return e.Date == date }), nil
}

func (r *EventRepoStub) GetByTitle(ctx context.Context, username string, title string) ([]Event, error) {
	return r.filter(username, func(e Event) bool { return e.Title == title }), nil
}

func (r *EventRepoStub) GetByKeyword(ctx context.Context, username string, keyword string) ([]Event, error) {
	lowered := strings.ToLower(keyword)
	return r.filter(username, func(e Event) bool {
		return strings.Contains(strings.ToLower(e.Title), lowered)
	}), nil
}

func (r *EventRepoStub) GetBetween(ctx context.Context, username string, fromDate, toDate string) ([]Event, error) {
	return r.filter(username, func(e Event) bool {
		return e.Date >= fromDate && e.Date <= toDate
	}), nil
}

func (r *EventRepoStub) GetByID(ctx context.Context, username string, id int) (Event, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.items[id]
	if !ok || e.User != username {
		return Event{}, false, nil
	}
	return e, true, nil
}

func (r *EventRepoStub) UpdateEvent(ctx context.Context, e Event) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[e.ID]
	if !ok || current.User != e.User {
		return false, nil
	}

	key := uniquenessKey(e)
	for id, existing := range r.items {
		if id != e.ID && uniquenessKey(existing) == key {
			return false, ErrDuplicateEvent
		}
	}

	r.items[e.ID] = e
	return true, nil
}

func (r *EventRepoStub) DeleteEvent(ctx context.Context, username string, id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.items[id]
	if !ok || e.User != username {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}

func (r *EventRepoStub) DeleteByTitle(ctx context.Context, username string, title string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := false
	for id, e := range r.items {
		if e.User == username && e.Title == title {
			delete(r.items, id)
			deleted = true
		}
	}
	return deleted, nil
}

func (r *EventRepoStub) DeleteAll(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.items {
		if e.User == username {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *EventRepoStub) filter(username string, match func(Event) bool) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]Event, 0, len(r.items))
	for _, e := range r.items {
		if e.User == username && match(e) {
			events = append(events, e)
		}
	}
	sortEvents(events)
	return events
}

// sortEvents applies the canonical ordering: date ascending, then start time
// ascending with absent start times treated as "00:00", then id.
func sortEvents(events []Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		si, sj := events[i].StartTime, events[j].StartTime
		if si == "" {
			si = "00:00"
		}
		if sj == "" {
			sj = "00:00"
		}
		if si != sj {
			return si < sj
		}
		return events[i].ID < events[j].ID
	})
}
