package event

import (
	"context"
	"fmt"

	"github.com/agendum/agendum/internal/utils"
	"github.com/agendum/agendum/pkg/user"
)

// EventService exposes the calendar operations. The owning user is read from
// the request context; every operation is scoped to it.
type EventService interface {
	Create(ctx context.Context, draft Draft) (Event, error)
	GetAll(ctx context.Context) ([]Event, error)
	GetOnDate(ctx context.Context, date string) ([]Event, error)
	GetByTitle(ctx context.Context, title string) ([]Event, error)
	GetByKeyword(ctx context.Context, keyword string) ([]Event, error)
	GetNextNDays(ctx context.Context, days int) ([]Event, error)
	Update(ctx context.Context, id int, patch Patch) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	DeleteByTitle(ctx context.Context, title string) (bool, error)
	DeleteAll(ctx context.Context) error
}

type EventServiceImpl struct {
	repo  EventRepo
	clock utils.Clock
}

func NewEventService(repo EventRepo, clock utils.Clock) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, clock: clock}
}

func (s *EventServiceImpl) Create(ctx context.Context, draft Draft) (Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}

	if err := draft.Validate(); err != nil {
		return Event{}, err
	}

	e := Event{
		User:      username,
		Title:     draft.Title,
		Date:      draft.Date,
		StartTime: draft.StartTime,
		EndTime:   draft.EndTime,
	}
	id, err := s.repo.StoreEvent(ctx, e)
	if err != nil {
		return Event{}, err
	}
	e.ID = id
	return e, nil
}

func (s *EventServiceImpl) GetAll(ctx context.Context) ([]Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, username)
}

func (s *EventServiceImpl) GetOnDate(ctx context.Context, date string) ([]Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := ValidateDate(date); err != nil {
		return nil, err
	}
	return s.repo.GetOnDate(ctx, username, date)
}

func (s *EventServiceImpl) GetByTitle(ctx context.Context, title string) ([]Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByTitle(ctx, username, title)
}

func (s *EventServiceImpl) GetByKeyword(ctx context.Context, keyword string) ([]Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetByKeyword(ctx, username, keyword)
}

// GetNextNDays returns the events dated within [today, today+days] inclusive.
// days = 0 means today only; negative day counts are rejected.
func (s *EventServiceImpl) GetNextNDays(ctx context.Context, days int) ([]Event, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if days < 0 {
		return nil, ErrInvalidDayCount
	}

	today := s.clock.Now()
	from := today.Format(DateLayout)
	to := today.AddDate(0, 0, days).Format(DateLayout)
	return s.repo.GetBetween(ctx, username, from, to)
}

// Update applies the non-empty fields of patch to the event with the given
// id. The effective start/end times are revalidated before writing; the
// stored event is left untouched on any failure. Returns false when no event
// with that id exists for the current user.
func (s *EventServiceImpl) Update(ctx context.Context, id int, patch Patch) (bool, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	current, found, err := s.repo.GetByID(ctx, username, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}

	effective := current
	if patch.Title != "" {
		effective.Title = patch.Title
	}
	if patch.Date != "" {
		if err := ValidateDate(patch.Date); err != nil {
			return false, err
		}
		effective.Date = patch.Date
	}
	if patch.StartTime != "" {
		if err := ValidateTime(patch.StartTime); err != nil {
			return false, err
		}
		effective.StartTime = patch.StartTime
	}
	if patch.EndTime != "" {
		if err := ValidateTime(patch.EndTime); err != nil {
			return false, err
		}
		effective.EndTime = patch.EndTime
	}

	if err := validateTimeRange(effective.StartTime, effective.EndTime); err != nil {
		return false, err
	}

	return s.repo.UpdateEvent(ctx, effective)
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteEvent(ctx, username, id)
}

func (s *EventServiceImpl) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteByTitle(ctx, username, title)
}

func (s *EventServiceImpl) DeleteAll(ctx context.Context) error {
	username, err := user.CurrentUsername(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteAll(ctx, username)
}
