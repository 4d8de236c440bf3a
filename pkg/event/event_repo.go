package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// EventRepo persists calendar events. Per-user uniqueness of
// (title, date, start_time) is enforced by the storage layer, so concurrent
// check-then-write sequences cannot create duplicates.
type EventRepo interface {
	StoreEvent(ctx context.Context, e Event) (int, error)
	GetAll(ctx context.Context, username string) ([]Event, error)
	GetOnDate(ctx context.Context, username string, date string) ([]Event, error)
	GetByTitle(ctx context.Context, username string, title string) ([]Event, error)
	GetByKeyword(ctx context.Context, username string, keyword string) ([]Event, error)
	GetBetween(ctx context.Context, username string, fromDate, toDate string) ([]Event, error)
	GetByID(ctx context.Context, username string, id int) (Event, bool, error)
	UpdateEvent(ctx context.Context, e Event) (bool, error)
	DeleteEvent(ctx context.Context, username string, id int) (bool, error)
	DeleteByTitle(ctx context.Context, username string, title string) (bool, error)
	DeleteAll(ctx context.Context, username string) error
}

const eventColumns = "id, user, title, date, start_time, end_time"

// Events are returned ordered by date, then start time, with events lacking
// a start time sorting first within the same day.
const eventOrdering = "ORDER BY date ASC, IFNULL(start_time, '00:00') ASC, id ASC"

type EventRepoImpl struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepoImpl {
	return &EventRepoImpl{db: db}
}

func (r *EventRepoImpl) StoreEvent(ctx context.Context, e Event) (int, error) {
	query := `INSERT INTO events (user, title, date, start_time, end_time) VALUES (?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, e.User, e.Title, e.Date, nullable(e.StartTime), nullable(e.EndTime))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEvent
		}
		err := fmt.Errorf("could not store event: %w", err)
		log.Error(err)
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not read inserted event id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(id), nil
}

func (r *EventRepoImpl) GetAll(ctx context.Context, username string) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? ` + eventOrdering
	return r.queryEvents(ctx, query, username)
}

func (r *EventRepoImpl) GetOnDate(ctx context.Context, username string, date string) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? AND date = ? ` + eventOrdering
	return r.queryEvents(ctx, query, username, date)
}

func (r *EventRepoImpl) GetByTitle(ctx context.Context, username string, title string) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? AND title = ? ` + eventOrdering
	return r.queryEvents(ctx, query, username, title)
}

// GetByKeyword matches the keyword as a case-insensitive substring of the
// title. instr avoids LIKE wildcard escaping for user-supplied keywords.
func (r *EventRepoImpl) GetByKeyword(ctx context.Context, username string, keyword string) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? AND instr(lower(title), lower(?)) > 0 ` + eventOrdering
	return r.queryEvents(ctx, query, username, keyword)
}

func (r *EventRepoImpl) GetBetween(ctx context.Context, username string, fromDate, toDate string) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? AND date >= ? AND date <= ? ` + eventOrdering
	return r.queryEvents(ctx, query, username, fromDate, toDate)
}

func (r *EventRepoImpl) GetByID(ctx context.Context, username string, id int) (Event, bool, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user = ? AND id = ?`

	var e Event
	var startTime, endTime sql.NullString
	err := r.db.QueryRowContext(ctx, query, username, id).Scan(&e.ID, &e.User, &e.Title, &e.Date, &startTime, &endTime)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query event %d: %w", id, err)
		log.Error(err)
		return Event{}, false, err
	}
	e.StartTime = startTime.String
	e.EndTime = endTime.String
	return e, true, nil
}

// UpdateEvent overwrites all mutable fields of the event identified by
// (user, id). Returns false if no such event exists.
func (r *EventRepoImpl) UpdateEvent(ctx context.Context, e Event) (bool, error) {
	query := `UPDATE events SET title = ?, date = ?, start_time = ?, end_time = ? WHERE user = ? AND id = ?`

	res, err := r.db.ExecContext(ctx, query, e.Title, e.Date, nullable(e.StartTime), nullable(e.EndTime), e.User, e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, ErrDuplicateEvent
		}
		err := fmt.Errorf("could not update event %d: %w", e.ID, err)
		log.Error(err)
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not read affected rows: %w", err)
		log.Error(err)
		return false, err
	}
	return affected > 0, nil
}

func (r *EventRepoImpl) DeleteEvent(ctx context.Context, username string, id int) (bool, error) {
	query := `DELETE FROM events WHERE user = ? AND id = ?`
	return r.deleteReturningFound(ctx, query, username, id)
}

func (r *EventRepoImpl) DeleteByTitle(ctx context.Context, username string, title string) (bool, error) {
	query := `DELETE FROM events WHERE user = ? AND title = ?`
	return r.deleteReturningFound(ctx, query, username, title)
}

func (r *EventRepoImpl) DeleteAll(ctx context.Context, username string) error {
	query := `DELETE FROM events WHERE user = ?`
	_, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		err := fmt.Errorf("could not delete events for user: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *EventRepoImpl) queryEvents(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var e Event
		var startTime, endTime sql.NullString
		if err := rows.Scan(&e.ID, &e.User, &e.Title, &e.Date, &startTime, &endTime); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		e.StartTime = startTime.String
		e.EndTime = endTime.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("could not iterate rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepoImpl) deleteReturningFound(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not delete events: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not read affected rows: %w", err)
		log.Error(err)
		return false, err
	}
	return affected > 0, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
