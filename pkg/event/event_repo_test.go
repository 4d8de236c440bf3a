package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendum/agendum/internal/test_utils"
)

func setupTestRepository(t *testing.T) (context.Context, *EventRepoImpl) {
	db := test_utils.SetupTestDB(t)
	return context.Background(), NewEventRepo(db)
}

func TestEventRepoImpl_StoreEvent(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	id, err := repo.StoreEvent(ctx, Event{
		User:      "user1",
		Title:     "Doctor",
		Date:      "2025-09-21",
		StartTime: "14:00",
		EndTime:   "15:00",
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	stored, found, err := repo.GetByID(ctx, "user1", id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Doctor", stored.Title)
	assert.Equal(t, "2025-09-21", stored.Date)
	assert.Equal(t, "14:00", stored.StartTime)
	assert.Equal(t, "15:00", stored.EndTime)
}

func TestEventRepoImpl_StoreEvent_NullTimes(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	id, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Holiday", Date: "2025-12-24"})

	// then
	require.NoError(t, err)

	stored, found, err := repo.GetByID(ctx, "user1", id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, stored.StartTime)
	assert.Empty(t, stored.EndTime)
}

func TestEventRepoImpl_StoreEvent_UniqueConstraint(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00"})
	require.NoError(t, err)

	// when, same title, date and start time for the same user
	_, err = repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00", EndTime: "16:00"})

	// then
	assert.ErrorIs(t, err, ErrDuplicateEvent)

	// a different start time is fine
	_, err = repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "16:00"})
	assert.NoError(t, err)

	// and so is a different user
	_, err = repo.StoreEvent(ctx, Event{User: "user2", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00"})
	assert.NoError(t, err)
}

// Rows with a NULL start_time must collide too, the index treats the
// absent start time as a value of its own.
func TestEventRepoImpl_StoreEvent_UniqueConstraintWithoutStartTime(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	_, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Holiday", Date: "2025-12-24"})
	require.NoError(t, err)

	// when
	_, err = repo.StoreEvent(ctx, Event{User: "user1", Title: "Holiday", Date: "2025-12-24"})

	// then
	assert.ErrorIs(t, err, ErrDuplicateEvent)
}

func TestEventRepoImpl_GetAll_Ordering(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Late", Date: "2025-09-22", StartTime: "18:00"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Noon", Date: "2025-09-21", StartTime: "12:00"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Untimed", Date: "2025-09-21"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Early", Date: "2025-09-21", StartTime: "09:00"})

	// when
	events, err := repo.GetAll(ctx, "user1")

	// then
	require.NoError(t, err)
	require.Len(t, events, 4)
	assert.Equal(t, "Untimed", events[0].Title)
	assert.Equal(t, "Early", events[1].Title)
	assert.Equal(t, "Noon", events[2].Title)
	assert.Equal(t, "Late", events[3].Title)
}

func TestEventRepoImpl_GetByKeyword(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor appointment", Date: "2025-09-21", StartTime: "14:00"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Team meeting", Date: "2025-09-22", StartTime: "10:00"})
	repo.StoreEvent(ctx, Event{User: "user2", Title: "Doctor visit", Date: "2025-09-21"})

	// when
	events, err := repo.GetByKeyword(ctx, "user1", "DocToR")

	// then
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Doctor appointment", events[0].Title)

	// literal LIKE wildcards in the keyword must not match everything
	events, err = repo.GetByKeyword(ctx, "user1", "%")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestEventRepoImpl_GetBetween(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Before", Date: "2025-09-19"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "From", Date: "2025-09-20"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "To", Date: "2025-09-27"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "After", Date: "2025-09-28"})

	// when
	events, err := repo.GetBetween(ctx, "user1", "2025-09-20", "2025-09-27")

	// then
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "From", events[0].Title)
	assert.Equal(t, "To", events[1].Title)
}

func TestEventRepoImpl_GetByID_WrongUser(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21"})
	require.NoError(t, err)

	// when
	_, found, err := repo.GetByID(ctx, "user2", id)

	// then
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestEventRepoImpl_UpdateEvent(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00", EndTime: "15:00"})
	require.NoError(t, err)

	// when
	updated, err := repo.UpdateEvent(ctx, Event{
		ID:        id,
		User:      "user1",
		Title:     "Dentist",
		Date:      "2025-09-22",
		StartTime: "16:00",
		EndTime:   "17:00",
	})

	// then
	require.NoError(t, err)
	assert.True(t, updated)

	stored, found, err := repo.GetByID(ctx, "user1", id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Dentist", stored.Title)
	assert.Equal(t, "2025-09-22", stored.Date)
	assert.Equal(t, "16:00", stored.StartTime)
	assert.Equal(t, "17:00", stored.EndTime)
}

func TestEventRepoImpl_UpdateEvent_Conflict(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	idA, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00"})
	require.NoError(t, err)
	_, err = repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "16:00"})
	require.NoError(t, err)

	// when, moving A onto B's slot
	updated, err := repo.UpdateEvent(ctx, Event{ID: idA, User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "16:00"})

	// then
	assert.ErrorIs(t, err, ErrDuplicateEvent)
	assert.False(t, updated)

	// A keeps its original start time
	stored, found, err := repo.GetByID(ctx, "user1", idA)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "14:00", stored.StartTime)
}

func TestEventRepoImpl_UpdateEvent_NotFound(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)

	// when
	updated, err := repo.UpdateEvent(ctx, Event{ID: 42, User: "user1", Title: "Doctor", Date: "2025-09-21"})

	// then
	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestEventRepoImpl_DeleteEvent(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	id, err := repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21"})
	require.NoError(t, err)

	// when
	deleted, err := repo.DeleteEvent(ctx, "user1", id)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteEvent(ctx, "user1", id)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestEventRepoImpl_DeleteByTitle(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21", StartTime: "14:00"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-22", StartTime: "14:00"})
	repo.StoreEvent(ctx, Event{User: "user2", Title: "Doctor", Date: "2025-09-21"})

	// when
	deleted, err := repo.DeleteByTitle(ctx, "user1", "Doctor")

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)

	mine, err := repo.GetAll(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repo.GetAll(ctx, "user2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}

func TestEventRepoImpl_DeleteAll(t *testing.T) {
	// given
	ctx, repo := setupTestRepository(t)
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Doctor", Date: "2025-09-21"})
	repo.StoreEvent(ctx, Event{User: "user1", Title: "Gym", Date: "2025-09-22"})
	repo.StoreEvent(ctx, Event{User: "user2", Title: "Doctor", Date: "2025-09-21"})

	// when
	err := repo.DeleteAll(ctx, "user1")

	// then
	assert.NoError(t, err)

	mine, err := repo.GetAll(ctx, "user1")
	require.NoError(t, err)
	assert.Empty(t, mine)

	theirs, err := repo.GetAll(ctx, "user2")
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
