package assistant

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendum/agendum/internal/utils"
	"github.com/agendum/agendum/pkg/chat"
	"github.com/agendum/agendum/pkg/event"
	"github.com/agendum/agendum/pkg/user"
)

var ctx = user.WithUser(context.Background(), "user1")

func setupAssistant(t *testing.T) *Assistant {
	t.Helper()
	repo := event.NewEventRepoStub()
	clock := &utils.MockClock{FixedNow: time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)}
	events := event.NewEventService(repo, clock)
	chatLog := chat.NewLog(filepath.Join(t.TempDir(), "memory.json"))
	return New(events, chatLog, clock)
}

func TestAssistant_AddEvent(t *testing.T) {
	a := setupAssistant(t)

	result, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00, end=15:00")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Event added: [1] Doctor on 2025-09-21 14:00-15:00", result.Message)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Doctor", result.Events[0].Title)
}

func TestAssistant_AddEvent_MissingDate(t *testing.T) {
	a := setupAssistant(t)

	result, err := a.HandleMessage(ctx, "add Doctor appointment")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "title and a date")
}

func TestAssistant_AddEvent_Duplicate(t *testing.T) {
	a := setupAssistant(t)

	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "Could not add event")
}

func TestAssistant_ListOnDate(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00, end=15:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "what's on 2025-09-21?")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "[1] Doctor on 2025-09-21 14:00-15:00", result.Message)
	assert.Len(t, result.Events, 1)
}

func TestAssistant_ListOnDate_Empty(t *testing.T) {
	a := setupAssistant(t)

	result, err := a.HandleMessage(ctx, "what's on 2025-09-21?")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "No events on 2025-09-21", result.Message)
	assert.Empty(t, result.Events)
}

func TestAssistant_Search(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor appointment, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "search doctor")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Len(t, result.Events, 1)
}

func TestAssistant_NextDays(t *testing.T) {
	a := setupAssistant(t)
	// clock is fixed at 2025-09-20
	_, err := a.HandleMessage(ctx, "add title=Soon, date=2025-09-24")
	require.NoError(t, err)
	_, err = a.HandleMessage(ctx, "add title=Far, date=2025-10-15")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "show next 7 days")

	require.NoError(t, err)
	assert.True(t, result.Success)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "Soon", result.Events[0].Title)
}

func TestAssistant_Update(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00, end=15:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "update id=1, start=16:00, end=17:00")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Event 1 updated successfully", result.Message)
}

func TestAssistant_Update_NotFound(t *testing.T) {
	a := setupAssistant(t)

	result, err := a.HandleMessage(ctx, "update id=9, start=16:00")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Event 9 not found", result.Message)
}

func TestAssistant_Delete(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "delete event 1")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Event 1 deleted.", result.Message)
}

func TestAssistant_DeleteByTitle(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, `delete "Doctor"`)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "Event(s) with title 'Doctor' deleted", result.Message)
}

func TestAssistant_Clear(t *testing.T) {
	a := setupAssistant(t)
	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	result, err := a.HandleMessage(ctx, "delete all events")

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "All events deleted.", result.Message)

	listed, err := a.HandleMessage(ctx, "list my events")
	require.NoError(t, err)
	assert.Equal(t, "No events found.", listed.Message)
}

func TestAssistant_UnknownMessage(t *testing.T) {
	a := setupAssistant(t)

	result, err := a.HandleMessage(ctx, "hello there")

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "I can manage your calendar")
}

func TestAssistant_LogsConversation(t *testing.T) {
	a := setupAssistant(t)

	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)

	history, err := a.History(0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, chat.RoleUser, history[0].Role)
	assert.Equal(t, "add title=Doctor, date=2025-09-21, start=14:00", history[0].Message)
	assert.Equal(t, chat.RoleAssistant, history[1].Role)
	assert.Contains(t, history[1].Message, "Event added")
}

func TestAssistant_HistoryLimit(t *testing.T) {
	a := setupAssistant(t)

	_, err := a.HandleMessage(ctx, "add title=Doctor, date=2025-09-21, start=14:00")
	require.NoError(t, err)
	_, err = a.HandleMessage(ctx, "list my events")
	require.NoError(t, err)

	history, err := a.History(2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "list my events", history[0].Message)
}
