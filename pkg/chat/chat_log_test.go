package chat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLog(t *testing.T) (*Log, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.json")
	return NewLog(path), path
}

func TestLog_Append(t *testing.T) {
	chatLog, _ := setupLog(t)

	entry, err := chatLog.Append(RoleUser, "hello")

	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.Equal(t, RoleUser, entry.Role)
	assert.Equal(t, "hello", entry.Message)
}

func TestLog_AppendAssignsUniqueIDs(t *testing.T) {
	chatLog, _ := setupLog(t)

	first, err := chatLog.Append(RoleUser, "one")
	require.NoError(t, err)
	second, err := chatLog.Append(RoleAssistant, "two")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestLog_History(t *testing.T) {
	chatLog, _ := setupLog(t)
	chatLog.Append(RoleUser, "one")
	chatLog.Append(RoleAssistant, "two")
	chatLog.Append(RoleUser, "three")

	history, err := chatLog.History()

	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Message)
	assert.Equal(t, "two", history[1].Message)
	assert.Equal(t, "three", history[2].Message)
}

func TestLog_History_MissingFile(t *testing.T) {
	chatLog, _ := setupLog(t)

	history, err := chatLog.History()

	assert.NoError(t, err)
	assert.Empty(t, history)
}

func TestLog_History_CorruptFile(t *testing.T) {
	chatLog, path := setupLog(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := chatLog.History()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse conversation log")
}

func TestLog_Tail(t *testing.T) {
	chatLog, _ := setupLog(t)
	chatLog.Append(RoleUser, "one")
	chatLog.Append(RoleAssistant, "two")
	chatLog.Append(RoleUser, "three")

	tail, err := chatLog.Tail(2)

	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "two", tail[0].Message)
	assert.Equal(t, "three", tail[1].Message)
}

func TestLog_Tail_MoreThanAvailable(t *testing.T) {
	chatLog, _ := setupLog(t)
	chatLog.Append(RoleUser, "only")

	tail, err := chatLog.Tail(10)

	require.NoError(t, err)
	assert.Len(t, tail, 1)
}

func TestLog_PersistsAcrossInstances(t *testing.T) {
	chatLog, path := setupLog(t)
	_, err := chatLog.Append(RoleUser, "hello")
	require.NoError(t, err)

	reopened := NewLog(path)
	history, err := reopened.History()

	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "hello", history[0].Message)
}
