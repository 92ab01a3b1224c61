package history

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
)

func testService() *Service {
	return NewService(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
}

func TestGetRecent_OldestFirst(t *testing.T) {
	s := testService()

	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "a"))
	require.NoError(t, s.SaveTurn("u1", entity.RoleAssistant, "b"))
	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "c"))

	turns, err := s.GetRecent("u1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "a", turns[0].Content)
	assert.Equal(t, "b", turns[1].Content)
	assert.Equal(t, "c", turns[2].Content)
}

func TestGetRecent_LimitKeepsNewest(t *testing.T) {
	s := testService()

	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "a"))
	require.NoError(t, s.SaveTurn("u1", entity.RoleAssistant, "b"))
	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "c"))

	turns, err := s.GetRecent("u1", 2)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "b", turns[0].Content)
	assert.Equal(t, "c", turns[1].Content)
}

func TestGetRecent_UsersAreIsolated(t *testing.T) {
	s := testService()

	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "mine"))
	require.NoError(t, s.SaveTurn("u2", entity.RoleUser, "theirs"))

	turns, err := s.GetRecent("u1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "mine", turns[0].Content)
}

func TestSaveTurn_MemoryRetentionBounded(t *testing.T) {
	s := testService()

	for i := 0; i < memoryRetention+20; i++ {
		require.NoError(t, s.SaveTurn("u1", entity.RoleUser, fmt.Sprintf("m%d", i)))
	}

	turns, err := s.GetRecent("u1", memoryRetention+20)
	require.NoError(t, err)
	assert.Len(t, turns, memoryRetention)
	assert.Equal(t, "m20", turns[0].Content)
}

func TestActiveChats(t *testing.T) {
	s := testService()

	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "hello"))
	require.NoError(t, s.SaveTurn("u1", entity.RoleAssistant, "hi there"))

	summaries, err := s.ActiveChats()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "u1", summaries[0].UserID)
	assert.Equal(t, "hi there", summaries[0].LastMessage)
}

func TestActiveChats_MostRecentFirst(t *testing.T) {
	s := testService()

	require.NoError(t, s.SaveTurn("u1", entity.RoleUser, "older"))
	require.NoError(t, s.SaveTurn("u2", entity.RoleUser, "newer"))

	summaries, err := s.ActiveChats()
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "u2", summaries[0].UserID)
	assert.Equal(t, "u1", summaries[1].UserID)
}
