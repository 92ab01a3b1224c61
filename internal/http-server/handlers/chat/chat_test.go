package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
	"DriveLine/internal/lib/api/response"
)

type fakeCore struct {
	chats    []entity.ChatSummary
	turns    []entity.ChatTurn
	listErr  error
	seenUser string
}

func (f *fakeCore) ActiveChats() ([]entity.ChatSummary, error) {
	return f.chats, f.listErr
}

func (f *fakeCore) ChatHistory(userID string, _ int) ([]entity.ChatTurn, error) {
	f.seenUser = userID
	return f.turns, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestList_ReturnsActiveChats(t *testing.T) {
	core := &fakeCore{chats: []entity.ChatSummary{
		{UserID: "u2", LastMessage: "newer", LastTime: time.Now()},
		{UserID: "u1", LastMessage: "older", LastTime: time.Now().Add(-time.Hour)},
	}}

	rec := httptest.NewRecorder()
	List(testLogger(), core)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil))

	var resp struct {
		Status string               `json:"status"`
		Data   []entity.ChatSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "u2", resp.Data[0].UserID)
	assert.Equal(t, "newer", resp.Data[0].LastMessage)
}

func TestList_StoreFailure(t *testing.T) {
	core := &fakeCore{listErr: errors.New("mongo down")}

	rec := httptest.NewRecorder()
	List(testLogger(), core)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chats", nil))

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusError, resp.Status)
}

func TestHistory_UsesUrlParam(t *testing.T) {
	core := &fakeCore{turns: []entity.ChatTurn{
		{UserID: "u1", Role: entity.RoleUser, Content: "hi"},
	}}

	router := chi.NewRouter()
	router.Get("/chats/{userID}", History(testLogger(), core))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chats/u1", nil))

	assert.Equal(t, "u1", core.seenUser)

	var resp struct {
		Status string            `json:"status"`
		Data   []entity.ChatTurn `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, response.StatusOK, resp.Status)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "hi", resp.Data[0].Content)
}
