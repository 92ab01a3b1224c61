package ws

import (
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func TestHub_BroadcastReachesClients(t *testing.T) {
	h := testHub()
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- client

	h.BroadcastTurn(entity.ChatTurn{UserID: "u1", Role: entity.RoleUser, Content: "hi"})

	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "new_turn", event.Type)
	case <-time.After(time.Second):
		t.Fatal("client never received the broadcast")
	}
}

func TestHub_TypingEvent(t *testing.T) {
	h := testHub()
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 4)}
	h.register <- client

	h.BroadcastTyping("u1")

	select {
	case data := <-client.send:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "typing", event.Type)
		payload, ok := event.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "u1", payload["user_id"])
	case <-time.After(time.Second):
		t.Fatal("client never received the typing event")
	}
}

func TestHub_SlowClientDropped(t *testing.T) {
	h := testHub()
	go h.Run()

	slow := &Client{hub: h, send: make(chan []byte)} // unbuffered, never drained
	h.register <- slow

	require.Eventually(t, func() bool { return h.clientCount() == 1 },
		time.Second, 10*time.Millisecond)

	h.BroadcastTurn(entity.ChatTurn{UserID: "u1", Role: entity.RoleUser, Content: "hi"})

	require.Eventually(t, func() bool { return h.clientCount() == 0 },
		time.Second, 10*time.Millisecond, "saturated client must be dropped")

	_, open := <-slow.send
	assert.False(t, open, "dropped client's send channel is closed")
}
