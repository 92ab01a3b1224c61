package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
	"DriveLine/internal/config"
)

type captureCore struct {
	mu     sync.Mutex
	events []entity.InboundEvent
	done   chan struct{}
}

func (c *captureCore) HandleBatch(_ context.Context, events []entity.InboundEvent) {
	c.mu.Lock()
	c.events = events
	c.mu.Unlock()
	close(c.done)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func testConf(appSecret string) *config.Config {
	conf := &config.Config{}
	conf.Facebook.VerifyToken = "verify-me"
	conf.Facebook.AppSecret = appSecret
	return conf
}

const pagePayload = `{
	"object": "page",
	"entry": [{
		"id": "page-1",
		"time": 1,
		"messaging": [
			{
				"sender": {"id": "u1"},
				"recipient": {"id": "page-1"},
				"message": {"mid": "m1", "text": "hello"}
			},
			{
				"sender": {"id": "u2"},
				"recipient": {"id": "page-1"},
				"postback": {"title": "View Specs", "payload": "DETAILS_car_xpander_gls"}
			},
			{
				"sender": {"id": "page-1"},
				"recipient": {"id": "u3"},
				"message": {"mid": "m2", "text": "typed by an agent", "is_echo": true}
			}
		]
	}]
}`

func TestVerify_Handshake(t *testing.T) {
	h := Verify(testLogger(), testConf(""))

	r := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, "12345", string(body))
}

func TestVerify_WrongToken(t *testing.T) {
	h := Verify(testLogger(), testConf(""))

	r := httptest.NewRequest(http.MethodGet,
		"/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceive_AcksAndDispatches(t *testing.T) {
	core := &captureCore{done: make(chan struct{})}
	h := Receive(testLogger(), testConf(""), core)

	r := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(pagePayload))
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, "EVENT_RECEIVED", string(body))

	select {
	case <-core.done:
	case <-time.After(time.Second):
		t.Fatal("events never dispatched")
	}

	core.mu.Lock()
	defer core.mu.Unlock()
	require.Len(t, core.events, 3)

	assert.Equal(t, entity.TextMessage, core.events[0].Kind)
	assert.Equal(t, "u1", core.events[0].SenderId)
	assert.Equal(t, "hello", core.events[0].Text)

	assert.Equal(t, entity.Postback, core.events[1].Kind)
	assert.Equal(t, "DETAILS_car_xpander_gls", core.events[1].Payload)

	assert.Equal(t, entity.EchoOfOutbound, core.events[2].Kind)
	assert.Equal(t, "u3", core.events[2].RecipientId)
}

func TestReceive_SignatureRequired(t *testing.T) {
	core := &captureCore{done: make(chan struct{})}
	h := Receive(testLogger(), testConf("s3cret"), core)

	r := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(pagePayload))
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReceive_ValidSignature(t *testing.T) {
	core := &captureCore{done: make(chan struct{})}
	h := Receive(testLogger(), testConf("s3cret"), core)

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write([]byte(pagePayload))
	sig := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	r := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader([]byte(pagePayload)))
	r.Header.Set("X-Hub-Signature-256", sig)
	w := httptest.NewRecorder()
	h(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	select {
	case <-core.done:
	case <-time.After(time.Second):
		t.Fatal("events never dispatched")
	}
}

func TestParseEvents_IgnoresNonPageObjects(t *testing.T) {
	var payload Payload
	require.NoError(t, json.Unmarshal([]byte(`{"object":"instagram","entry":[]}`), &payload))
	assert.Empty(t, ParseEvents(payload))
}

func TestParseEvents_SkipsEmptyMessaging(t *testing.T) {
	var payload Payload
	require.NoError(t, json.Unmarshal([]byte(`{
		"object": "page",
		"entry": [{"messaging": [{"sender": {"id": "u1"}, "recipient": {"id": "p1"}}]}]
	}`), &payload))
	assert.Empty(t, ParseEvents(payload))
}
