package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
)

type Core interface {
	HandleBatch(ctx context.Context, events []entity.InboundEvent)
}

// Payload is the Messenger page webhook body.
type Payload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID        string `json:"id"`
		Time      int64  `json:"time"`
		Messaging []struct {
			Sender struct {
				ID string `json:"id"`
			} `json:"sender"`
			Recipient struct {
				ID string `json:"id"`
			} `json:"recipient"`
			Timestamp int64 `json:"timestamp"`
			Message   *struct {
				Mid      string `json:"mid"`
				Text     string `json:"text"`
				IsEcho   bool   `json:"is_echo,omitempty"`
				Metadata string `json:"metadata,omitempty"`
			} `json:"message,omitempty"`
			Postback *struct {
				Title   string `json:"title"`
				Payload string `json:"payload"`
			} `json:"postback,omitempty"`
		} `json:"messaging"`
	} `json:"entry"`
}

// Verify handles the GET subscription handshake.
func Verify(log *slog.Logger, conf *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.webhook"))

		mode := r.URL.Query().Get("hub.mode")
		token := r.URL.Query().Get("hub.verify_token")
		challenge := r.URL.Query().Get("hub.challenge")

		if mode == "subscribe" && token == conf.Facebook.VerifyToken {
			logger.Info("webhook verified")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(challenge))
			return
		}

		logger.Warn("webhook verification failed",
			slog.String("mode", mode),
			slog.Bool("token_match", token == conf.Facebook.VerifyToken),
		)
		http.Error(w, "Forbidden", http.StatusForbidden)
	}
}

// Receive handles incoming POST notifications. The platform gets its 200
// immediately; events are processed in the background.
func Receive(log *slog.Logger, conf *config.Config, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.webhook"))

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("failed to read request body", sl.Err(err))
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if conf.Facebook.AppSecret != "" {
			signature := r.Header.Get("X-Hub-Signature-256")
			if !verifySignature(body, signature, conf.Facebook.AppSecret) {
				logger.Warn("invalid webhook signature")
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
		}

		var payload Payload
		if err := json.Unmarshal(body, &payload); err != nil {
			logger.Error("failed to parse webhook payload", sl.Err(err))
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("EVENT_RECEIVED"))

		events := ParseEvents(payload)
		if len(events) == 0 {
			return
		}

		go handler.HandleBatch(context.Background(), events)
	}
}

// ParseEvents normalizes a page payload into inbound events, dropping
// entries with no message or postback.
func ParseEvents(payload Payload) []entity.InboundEvent {
	if payload.Object != "page" {
		return nil
	}

	var events []entity.InboundEvent
	for _, entry := range payload.Entry {
		for _, messaging := range entry.Messaging {
			event := entity.InboundEvent{
				SenderId:    messaging.Sender.ID,
				RecipientId: messaging.Recipient.ID,
			}

			switch {
			case messaging.Postback != nil:
				event.Kind = entity.Postback
				event.Payload = messaging.Postback.Payload

			case messaging.Message != nil && messaging.Message.IsEcho:
				event.Kind = entity.EchoOfOutbound
				event.Metadata = messaging.Message.Metadata
				event.Mid = messaging.Message.Mid

			case messaging.Message != nil:
				event.Kind = entity.TextMessage
				event.Text = messaging.Message.Text
				event.Mid = messaging.Message.Mid

			default:
				continue
			}

			events = append(events, event)
		}
	}
	return events
}

func verifySignature(body []byte, signature, appSecret string) bool {
	if len(signature) < 8 || signature[:7] != "sha256=" {
		return false
	}

	expectedSig := signature[7:]
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	actualSig := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expectedSig), []byte(actualSig))
}
