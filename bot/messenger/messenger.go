package messenger

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const graphAPIURL = "https://graph.facebook.com/v22.0/me/messages"

// Client sends messages through the Messenger Send API. Every outbound
// text carries the configured metadata tag so the webhook can tell the
// bot's own echoes apart from a human operator's.
type Client struct {
	accessToken string
	metadataTag string
	httpClient  *http.Client
	log         *slog.Logger
}

func NewClient(conf *config.Config, logger *slog.Logger) *Client {
	return &Client{
		accessToken: conf.Facebook.PageAccessToken,
		metadataTag: conf.Facebook.MetadataTag,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         logger.With(sl.Module("messenger")),
	}
}

type recipient struct {
	ID string `json:"id"`
}

type quickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	Payload     string `json:"payload"`
}

type cardButton struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Payload string `json:"payload"`
}

type cardElement struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	ImageURL string       `json:"image_url,omitempty"`
	Buttons  []cardButton `json:"buttons,omitempty"`
}

type sendRequest struct {
	MessagingType string      `json:"messaging_type,omitempty"`
	Recipient     recipient   `json:"recipient"`
	Message       interface{} `json:"message,omitempty"`
	SenderAction  string      `json:"sender_action,omitempty"`
}

// SendText sends a plain text message tagged with the bot metadata.
func (c *Client) SendText(userID, text string) error {
	return c.post(userID, sendRequest{
		MessagingType: "RESPONSE",
		Recipient:     recipient{ID: userID},
		Message: map[string]interface{}{
			"text":     text,
			"metadata": c.metadataTag,
		},
	})
}

// SendQuickReplies sends text with tappable reply options.
func (c *Client) SendQuickReplies(userID, text string, replies []entity.QuickReply) error {
	qrs := make([]quickReply, 0, len(replies))
	for _, r := range replies {
		qrs = append(qrs, quickReply{ContentType: "text", Title: r.Title, Payload: r.Payload})
	}
	return c.post(userID, sendRequest{
		MessagingType: "RESPONSE",
		Recipient:     recipient{ID: userID},
		Message: map[string]interface{}{
			"text":          text,
			"quick_replies": qrs,
		},
	})
}

// SendCarousel sends a generic-template carousel. Messenger caps the
// template at 10 elements; extra cards are dropped.
func (c *Client) SendCarousel(userID string, cards []entity.Card) error {
	if len(cards) > 10 {
		cards = cards[:10]
	}
	elements := make([]cardElement, 0, len(cards))
	for _, card := range cards {
		el := cardElement{
			Title:    card.Title,
			Subtitle: card.Subtitle,
			ImageURL: card.ImageUrl,
		}
		for _, b := range card.Buttons {
			el.Buttons = append(el.Buttons, cardButton{Type: "postback", Title: b.Title, Payload: b.Payload})
		}
		elements = append(elements, el)
	}
	return c.post(userID, sendRequest{
		MessagingType: "RESPONSE",
		Recipient:     recipient{ID: userID},
		Message: map[string]interface{}{
			"attachment": map[string]interface{}{
				"type": "template",
				"payload": map[string]interface{}{
					"template_type": "generic",
					"elements":      elements,
				},
			},
		},
	})
}

// SendTyping toggles the typing indicator. Failures are ignored.
func (c *Client) SendTyping(userID string) error {
	_ = c.post(userID, sendRequest{
		Recipient:    recipient{ID: userID},
		SenderAction: "typing_on",
	})
	return nil
}

func (c *Client) post(userID string, body sendRequest) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	url := fmt.Sprintf("%s?access_token=%s", graphAPIURL, c.accessToken)
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewBuffer(jsonBody))
	if err != nil {
		c.log.With(
			slog.String("recipient", userID),
			sl.Err(err),
		).Error("send request")
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.log.With(
			slog.String("recipient", userID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(respBody)),
		).Error("send API error")
		return fmt.Errorf("send API error (status %d)", resp.StatusCode)
	}

	c.log.With(slog.String("recipient", userID)).Debug("message sent")
	return nil
}
