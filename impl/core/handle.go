package core

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/sl"
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
)

// TransferSentinel is the reserved token the model emits to request human
// handoff. Matched by substring so surrounding whitespace or emoji still
// trigger it; the raw token is never delivered to the user.
const TransferSentinel = "TRANSFER_AGENT"

const (
	handoffNotice    = "✅ Handing you over to our sales agent. Please wait, they will reply shortly."
	apologyReply     = "Sorry, I encountered an error. Please try again in a moment."
	providerFallback = "I'm having trouble connecting to my brain right now. Please try again later."
)

var errUnauthorized = errors.New("unauthorized")

// HandleBatch processes one webhook delivery's events sequentially. A
// failure in one event never aborts its siblings: the failed sender gets
// a best-effort apology and the loop moves on.
func (c *Core) HandleBatch(ctx context.Context, events []entity.InboundEvent) {
	for _, event := range events {
		c.handleSafe(ctx, event)
	}
}

func (c *Core) handleSafe(ctx context.Context, event entity.InboundEvent) {
	defer func() {
		if r := recover(); r != nil {
			c.log.With(
				slog.String("sender", event.SenderId),
				slog.Any("panic", r),
			).Error("event handling panicked")
			if event.SenderId != "" {
				_ = c.channel.SendText(event.SenderId, apologyReply)
			}
		}
	}()

	if err := c.handleEvent(ctx, event); err != nil {
		c.log.With(
			slog.String("sender", event.SenderId),
			sl.Err(err),
		).Error("event handling")
		if event.SenderId != "" {
			_ = c.channel.SendText(event.SenderId, apologyReply)
		}
	}
}

func (c *Core) handleEvent(ctx context.Context, event entity.InboundEvent) error {
	switch event.Kind {
	case entity.EchoOfOutbound:
		c.handleEcho(event)
		return nil
	case entity.Postback:
		if event.SenderId == "" {
			return errors.New("postback without sender id")
		}
		return c.handlePostback(ctx, event.SenderId, event.Payload)
	case entity.TextMessage:
		if event.SenderId == "" {
			return errors.New("text message without sender id")
		}
		if event.Text == "" {
			return nil
		}
		return c.handleText(ctx, event.SenderId, event.Text)
	default:
		c.log.With(slog.Int("kind", int(event.Kind))).Debug("ignoring event")
		return nil
	}
}

// handleEcho pauses the assistant when a human operator replied from the
// page inbox: an echoed outbound message whose metadata tag is not our
// own means someone else is talking to this user.
func (c *Core) handleEcho(event entity.InboundEvent) {
	if event.Metadata == c.metadataTag {
		return
	}
	if event.RecipientId == "" {
		return
	}
	c.log.With(
		slog.String("recipient", event.RecipientId),
		slog.Duration("pause", c.humanPause),
	).Info("human operator reply detected, pausing assistant")
	c.pause.Pause(event.RecipientId, c.humanPause)
}

func (c *Core) handleText(ctx context.Context, senderID, text string) error {
	if c.pause.IsPaused(senderID) {
		c.log.With(slog.String("sender", senderID)).Debug("user paused, yielding to human")
		return nil
	}

	_ = c.channel.SendTyping(senderID)
	if c.feed != nil {
		c.feed.BroadcastTyping(senderID)
	}

	entries := c.historyEntries(senderID)

	answer, err := c.ass.Complete(ctx, text, entries)
	if err != nil {
		c.log.With(
			slog.String("sender", senderID),
			sl.Err(err),
		).Error("completion")
		_ = c.channel.SendText(senderID, providerFallback)
		return nil
	}

	// Tool-calling loop: strictly sequential, results appended in call
	// order so the history stays replayable. Bounded so a model that
	// keeps requesting tools cannot spin forever.
	for round := 0; len(answer.ToolCalls) > 0; round++ {
		if round >= c.maxToolRounds {
			c.log.With(
				slog.String("sender", senderID),
				slog.Int("rounds", round),
			).Warn("tool round limit reached")
			answer.ToolCalls = nil
			break
		}

		results := make([]entity.ChatEntry, 0, len(answer.ToolCalls))
		for _, call := range answer.ToolCalls {
			result := c.executeTool(ctx, senderID, call)
			results = append(results, entity.ToolResultEntry(call, result))
		}

		entries = append(entries, entity.AssistantEntry(answer.Content, answer.ToolCalls))
		entries = append(entries, results...)

		answer, err = c.ass.Complete(ctx, text, entries)
		if err != nil {
			c.log.With(
				slog.String("sender", senderID),
				sl.Err(err),
			).Error("completion after tools")
			_ = c.channel.SendText(senderID, providerFallback)
			return nil
		}
	}

	reply := answer.Content

	if reply != "" && strings.Contains(reply, TransferSentinel) {
		c.pause.Pause(senderID, c.handoffPause)
		_ = c.channel.SendText(senderID, handoffNotice)
		c.persistBestEffort(senderID, entity.RoleUser, text)
		c.persistBestEffort(senderID, entity.RoleAssistant, handoffNotice)
		if c.notifier != nil {
			c.notifier.Notify("Customer " + senderID + " asked for a human agent.")
		}
		return nil
	}

	if reply != "" {
		_ = c.channel.SendText(senderID, reply)
		c.persistBestEffort(senderID, entity.RoleUser, text)
		c.persistBestEffort(senderID, entity.RoleAssistant, reply)
		return nil
	}

	// No content and no tool calls is a valid terminal state.
	c.log.With(slog.String("sender", senderID)).Debug("empty completion, nothing to send")
	return nil
}

// historyEntries fetches the recent turn window. A store failure means
// answering without memory, not failing the event.
func (c *Core) historyEntries(senderID string) []entity.ChatEntry {
	turns, err := c.history.GetRecent(senderID, c.historyLimit)
	if err != nil {
		c.log.With(
			slog.String("sender", senderID),
			sl.Err(err),
		).Warn("fetching history, continuing without it")
		return nil
	}
	entries := make([]entity.ChatEntry, 0, len(turns))
	for _, turn := range turns {
		entries = append(entries, entity.ChatEntry{Role: turn.Role, Content: turn.Content})
	}
	return entries
}

// persistBestEffort saves a turn off the critical path. Delivery never
// waits on storage; a save failure costs memory, not the reply.
func (c *Core) persistBestEffort(userID, role, content string) {
	turn := entity.ChatTurn{
		UserID:    userID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if c.feed != nil {
		c.feed.BroadcastTurn(turn)
	}
	go func() {
		if err := c.history.SaveTurn(userID, role, content); err != nil {
			c.log.With(
				slog.String("user", userID),
				slog.String("role", role),
				sl.Err(err),
			).Warn("saving turn")
		}
	}()
}
