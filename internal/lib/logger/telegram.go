package logger

import (
	"context"
	"fmt"
	"log/slog"
)

// Alerter is anything that can push a plain-text alert to the admin chat.
type Alerter interface {
	SendMessage(text string)
}

type telegramHandler struct {
	next    slog.Handler
	alerter Alerter
	level   slog.Level
}

// SetupTelegramHandler tees records at or above level to the admin
// Telegram chat while passing everything through to the existing handler.
func SetupTelegramHandler(log *slog.Logger, alerter Alerter, level slog.Level) *slog.Logger {
	return slog.New(&telegramHandler{
		next:    log.Handler(),
		alerter: alerter,
		level:   level,
	})
}

func (h *telegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *telegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && r.Level >= slog.LevelWarn && h.alerter != nil {
		text := fmt.Sprintf("[%s] %s", r.Level.String(), r.Message)
		r.Attrs(func(a slog.Attr) bool {
			text += fmt.Sprintf("\n%s: %s", a.Key, a.Value.String())
			return true
		})
		go h.alerter.SendMessage(text)
	}
	return h.next.Handle(ctx, r)
}

func (h *telegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &telegramHandler{next: h.next.WithAttrs(attrs), alerter: h.alerter, level: h.level}
}

func (h *telegramHandler) WithGroup(name string) slog.Handler {
	return &telegramHandler{next: h.next.WithGroup(name), alerter: h.alerter, level: h.level}
}
