package core

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Postback payload prefixes baked into carousel buttons.
const (
	detailsPrefix   = "DETAILS_"
	quotePrefix     = "QUOTE_"
	testDrivePrefix = "TEST_DRIVE_"
	showServices    = "SHOW_SERVICES"
)

// handlePostback dispatches a button click to its fixed action. Only the
// test-drive flow involves the model; everything else is a direct render.
func (c *Core) handlePostback(ctx context.Context, senderID, payload string) error {
	c.log.With(
		slog.String("sender", senderID),
		slog.String("payload", payload),
	).Debug("postback")

	switch {
	case strings.HasPrefix(payload, detailsPrefix):
		carID := strings.TrimPrefix(payload, detailsPrefix)
		car, err := c.catalog.GetCarByID(ctx, carID)
		if err != nil || car == nil {
			c.log.With(slog.String("car", carID)).Warn("details postback for unknown car")
			return nil
		}
		return c.sendCarDetails(senderID, *car)

	case strings.HasPrefix(payload, quotePrefix):
		carID := strings.TrimPrefix(payload, quotePrefix)
		car, err := c.catalog.GetCarByID(ctx, carID)
		if err != nil || car == nil {
			c.log.With(slog.String("car", carID)).Warn("quote postback for unknown car")
			return nil
		}
		return c.sendQuotation(senderID, *car, defaultDpPercent, defaultLoanYears)

	case strings.HasPrefix(payload, testDrivePrefix):
		carID := strings.TrimPrefix(payload, testDrivePrefix)
		car, err := c.catalog.GetCarByID(ctx, carID)
		if err != nil || car == nil {
			c.log.With(slog.String("car", carID)).Warn("test drive postback for unknown car")
			return nil
		}
		return c.startBookingFlow(ctx, senderID, *car)

	case payload == showServices:
		return c.sendGallery(ctx, senderID)

	default:
		c.log.With(slog.String("payload", payload)).Debug("unknown postback payload")
		return nil
	}
}

// startBookingFlow feeds one synthetic system instruction to the model so
// it drives the guided booking conversation from here on.
func (c *Core) startBookingFlow(ctx context.Context, senderID string, car entity.CarModel) error {
	instruction := fmt.Sprintf(
		"User clicked \"Book Test Drive\" for %s. Start the booking process by asking for their preferred date.",
		car.Name,
	)

	entries := c.historyEntries(senderID)
	entries = append(entries, entity.SystemEntry(instruction))

	answer, err := c.ass.Complete(ctx, instruction, entries)
	if err != nil {
		c.log.With(
			slog.String("sender", senderID),
			sl.Err(err),
		).Error("booking flow completion")
		_ = c.channel.SendText(senderID, providerFallback)
		return nil
	}

	if answer.Content != "" {
		_ = c.channel.SendText(senderID, answer.Content)
		c.persistBestEffort(senderID, entity.RoleAssistant, answer.Content)
	}
	return nil
}

func (c *Core) sendGallery(ctx context.Context, senderID string) error {
	cars, err := c.catalog.GetAllCars(ctx)
	if err != nil {
		return fmt.Errorf("loading gallery: %w", err)
	}
	return c.channel.SendCarousel(senderID, galleryCards(cars))
}
