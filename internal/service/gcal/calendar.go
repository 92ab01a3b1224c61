package gcal

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Service mirrors test drive appointments into a Google Calendar.
type Service struct {
	calendar   *calendar.Service
	calendarID string
	slotLen    time.Duration
	log        *slog.Logger
}

func NewService(ctx context.Context, conf *config.Config, logger *slog.Logger) (*Service, error) {
	if !conf.Google.Enabled {
		return nil, nil
	}

	httpClient, err := ServiceAccountClient(ctx, conf.Google.CredentialsPath, calendar.CalendarEventsScope)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating calendar client: %w", err)
	}

	return &Service{
		calendar:   svc,
		calendarID: conf.Google.CalendarId,
		slotLen:    time.Duration(conf.Dealership.SlotMinutes) * time.Minute,
		log:        logger.With(sl.Module("gcal")),
	}, nil
}

func (s *Service) CreateEvent(ctx context.Context, appt entity.Appointment) (string, error) {
	event := &calendar.Event{
		Summary:     fmt.Sprintf("Test Drive: %s (%s)", appt.CarModel.Name, appt.ID),
		Description: fmt.Sprintf("Customer: %s\nPhone: %s\nEmail: %s", appt.Customer.Name, appt.Customer.Phone, appt.Customer.Email),
		Start: &calendar.EventDateTime{
			DateTime: appt.DateTime.Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: appt.DateTime.Add(s.slotLen).Format(time.RFC3339),
		},
	}

	created, err := s.calendar.Events.Insert(s.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("inserting calendar event: %w", err)
	}

	s.log.With(
		slog.String("appointment", appt.ID),
		slog.String("event", created.Id),
	).Debug("calendar event created")

	return created.Id, nil
}

func (s *Service) DeleteEvent(ctx context.Context, eventID string) error {
	err := s.calendar.Events.Delete(s.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("deleting calendar event: %w", err)
	}
	return nil
}
