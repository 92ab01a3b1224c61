package booking

import (
	"DriveLine/entity"
	"DriveLine/internal/config"
	"DriveLine/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"time"
)

type Repository interface {
	InsertAppointment(appt entity.Appointment) error
	GetAppointment(id string) (*entity.Appointment, error)
	UpdateAppointmentStatus(id string, status entity.AppointmentStatus) error
	UpdateAppointmentTime(id string, dateTime time.Time) error
	GetAppointmentsBetween(from, to time.Time) ([]entity.Appointment, error)
	ListAppointments() ([]entity.Appointment, error)
	CountAppointmentsOn(datePrefix string) (int64, error)
}

// Calendar mirrors appointments into an external calendar. Mirror
// failures never fail the booking.
type Calendar interface {
	CreateEvent(ctx context.Context, appt entity.Appointment) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Ledger appends booked appointments to an external spreadsheet.
type Ledger interface {
	AppendAppointment(ctx context.Context, appt entity.Appointment) error
}

type Notifier interface {
	Notify(text string)
}

const maxIDRetries = 5

// Service owns the test drive schedule.
type Service struct {
	repository Repository
	calendar   Calendar
	ledger     Ledger
	notifier   Notifier

	location    *time.Location
	openHour    int
	closeHour   int
	slotMinutes int

	log *slog.Logger
}

func NewService(conf *config.Config, logger *slog.Logger) *Service {
	location, err := time.LoadLocation(conf.Dealership.Timezone)
	if err != nil {
		logger.With(sl.Err(err)).Warn("unknown dealership timezone, using local")
		location = time.Local
	}
	return &Service{
		location:    location,
		openHour:    conf.Dealership.OpenHour,
		closeHour:   conf.Dealership.CloseHour,
		slotMinutes: conf.Dealership.SlotMinutes,
		log:         logger.With(sl.Module("booking-service")),
	}
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
}

func (s *Service) SetCalendar(calendar Calendar) {
	s.calendar = calendar
}

func (s *Service) SetLedger(ledger Ledger) {
	s.ledger = ledger
}

func (s *Service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Book persists a new confirmed appointment and mirrors it out. The
// reference ID is retried on collision since concurrent bookings can race
// for the same sequence number.
func (s *Service) Book(ctx context.Context, customer entity.CustomerInfo, car entity.CarModel, at time.Time) (*entity.Appointment, error) {
	at = at.In(s.location)

	if err := s.checkSlotFree(at); err != nil {
		return nil, err
	}

	appt := entity.Appointment{
		CarModel:  car,
		DateTime:  at,
		Customer:  customer,
		Status:    entity.StatusConfirmed,
		CreatedAt: time.Now(),
	}

	var lastErr error
	for attempt := 0; attempt < maxIDRetries; attempt++ {
		id, err := s.nextReferenceID(at, attempt)
		if err != nil {
			return nil, err
		}
		appt.ID = id

		if err = s.repository.InsertAppointment(appt); err != nil {
			lastErr = err
			continue
		}
		lastErr = nil
		break
	}
	if lastErr != nil {
		return nil, fmt.Errorf("inserting appointment: %w", lastErr)
	}

	s.mirrorOut(ctx, &appt)

	if s.notifier != nil {
		s.notifier.Notify(fmt.Sprintf("📅 New test drive: %s\n%s — %s\n%s (%s)",
			appt.ID, appt.CarModel.Name,
			appt.DateTime.Format("Jan 2 15:04"),
			customer.Name, customer.Phone))
	}

	s.log.With(
		slog.String("id", appt.ID),
		slog.String("car", car.ID),
	).Info("test drive booked")

	return &appt, nil
}

func (s *Service) Cancel(ctx context.Context, id string) error {
	appt, err := s.repository.GetAppointment(id)
	if err != nil {
		return err
	}
	if appt == nil {
		return fmt.Errorf("appointment %s not found", id)
	}
	if appt.Status == entity.StatusCancelled {
		return nil
	}

	if err = s.repository.UpdateAppointmentStatus(id, entity.StatusCancelled); err != nil {
		return err
	}

	if s.calendar != nil && appt.CalendarEventId != "" {
		if err := s.calendar.DeleteEvent(ctx, appt.CalendarEventId); err != nil {
			s.log.With(slog.String("id", id), sl.Err(err)).Warn("removing calendar event")
		}
	}

	s.log.With(slog.String("id", id)).Info("appointment cancelled")
	return nil
}

func (s *Service) Reschedule(ctx context.Context, id string, at time.Time) (*entity.Appointment, error) {
	at = at.In(s.location)

	appt, err := s.repository.GetAppointment(id)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment %s not found", id)
	}
	if appt.Status != entity.StatusConfirmed {
		return nil, fmt.Errorf("appointment %s is %s", id, appt.Status)
	}

	if err = s.checkSlotFree(at); err != nil {
		return nil, err
	}

	if err = s.repository.UpdateAppointmentTime(id, at); err != nil {
		return nil, err
	}
	appt.DateTime = at

	if s.calendar != nil && appt.CalendarEventId != "" {
		if err := s.calendar.DeleteEvent(ctx, appt.CalendarEventId); err != nil {
			s.log.With(slog.String("id", id), sl.Err(err)).Warn("removing old calendar event")
		}
		appt.CalendarEventId = ""
		s.mirrorOut(ctx, appt)
	}

	s.log.With(
		slog.String("id", id),
		slog.Time("at", at),
	).Info("appointment rescheduled")

	return appt, nil
}

func (s *Service) List(_ context.Context) ([]entity.Appointment, error) {
	return s.repository.ListAppointments()
}

func (s *Service) mirrorOut(ctx context.Context, appt *entity.Appointment) {
	if s.calendar != nil {
		eventID, err := s.calendar.CreateEvent(ctx, *appt)
		if err != nil {
			s.log.With(slog.String("id", appt.ID), sl.Err(err)).Warn("mirroring to calendar")
		} else {
			appt.CalendarEventId = eventID
		}
	}

	if s.ledger != nil {
		if err := s.ledger.AppendAppointment(ctx, *appt); err != nil {
			s.log.With(slog.String("id", appt.ID), sl.Err(err)).Warn("mirroring to ledger")
		}
	}
}

// nextReferenceID builds APT-yyyyMMdd-NNN from the day's booking count.
func (s *Service) nextReferenceID(at time.Time, attempt int) (string, error) {
	datePrefix := fmt.Sprintf("APT-%s", at.Format("20060102"))

	count, err := s.repository.CountAppointmentsOn(datePrefix)
	if err != nil {
		return "", fmt.Errorf("counting appointments: %w", err)
	}

	return fmt.Sprintf("%s-%03d", datePrefix, count+1+int64(attempt)), nil
}
