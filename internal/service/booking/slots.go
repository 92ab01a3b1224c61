package booking

import (
	"DriveLine/entity"
	"context"
	"fmt"
	"time"
)

// CheckAvailability returns the free slot starts for one showroom day.
// Past slots on the current day are excluded.
func (s *Service) CheckAvailability(_ context.Context, date time.Time) ([]time.Time, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.location)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := s.repository.GetAppointmentsBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("loading day schedule: %w", err)
	}

	slotLen := time.Duration(s.slotMinutes) * time.Minute
	now := time.Now().In(s.location)

	var free []time.Time
	for hour := s.openHour; hour < s.closeHour; hour++ {
		slotStart := dayStart.Add(time.Duration(hour) * time.Hour)
		slotEnd := slotStart.Add(slotLen)

		if slotStart.Before(now) {
			continue
		}
		if s.slotTaken(slotStart, slotEnd, booked) {
			continue
		}
		free = append(free, slotStart)
	}

	return free, nil
}

// slotTaken reports an overlap with any confirmed appointment. Touching
// boundaries do not overlap: a slot ending exactly when another begins is
// free.
func (s *Service) slotTaken(slotStart, slotEnd time.Time, booked []entity.Appointment) bool {
	slotLen := time.Duration(s.slotMinutes) * time.Minute
	for _, appt := range booked {
		eventStart := appt.DateTime.In(s.location)
		eventEnd := eventStart.Add(slotLen)
		if slotStart.Before(eventEnd) && slotEnd.After(eventStart) {
			return true
		}
	}
	return false
}

// checkSlotFree validates a booking target: inside opening hours, on the
// hour grid, not in the past, and not already taken.
func (s *Service) checkSlotFree(at time.Time) error {
	if at.Before(time.Now().In(s.location)) {
		return fmt.Errorf("slot %s is in the past", at.Format(time.RFC3339))
	}
	if at.Hour() < s.openHour || at.Hour() >= s.closeHour {
		return fmt.Errorf("slot %s is outside showroom hours (%02d:00-%02d:00)",
			at.Format("15:04"), s.openHour, s.closeHour)
	}
	if at.Minute() != 0 || at.Second() != 0 {
		return fmt.Errorf("slots start on the hour")
	}

	dayStart := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, s.location)
	booked, err := s.repository.GetAppointmentsBetween(dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("loading day schedule: %w", err)
	}

	slotLen := time.Duration(s.slotMinutes) * time.Minute
	if s.slotTaken(at, at.Add(slotLen), booked) {
		return fmt.Errorf("slot %s is already booked", at.Format(time.RFC3339))
	}

	return nil
}
