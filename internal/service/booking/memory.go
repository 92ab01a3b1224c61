package booking

import (
	"DriveLine/entity"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps appointments in process memory, for running without
// Mongo. It satisfies Repository.
type MemoryStore struct {
	mu    sync.RWMutex
	appts map[string]entity.Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		appts: make(map[string]entity.Appointment),
	}
}

func (m *MemoryStore) InsertAppointment(appt entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.appts[appt.ID]; exists {
		return fmt.Errorf("appointment %s already exists", appt.ID)
	}
	m.appts[appt.ID] = appt
	return nil
}

func (m *MemoryStore) GetAppointment(id string) (*entity.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if appt, ok := m.appts[id]; ok {
		return &appt, nil
	}
	return nil, nil
}

func (m *MemoryStore) UpdateAppointmentStatus(id string, status entity.AppointmentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	appt, ok := m.appts[id]
	if !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	appt.Status = status
	m.appts[id] = appt
	return nil
}

func (m *MemoryStore) UpdateAppointmentTime(id string, dateTime time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	appt, ok := m.appts[id]
	if !ok {
		return fmt.Errorf("appointment %s not found", id)
	}
	appt.DateTime = dateTime
	m.appts[id] = appt
	return nil
}

func (m *MemoryStore) GetAppointmentsBetween(from, to time.Time) ([]entity.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.Appointment
	for _, appt := range m.appts {
		if appt.Status != entity.StatusConfirmed {
			continue
		}
		if appt.DateTime.Before(from) || !appt.DateTime.Before(to) {
			continue
		}
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateTime.Before(out[j].DateTime)
	})
	return out, nil
}

func (m *MemoryStore) ListAppointments() ([]entity.Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Appointment, 0, len(m.appts))
	for _, appt := range m.appts {
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DateTime.After(out[j].DateTime)
	})
	return out, nil
}

func (m *MemoryStore) CountAppointmentsOn(datePrefix string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64
	for id := range m.appts {
		if strings.HasPrefix(id, datePrefix) {
			count++
		}
	}
	return count, nil
}
