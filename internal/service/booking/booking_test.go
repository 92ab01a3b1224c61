package booking

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
	"DriveLine/internal/config"
)

func testService(t *testing.T) *Service {
	t.Helper()

	conf := &config.Config{}
	conf.Dealership.Timezone = "UTC"
	conf.Dealership.OpenHour = 9
	conf.Dealership.CloseHour = 17
	conf.Dealership.SlotMinutes = 60

	log := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	s := NewService(conf, log)
	s.SetRepository(NewMemoryStore())
	return s
}

func tomorrowAt(hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

func testCar() entity.CarModel {
	return entity.CarModel{ID: "car_mirage_g4", Name: "Mitsubishi Mirage G4 GLS", Price: 934000}
}

func testCustomer() entity.CustomerInfo {
	return entity.CustomerInfo{Name: "Juan Dela Cruz", Phone: "+639170000000", FacebookUserId: "u1"}
}

func TestCheckAvailability_FullDay(t *testing.T) {
	s := testService(t)

	slots, err := s.CheckAvailability(context.Background(), tomorrowAt(0))
	require.NoError(t, err)

	require.Len(t, slots, 8)
	assert.Equal(t, 9, slots[0].Hour())
	assert.Equal(t, 16, slots[len(slots)-1].Hour())
}

func TestBook_RemovesSlot(t *testing.T) {
	s := testService(t)

	appt, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConfirmed, appt.Status)
	assert.Regexp(t, `^APT-\d{8}-\d{3}$`, appt.ID)

	slots, err := s.CheckAvailability(context.Background(), tomorrowAt(0))
	require.NoError(t, err)
	require.Len(t, slots, 7)
	for _, slot := range slots {
		assert.NotEqual(t, 10, slot.Hour())
	}
}

func TestBook_AdjacentSlotsDoNotCollide(t *testing.T) {
	s := testService(t)

	_, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)

	// 9:00-10:00 touches the 10:00 booking but does not overlap it.
	_, err = s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(9))
	assert.NoError(t, err)

	// 11:00-12:00 touches it from the other side.
	_, err = s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(11))
	assert.NoError(t, err)
}

func TestBook_DoubleBookingRejected(t *testing.T) {
	s := testService(t)

	_, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)

	_, err = s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	assert.Error(t, err)
}

func TestBook_OutsideHoursRejected(t *testing.T) {
	s := testService(t)

	_, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(8))
	assert.Error(t, err)

	_, err = s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(17))
	assert.Error(t, err)
}

func TestBook_PastSlotRejected(t *testing.T) {
	s := testService(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	past := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 10, 0, 0, 0, time.UTC)

	_, err := s.Book(context.Background(), testCustomer(), testCar(), past)
	assert.Error(t, err)
}

func TestBook_SequentialReferenceIDs(t *testing.T) {
	s := testService(t)

	first, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(9))
	require.NoError(t, err)
	second, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, strings.HasSuffix(first.ID, "-001"))
	assert.True(t, strings.HasSuffix(second.ID, "-002"))
}

func TestCancel_FreesSlot(t *testing.T) {
	s := testService(t)

	appt, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)

	require.NoError(t, s.Cancel(context.Background(), appt.ID))

	slots, err := s.CheckAvailability(context.Background(), tomorrowAt(0))
	require.NoError(t, err)
	assert.Len(t, slots, 8)

	// Cancelling twice is a no-op.
	assert.NoError(t, s.Cancel(context.Background(), appt.ID))
}

func TestCancel_UnknownID(t *testing.T) {
	s := testService(t)
	assert.Error(t, s.Cancel(context.Background(), "APT-20260101-999"))
}

func TestReschedule_MovesSlot(t *testing.T) {
	s := testService(t)

	appt, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)

	moved, err := s.Reschedule(context.Background(), appt.ID, tomorrowAt(14))
	require.NoError(t, err)
	assert.Equal(t, 14, moved.DateTime.Hour())

	slots, err := s.CheckAvailability(context.Background(), tomorrowAt(0))
	require.NoError(t, err)
	hours := make(map[int]bool)
	for _, slot := range slots {
		hours[slot.Hour()] = true
	}
	assert.True(t, hours[10], "old slot must be free again")
	assert.False(t, hours[14], "new slot must be taken")
}

func TestReschedule_CancelledRejected(t *testing.T) {
	s := testService(t)

	appt, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)
	require.NoError(t, s.Cancel(context.Background(), appt.ID))

	_, err = s.Reschedule(context.Background(), appt.ID, tomorrowAt(11))
	assert.Error(t, err)
}

func TestList_IncludesCancelled(t *testing.T) {
	s := testService(t)

	a, err := s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(10))
	require.NoError(t, err)
	_, err = s.Book(context.Background(), testCustomer(), testCar(), tomorrowAt(11))
	require.NoError(t, err)
	require.NoError(t, s.Cancel(context.Background(), a.ID))

	appts, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, appts, 2)
}
