package core

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
)

func call(name, args string) entity.ToolCall {
	return entity.ToolCall{ID: "c1", Name: name, Arguments: json.RawMessage(args)}
}

func TestExecuteTool_GetCarSpecs(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("get_car_specs", `{"car_model_id":"car_mirage_g4"}`))

	assert.Equal(t, "Displayed specs for Mitsubishi Mirage G4 GLS.", result)
	require.Len(t, h.channel.texts, 1)
	assert.Contains(t, h.channel.texts[0], "CVT")
}

func TestExecuteTool_InvalidCarID(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("get_car_specs", `{"car_model_id":"car_nope"}`))

	assert.Equal(t, "Error: Invalid car model ID.", result)
	assert.Empty(t, h.channel.texts)
}

func TestExecuteTool_CalculateQuotation(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("calculate_quotation", `{"car_model_id":"car_xpander_gls","downpayment_percent":0.2,"loan_years":5}`))

	assert.Equal(t, "Sent quotation for Mitsubishi Xpander GLS with 20% DP for 5 years.", result)
	require.Len(t, h.channel.texts, 1)
}

func TestExecuteTool_CheckAvailability(t *testing.T) {
	h := newHarness(t)
	slot := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	h.booking.slots = []time.Time{slot, slot.Add(time.Hour)}

	result := h.core.executeTool(context.Background(), "u1",
		call("check_test_drive_availability", `{"date":"2026-09-15"}`))

	assert.Contains(t, result, "Available slots:")
	assert.Contains(t, result, "2026-09-15T10:00:00Z")
	assert.Contains(t, result, "2026-09-15T11:00:00Z")
}

func TestExecuteTool_NoAvailability(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("check_test_drive_availability", `{"date":"2026-09-15"}`))

	assert.Equal(t, "No available slots for this date.", result)
}

func TestExecuteTool_BookTestDrive(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("book_test_drive", `{
			"car_model_id": "car_xpander_gls",
			"datetime": "2026-09-15T10:00:00Z",
			"customer_name": "Maria Santos",
			"customer_phone": "+639171234567"
		}`))

	assert.Equal(t, "Successfully booked test drive. Reference ID: APT-20260901-001", result)

	require.NotNil(t, h.booking.appt)
	assert.Equal(t, "u1", h.booking.appt.Customer.FacebookUserId)
	assert.Equal(t, "Mitsubishi Xpander GLS", h.booking.appt.CarModel.Name)

	// Confirmation rendered to the user directly.
	require.Len(t, h.channel.texts, 1)
	assert.Contains(t, h.channel.texts[0], "Test Drive Confirmed")
	assert.Contains(t, h.channel.texts[0], "APT-20260901-001")
}

func TestExecuteTool_BadDatetime(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("book_test_drive", `{"car_model_id":"car_xpander_gls","datetime":"next tuesday","customer_name":"A","customer_phone":"1"}`))

	assert.Equal(t, "Error: datetime must be in RFC3339 format.", result)
}

func TestExecuteTool_SendQuickReplies(t *testing.T) {
	h := newHarness(t)

	result := h.core.executeTool(context.Background(), "u1",
		call("send_quick_replies", `{"text":"Pick a fuel type","replies":[{"title":"Gas","payload":"FUEL_GAS"},{"title":"Diesel","payload":"FUEL_DIESEL"}]}`))

	assert.Equal(t, "Quick replies sent to user.", result)
	require.Len(t, h.channel.quick, 1)
	assert.Equal(t, "Pick a fuel type", h.channel.quick[0])
}

func TestToolSpecs_CoverRegistry(t *testing.T) {
	h := newHarness(t)

	specs := h.core.ToolSpecs()
	names := make(map[string]bool, len(specs))
	for _, s := range specs {
		names[s.Name] = true
	}

	for _, want := range []string{
		"get_car_specs",
		"calculate_quotation",
		"show_car_gallery",
		"check_test_drive_availability",
		"book_test_drive",
		"cancel_appointment",
		"reschedule_appointment",
		"send_quick_replies",
	} {
		assert.True(t, names[want], "missing tool %s", want)
	}
}
