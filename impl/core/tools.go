package core

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/sl"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type toolDef struct {
	spec    entity.ToolSpec
	handler func(ctx context.Context, senderID string, args json.RawMessage) (string, error)
}

// ToolSpecs returns the function schemas advertised to the model.
func (c *Core) ToolSpecs() []entity.ToolSpec {
	specs := make([]entity.ToolSpec, 0, len(c.tools))
	for _, t := range c.tools {
		specs = append(specs, t.spec)
	}
	return specs
}

// executeTool runs one requested function call and returns its textual
// result for the model. Domain failures come back as text, not errors, so
// the model can recover in conversation.
func (c *Core) executeTool(ctx context.Context, senderID string, call entity.ToolCall) string {
	tool, ok := c.tools[call.Name]
	if !ok {
		c.log.With(slog.String("tool", call.Name)).Warn("model requested unknown tool")
		return fmt.Sprintf("Error: unknown tool %q.", call.Name)
	}

	result, err := tool.handler(ctx, senderID, call.Arguments)
	if err != nil {
		c.log.With(
			slog.String("tool", call.Name),
			slog.String("sender", senderID),
			sl.Err(err),
		).Error("tool execution")
		return fmt.Sprintf("Error handling command %s: %s", call.Name, err.Error())
	}
	return result
}

func carIDParam() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "The ID of the car model, e.g. car_xpander_gls",
	}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func (c *Core) initTools() {
	c.tools = map[string]toolDef{
		"get_car_specs": {
			spec: entity.ToolSpec{
				Name:        "get_car_specs",
				Description: "Show the full specification sheet for a car model to the user",
				Parameters: objectSchema(map[string]interface{}{
					"car_model_id": carIDParam(),
				}, "car_model_id"),
			},
			handler: c.toolGetCarSpecs,
		},
		"calculate_quotation": {
			spec: entity.ToolSpec{
				Name:        "calculate_quotation",
				Description: "Calculate and send a financing quotation for a car model",
				Parameters: objectSchema(map[string]interface{}{
					"car_model_id": carIDParam(),
					"downpayment_percent": map[string]interface{}{
						"type":        "number",
						"description": "Downpayment as a fraction, e.g. 0.2 for 20%. Defaults to 0.2",
					},
					"loan_years": map[string]interface{}{
						"type":        "integer",
						"description": "Loan term in years. Defaults to 5",
					},
				}, "car_model_id"),
			},
			handler: c.toolCalculateQuotation,
		},
		"show_car_gallery": {
			spec: entity.ToolSpec{
				Name:        "show_car_gallery",
				Description: "Show the carousel of all available car models to the user",
				Parameters:  objectSchema(map[string]interface{}{}),
			},
			handler: c.toolShowGallery,
		},
		"check_test_drive_availability": {
			spec: entity.ToolSpec{
				Name:        "check_test_drive_availability",
				Description: "List the available test drive time slots for a given date",
				Parameters: objectSchema(map[string]interface{}{
					"date": map[string]interface{}{
						"type":        "string",
						"description": "The date to check, in YYYY-MM-DD format",
					},
				}, "date"),
			},
			handler: c.toolCheckAvailability,
		},
		"book_test_drive": {
			spec: entity.ToolSpec{
				Name:        "book_test_drive",
				Description: "Book a test drive appointment once the customer confirmed a slot and shared contact details",
				Parameters: objectSchema(map[string]interface{}{
					"car_model_id": carIDParam(),
					"datetime": map[string]interface{}{
						"type":        "string",
						"description": "The confirmed slot start in RFC3339 format",
					},
					"customer_name": map[string]interface{}{
						"type": "string",
					},
					"customer_phone": map[string]interface{}{
						"type": "string",
					},
					"customer_email": map[string]interface{}{
						"type": "string",
					},
				}, "car_model_id", "datetime", "customer_name", "customer_phone"),
			},
			handler: c.toolBookTestDrive,
		},
		"cancel_appointment": {
			spec: entity.ToolSpec{
				Name:        "cancel_appointment",
				Description: "Cancel an existing test drive appointment by its reference ID",
				Parameters: objectSchema(map[string]interface{}{
					"appointment_id": map[string]interface{}{
						"type":        "string",
						"description": "The reference ID, e.g. APT-20250115-001",
					},
				}, "appointment_id"),
			},
			handler: c.toolCancelAppointment,
		},
		"reschedule_appointment": {
			spec: entity.ToolSpec{
				Name:        "reschedule_appointment",
				Description: "Move an existing appointment to a new confirmed slot",
				Parameters: objectSchema(map[string]interface{}{
					"appointment_id": map[string]interface{}{
						"type": "string",
					},
					"datetime": map[string]interface{}{
						"type":        "string",
						"description": "The new slot start in RFC3339 format",
					},
				}, "appointment_id", "datetime"),
			},
			handler: c.toolRescheduleAppointment,
		},
		"send_quick_replies": {
			spec: entity.ToolSpec{
				Name:        "send_quick_replies",
				Description: "Send the user a short question with tappable answer chips",
				Parameters: objectSchema(map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The question to ask",
					},
					"replies": map[string]interface{}{
						"type":        "array",
						"description": "Up to 13 answer options",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"title":   map[string]interface{}{"type": "string"},
								"payload": map[string]interface{}{"type": "string"},
							},
							"required": []string{"title", "payload"},
						},
					},
				}, "text", "replies"),
			},
			handler: c.toolSendQuickReplies,
		},
	}
}

func (c *Core) toolGetCarSpecs(ctx context.Context, senderID string, args json.RawMessage) (string, error) {
	var p struct {
		CarModelID string `json:"car_model_id"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}

	car, err := c.catalog.GetCarByID(ctx, p.CarModelID)
	if err != nil || car == nil {
		return "Error: Invalid car model ID.", nil
	}

	if err := c.sendCarDetails(senderID, *car); err != nil {
		return "", err
	}
	return fmt.Sprintf("Displayed specs for %s.", car.Name), nil
}

func (c *Core) toolCalculateQuotation(ctx context.Context, senderID string, args json.RawMessage) (string, error) {
	var p struct {
		CarModelID string  `json:"car_model_id"`
		DpPercent  float64 `json:"downpayment_percent"`
		LoanYears  int     `json:"loan_years"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}
	if p.DpPercent <= 0 {
		p.DpPercent = defaultDpPercent
	}
	if p.LoanYears <= 0 {
		p.LoanYears = defaultLoanYears
	}

	car, err := c.catalog.GetCarByID(ctx, p.CarModelID)
	if err != nil || car == nil {
		return "Error: Invalid car model ID.", nil
	}

	if err := c.sendQuotation(senderID, *car, p.DpPercent, p.LoanYears); err != nil {
		return "", err
	}
	return fmt.Sprintf("Sent quotation for %s with %.0f%% DP for %d years.",
		car.Name, p.DpPercent*100, p.LoanYears), nil
}

func (c *Core) toolShowGallery(ctx context.Context, senderID string, _ json.RawMessage) (string, error) {
	if err := c.sendGallery(ctx, senderID); err != nil {
		return "", err
	}
	return "Car gallery displayed to user.", nil
}

func (c *Core) toolCheckAvailability(ctx context.Context, _ string, args json.RawMessage) (string, error) {
	var p struct {
		Date string `json:"date"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}

	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return "Error: date must be in YYYY-MM-DD format.", nil
	}

	slots, err := c.booking.CheckAvailability(ctx, date)
	if err != nil {
		return "", fmt.Errorf("checking availability: %w", err)
	}
	if len(slots) == 0 {
		return "No available slots for this date.", nil
	}

	formatted := make([]string, len(slots))
	for i, s := range slots {
		formatted[i] = s.Format(time.RFC3339)
	}
	return "Available slots: " + strings.Join(formatted, ", "), nil
}

func (c *Core) toolBookTestDrive(ctx context.Context, senderID string, args json.RawMessage) (string, error) {
	var p struct {
		CarModelID    string `json:"car_model_id"`
		DateTime      string `json:"datetime"`
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
		CustomerEmail string `json:"customer_email"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}

	car, err := c.catalog.GetCarByID(ctx, p.CarModelID)
	if err != nil || car == nil {
		return "Error: Invalid car model ID.", nil
	}

	when, err := time.Parse(time.RFC3339, p.DateTime)
	if err != nil {
		return "Error: datetime must be in RFC3339 format.", nil
	}

	customer := entity.CustomerInfo{
		Name:           p.CustomerName,
		Phone:          p.CustomerPhone,
		Email:          p.CustomerEmail,
		FacebookUserId: senderID,
	}
	appt, err := c.booking.Book(ctx, customer, *car, when)
	if err != nil {
		return "", fmt.Errorf("booking: %w", err)
	}

	if sendErr := c.channel.SendText(senderID, confirmationMessage(*appt, *car)); sendErr != nil {
		c.log.With(sl.Err(sendErr)).Warn("sending booking confirmation")
	}
	return fmt.Sprintf("Successfully booked test drive. Reference ID: %s", appt.ID), nil
}

func (c *Core) toolCancelAppointment(ctx context.Context, _ string, args json.RawMessage) (string, error) {
	var p struct {
		AppointmentID string `json:"appointment_id"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}

	if err := c.booking.Cancel(ctx, p.AppointmentID); err != nil {
		return "", fmt.Errorf("cancelling %s: %w", p.AppointmentID, err)
	}
	return fmt.Sprintf("Appointment %s cancelled.", p.AppointmentID), nil
}

func (c *Core) toolRescheduleAppointment(ctx context.Context, _ string, args json.RawMessage) (string, error) {
	var p struct {
		AppointmentID string `json:"appointment_id"`
		DateTime      string `json:"datetime"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}

	when, err := time.Parse(time.RFC3339, p.DateTime)
	if err != nil {
		return "Error: datetime must be in RFC3339 format.", nil
	}

	appt, err := c.booking.Reschedule(ctx, p.AppointmentID, when)
	if err != nil {
		return "", fmt.Errorf("rescheduling %s: %w", p.AppointmentID, err)
	}
	return fmt.Sprintf("Appointment %s moved to %s.", appt.ID, when.Format(time.RFC3339)), nil
}

func (c *Core) toolSendQuickReplies(_ context.Context, senderID string, args json.RawMessage) (string, error) {
	var p struct {
		Text    string              `json:"text"`
		Replies []entity.QuickReply `json:"replies"`
	}
	if err := json.Unmarshal(args, &p); err != nil {
		return "", fmt.Errorf("bad arguments: %w", err)
	}
	if len(p.Replies) == 0 {
		return "Error: at least one reply option is required.", nil
	}

	if err := c.channel.SendQuickReplies(senderID, p.Text, p.Replies); err != nil {
		return "", err
	}
	return "Quick replies sent to user.", nil
}
