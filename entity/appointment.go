package entity

import (
	"time"
)

type AppointmentStatus string

const (
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusNoShow    AppointmentStatus = "NO_SHOW"
)

type CustomerInfo struct {
	Name           string `json:"name" bson:"name"`
	Phone          string `json:"phone" bson:"phone"`
	Email          string `json:"email,omitempty" bson:"email,omitempty"`
	FacebookUserId string `json:"facebook_user_id" bson:"facebook_user_id"`
}

// Appointment is one booked test drive.
type Appointment struct {
	ID              string            `json:"id" bson:"_id"`
	CarModel        CarModel          `json:"car_model" bson:"car_model"`
	DateTime        time.Time         `json:"date_time" bson:"date_time"`
	Customer        CustomerInfo      `json:"customer" bson:"customer"`
	Status          AppointmentStatus `json:"status" bson:"status"`
	Notes           string            `json:"notes,omitempty" bson:"notes,omitempty"`
	CalendarEventId string            `json:"calendar_event_id,omitempty" bson:"calendar_event_id,omitempty"`
	CreatedAt       time.Time         `json:"created_at" bson:"created_at"`
}
