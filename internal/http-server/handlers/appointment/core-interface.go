package appointment

import (
	"DriveLine/entity"
	"context"
)

type Core interface {
	ListAppointments(ctx context.Context) ([]entity.Appointment, error)
}
