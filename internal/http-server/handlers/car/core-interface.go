package car

import (
	"DriveLine/entity"
	"context"
)

type Core interface {
	GetAllCars(ctx context.Context) ([]entity.CarModel, error)
	GetCar(ctx context.Context, id string) (*entity.CarModel, error)
	CreateCar(ctx context.Context, car *entity.CarModel) error
	UpdateCar(ctx context.Context, car *entity.CarModel) error
	DeleteCar(ctx context.Context, id string) error
}
