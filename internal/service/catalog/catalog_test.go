package catalog

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DriveLine/entity"
)

func testService() *Service {
	return NewService(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))
}

func TestSeedLoaded(t *testing.T) {
	s := testService()

	cars, err := s.GetAllCars(context.Background())
	require.NoError(t, err)
	assert.Len(t, cars, 4)

	car, err := s.GetCarByID(context.Background(), "car_xpander_gls")
	require.NoError(t, err)
	require.NotNil(t, car)
	assert.Equal(t, "Mitsubishi Xpander GLS", car.Name)
	assert.Equal(t, 1266000.0, car.Price)
}

func TestGetCarByID_UnknownIsNil(t *testing.T) {
	s := testService()

	car, err := s.GetCarByID(context.Background(), "car_unknown")
	require.NoError(t, err)
	assert.Nil(t, car)
}

func TestCreateUpdateDelete(t *testing.T) {
	s := testService()
	ctx := context.Background()

	car := &entity.CarModel{ID: "car_outlander", Name: "Mitsubishi Outlander", Price: 2100000}
	require.NoError(t, s.CreateCar(ctx, car))

	// Duplicate IDs are rejected.
	assert.Error(t, s.CreateCar(ctx, car))

	car.Price = 2050000
	require.NoError(t, s.UpdateCar(ctx, car))

	got, err := s.GetCarByID(ctx, "car_outlander")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2050000.0, got.Price)

	require.NoError(t, s.DeleteCar(ctx, "car_outlander"))
	got, err = s.GetCarByID(ctx, "car_outlander")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateCar_RequiresID(t *testing.T) {
	s := testService()
	assert.Error(t, s.CreateCar(context.Background(), &entity.CarModel{Name: "No ID"}))
}

func TestUpdateCar_UnknownRejected(t *testing.T) {
	s := testService()
	err := s.UpdateCar(context.Background(), &entity.CarModel{ID: "car_ghost"})
	assert.Error(t, err)
}
