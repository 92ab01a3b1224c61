package catalog

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type Repository interface {
	GetCarByID(id string) (*entity.CarModel, error)
	GetAllCars() ([]entity.CarModel, error)
	InsertCar(car entity.CarModel) error
	UpdateCar(car entity.CarModel) error
	DeleteCar(id string) error
	SeedCars(cars []entity.CarModel) error
}

// Service serves the sellable inventory. Without a repository it runs on
// the built-in seed models, kept in memory.
type Service struct {
	repository Repository

	mu     sync.RWMutex
	memory map[string]entity.CarModel

	log *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	s := &Service{
		memory: make(map[string]entity.CarModel),
		log:    logger.With(sl.Module("catalog-service")),
	}
	for _, car := range SeedModels() {
		s.memory[car.ID] = car
	}
	return s
}

func (s *Service) SetRepository(repository Repository) {
	s.repository = repository
	if err := repository.SeedCars(SeedModels()); err != nil {
		s.log.With(sl.Err(err)).Warn("seeding catalog")
	}
}

func (s *Service) GetCarByID(_ context.Context, id string) (*entity.CarModel, error) {
	if s.repository != nil {
		return s.repository.GetCarByID(id)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if car, ok := s.memory[id]; ok {
		return &car, nil
	}
	return nil, nil
}

func (s *Service) GetAllCars(_ context.Context) ([]entity.CarModel, error) {
	if s.repository != nil {
		return s.repository.GetAllCars()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	cars := make([]entity.CarModel, 0, len(s.memory))
	for _, car := range SeedModels() {
		if stored, ok := s.memory[car.ID]; ok {
			cars = append(cars, stored)
		}
	}
	// Cars added at runtime come after the seed order
	for id, car := range s.memory {
		if !isSeedID(id) {
			cars = append(cars, car)
		}
	}
	return cars, nil
}

func (s *Service) CreateCar(_ context.Context, car *entity.CarModel) error {
	if car.ID == "" {
		return fmt.Errorf("car id is required")
	}

	if s.repository != nil {
		return s.repository.InsertCar(*car)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.memory[car.ID]; exists {
		return fmt.Errorf("car %s already exists", car.ID)
	}
	s.memory[car.ID] = *car
	return nil
}

func (s *Service) UpdateCar(_ context.Context, car *entity.CarModel) error {
	if s.repository != nil {
		return s.repository.UpdateCar(*car)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.memory[car.ID]; !exists {
		return fmt.Errorf("car %s not found", car.ID)
	}
	s.memory[car.ID] = *car
	return nil
}

func (s *Service) DeleteCar(_ context.Context, id string) error {
	if s.repository != nil {
		return s.repository.DeleteCar(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.memory[id]; !exists {
		return fmt.Errorf("car %s not found", id)
	}
	delete(s.memory, id)
	return nil
}

func isSeedID(id string) bool {
	for _, car := range SeedModels() {
		if car.ID == id {
			return true
		}
	}
	return false
}
