package car

import (
	"DriveLine/entity"
	"DriveLine/internal/lib/api/response"
	"DriveLine/internal/lib/sl"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type SaveRequest struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Price       float64         `json:"price" validate:"required,gt=0"`
	DpPercent   float64         `json:"dp_percent" validate:"gte=0,lte=1"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	ImageUrl    string          `json:"image_url" validate:"omitempty,url"`
	Specs       entity.CarSpecs `json:"specs"`
}

func (req *SaveRequest) toModel() *entity.CarModel {
	return &entity.CarModel{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		DpPercent:   req.DpPercent,
		Type:        req.Type,
		Description: req.Description,
		ImageUrl:    req.ImageUrl,
		Specs:       req.Specs,
	}
}

func GetAll(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.car"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		cars, err := handler.GetAllCars(r.Context())
		if err != nil {
			logger.Error("listing cars", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list cars"))
			return
		}

		render.JSON(w, r, response.Ok(cars))
	}
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.car"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		car, err := handler.GetCar(r.Context(), id)
		if err != nil {
			logger.Error("loading car", slog.String("id", id), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load car"))
			return
		}
		if car == nil {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error(fmt.Sprintf("Car %s not found", id)))
			return
		}

		render.JSON(w, r, response.Ok(car))
	}
}

func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.car"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req, ok := decodeAndValidate(w, r, logger, "")
		if !ok {
			return
		}

		if err := handler.CreateCar(r.Context(), req.toModel()); err != nil {
			logger.Error("creating car", slog.String("id", req.ID), sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to create car: %v", err)))
			return
		}

		logger.Info("car created", slog.String("id", req.ID))
		render.JSON(w, r, response.Ok(req.ID))
	}
}

func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.car"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req, ok := decodeAndValidate(w, r, logger, chi.URLParam(r, "id"))
		if !ok {
			return
		}

		if err := handler.UpdateCar(r.Context(), req.toModel()); err != nil {
			logger.Error("updating car", slog.String("id", req.ID), sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to update car: %v", err)))
			return
		}

		logger.Info("car updated", slog.String("id", req.ID))
		render.JSON(w, r, response.Ok(req.ID))
	}
}

func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.car"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")
		if err := handler.DeleteCar(r.Context(), id); err != nil {
			logger.Error("deleting car", slog.String("id", id), sl.Err(err))
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to delete car: %v", err)))
			return
		}

		logger.Info("car deleted", slog.String("id", id))
		render.JSON(w, r, response.Ok(id))
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, logger *slog.Logger, id string) (*SaveRequest, bool) {
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid request body"))
		return nil, false
	}
	if id != "" {
		req.ID = id
	}

	if err := validator.New().Struct(req); err != nil {
		logger.Error("request validation", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(fmt.Sprintf("Validation failed: %v", err)))
		return nil, false
	}

	return &req, true
}
