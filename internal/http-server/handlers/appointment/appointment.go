package appointment

import (
	"DriveLine/internal/lib/api/response"
	"DriveLine/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.appointment"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		appts, err := handler.ListAppointments(r.Context())
		if err != nil {
			logger.Error("listing appointments", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to list appointments"))
			return
		}

		render.JSON(w, r, response.Ok(appts))
	}
}
