package chat

import (
	"DriveLine/internal/lib/api/response"
	"DriveLine/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		chats, err := handler.ActiveChats()
		if err != nil {
			logger.Error("loading chat list", sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load chat list"))
			return
		}

		render.JSON(w, r, response.Ok(chats))
	}
}

func History(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.chat"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := chi.URLParam(r, "userID")
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		turns, err := handler.ChatHistory(userID, limit)
		if err != nil {
			logger.Error("loading chat history", slog.String("user", userID), sl.Err(err))
			render.JSON(w, r, response.Error("Failed to load chat history"))
			return
		}

		render.JSON(w, r, response.Ok(turns))
	}
}
