package api

import (
	"DriveLine/internal/config"
	"DriveLine/internal/http-server/handlers/appointment"
	"DriveLine/internal/http-server/handlers/car"
	"DriveLine/internal/http-server/handlers/chat"
	"DriveLine/internal/http-server/handlers/errors"
	"DriveLine/internal/http-server/handlers/webhook"
	"DriveLine/internal/http-server/middleware/authenticate"
	"DriveLine/internal/http-server/middleware/timeout"
	"DriveLine/internal/lib/sl"
	"DriveLine/internal/ws"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	webhook.Core
	car.Core
	appointment.Core
	chat.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	// Messenger webhook: verified by token and signature, never by api key
	router.Route("/webhook", func(r chi.Router) {
		r.Get("/", webhook.Verify(log, conf))
		r.Post("/", webhook.Receive(log, conf, handler))
	})

	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, handler, log, w, r)
	})

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(timeout.Timeout(5))
		v1.Use(render.SetContentType(render.ContentTypeJSON))
		v1.Use(authenticate.New(log, handler))

		v1.Route("/cars", func(r chi.Router) {
			r.Get("/", car.GetAll(log, handler))
			r.Post("/", car.Create(log, handler))
			r.Get("/{id}", car.Get(log, handler))
			r.Put("/{id}", car.Update(log, handler))
			r.Delete("/{id}", car.Delete(log, handler))
		})
		v1.Route("/appointments", func(r chi.Router) {
			r.Get("/", appointment.List(log, handler))
		})
		v1.Route("/chats", func(r chi.Router) {
			r.Get("/", chat.List(log, handler))
			r.Get("/{userID}", chat.History(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
